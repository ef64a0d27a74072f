// Package scheduling implements the appointment lifecycle: doctor-owned time
// slots, patient bookings, the appointment status state machine, and the
// outcome and prescription records a completed appointment produces.
package scheduling

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotCompleted SlotStatus = "completed"
	SlotRemoved   SlotStatus = "removed"
)

var validSlotStatuses = map[SlotStatus]bool{
	SlotAvailable: true,
	SlotBooked:    true,
	SlotCompleted: true,
	SlotRemoved:   true,
}

type AppointmentStatus string

const (
	StatusRequested AppointmentStatus = "requested"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

var validAppointmentStatuses = map[AppointmentStatus]bool{
	StatusRequested: true,
	StatusConfirmed: true,
	StatusCancelled: true,
	StatusCompleted: true,
}

type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "pending"
	PrescriptionDispensed PrescriptionStatus = "dispensed"
)

// Slot is one doctor-defined window of time that can hold one appointment.
type Slot struct {
	ID       string
	DoctorID string
	Date     string // yyyy-MM-dd, local calendar date
	Start    string // HH:mm wall clock
	End      string
	Status   SlotStatus
}

func (s Slot) Key() string { return s.ID }

func (s Slot) Validate() error {
	if s.DoctorID == "" {
		return fmt.Errorf("%w: doctorID", ErrEmptyField)
	}
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return fmt.Errorf("parse slot date %q: %w", s.Date, err)
	}
	start, err := time.Parse(ClockLayout, s.Start)
	if err != nil {
		return fmt.Errorf("parse slot start %q: %w", s.Start, err)
	}
	end, err := time.Parse(ClockLayout, s.End)
	if err != nil {
		return fmt.Errorf("parse slot end %q: %w", s.End, err)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, s.Start, s.End)
	}
	if !validSlotStatuses[s.Status] {
		return fmt.Errorf("invalid slot status %q", s.Status)
	}
	return nil
}

// Appointment links one patient, one doctor and one slot. OutcomeID is empty
// until the appointment is completed.
type Appointment struct {
	ID        string
	PatientID string
	DoctorID  string
	SlotID    string
	Status    AppointmentStatus
	OutcomeID string
}

func (a Appointment) Key() string { return a.ID }

// Active reports whether the appointment still holds its slot.
func (a Appointment) Active() bool {
	return a.Status == StatusRequested || a.Status == StatusConfirmed
}

// Outcome is the clinical record of a completed appointment. PrescriptionIDs
// is empty when the visit ended without prescriptions.
type Outcome struct {
	ID                string
	AppointmentID     string
	ServiceProvided   string
	PrescriptionIDs   []string
	ConsultationNotes string
}

func (o Outcome) Key() string { return o.ID }

// Prescription is one medication order attached to an appointment's outcome.
type Prescription struct {
	ID            string
	AppointmentID string
	MedicationID  string
	Quantity      int
	Status        PrescriptionStatus
	Notes         string
}

func (p Prescription) Key() string { return p.ID }

// PrescriptionLine is the doctor's input for one medication order.
type PrescriptionLine struct {
	MedicationID string
	Quantity     int
	Notes        string
}

// AppointmentDetail joins an appointment with its slot.
type AppointmentDetail struct {
	Appointment
	Slot Slot
}

// AppointmentFilter narrows appointment listings. Empty fields match
// everything; set fields are compared case-insensitively and AND-combined.
type AppointmentFilter struct {
	Status    string
	PatientID string
	DoctorID  string
}
