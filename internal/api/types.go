package api

import "github.com/openclinic/hms/internal/scheduling"

type CreateSlotRequest struct {
	DoctorID string `json:"doctor_id"`
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

type BookAppointmentRequest struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	SlotID    string `json:"slot_id"`
}

type RescheduleRequest struct {
	SlotID string `json:"slot_id"`
}

type PrescriptionLineRequest struct {
	MedicationID string `json:"medication_id"`
	Quantity     int    `json:"quantity"`
	Notes        string `json:"notes,omitempty"`
}

type CompleteAppointmentRequest struct {
	ServiceProvided   string                    `json:"service_provided"`
	ConsultationNotes string                    `json:"consultation_notes"`
	Prescriptions     []PrescriptionLineRequest `json:"prescriptions,omitempty"`
}

type UpdateOutcomeRequest struct {
	ServiceProvided   string `json:"service_provided,omitempty"`
	ConsultationNotes string `json:"consultation_notes,omitempty"`
}

type SlotResponse struct {
	ID       string `json:"id"`
	DoctorID string `json:"doctor_id"`
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Status   string `json:"status"`
}

func toSlotResponse(s scheduling.Slot) SlotResponse {
	return SlotResponse{
		ID:       s.ID,
		DoctorID: s.DoctorID,
		Date:     s.Date,
		Start:    s.Start,
		End:      s.End,
		Status:   string(s.Status),
	}
}

type AppointmentResponse struct {
	ID        string        `json:"id"`
	PatientID string        `json:"patient_id"`
	DoctorID  string        `json:"doctor_id"`
	SlotID    string        `json:"slot_id"`
	Status    string        `json:"status"`
	OutcomeID string        `json:"outcome_id,omitempty"`
	Slot      *SlotResponse `json:"slot,omitempty"`
}

func toAppointmentResponse(a scheduling.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		SlotID:    a.SlotID,
		Status:    string(a.Status),
		OutcomeID: a.OutcomeID,
	}
}

type OutcomeResponse struct {
	ID                string   `json:"id"`
	AppointmentID     string   `json:"appointment_id"`
	ServiceProvided   string   `json:"service_provided"`
	PrescriptionIDs   []string `json:"prescription_ids"`
	ConsultationNotes string   `json:"consultation_notes"`
}

func toOutcomeResponse(o scheduling.Outcome) OutcomeResponse {
	ids := o.PrescriptionIDs
	if ids == nil {
		ids = []string{}
	}
	return OutcomeResponse{
		ID:                o.ID,
		AppointmentID:     o.AppointmentID,
		ServiceProvided:   o.ServiceProvided,
		PrescriptionIDs:   ids,
		ConsultationNotes: o.ConsultationNotes,
	}
}

type PrescriptionResponse struct {
	ID            string `json:"id"`
	AppointmentID string `json:"appointment_id"`
	MedicationID  string `json:"medication_id"`
	Quantity      int    `json:"quantity"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
}

func toPrescriptionResponse(p scheduling.Prescription) PrescriptionResponse {
	return PrescriptionResponse{
		ID:            p.ID,
		AppointmentID: p.AppointmentID,
		MedicationID:  p.MedicationID,
		Quantity:      p.Quantity,
		Status:        string(p.Status),
		Notes:         p.Notes,
	}
}

type MedicationResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Stock         int    `json:"stock"`
	LowStockLevel int    `json:"low_stock_level"`
	LowStock      bool   `json:"low_stock"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Specialty   string `json:"specialty,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Contact     string `json:"contact,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
