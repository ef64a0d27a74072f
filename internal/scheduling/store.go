package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/openclinic/hms/internal/storage"
)

// The concrete stores wrap a storage.Table each and translate table-level
// errors into the package's sentinel errors. Load/Save tie each store to its
// CSV file; everything in between is in-memory.

// -- Slots --

type CSVSlotStore struct {
	tbl *storage.Table[Slot]
}

func NewCSVSlotStore() *CSVSlotStore {
	return &CSVSlotStore{tbl: storage.NewTable[Slot]()}
}

func (s *CSVSlotStore) Add(slot Slot) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	return s.tbl.Add(slot)
}

func (s *CSVSlotStore) Get(id string) (*Slot, error) {
	slot, ok := s.tbl.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, id)
	}
	return &slot, nil
}

func (s *CSVSlotStore) List() []Slot {
	return s.tbl.List()
}

func (s *CSVSlotStore) ListByDoctor(doctorID string, status SlotStatus) []Slot {
	return s.tbl.Filter(func(sl Slot) bool {
		if !strings.EqualFold(sl.DoctorID, doctorID) {
			return false
		}
		return status == "" || sl.Status == status
	})
}

func (s *CSVSlotStore) Update(slot Slot) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	if err := s.tbl.Update(slot); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrSlotNotFound, slot.ID)
		}
		return err
	}
	return nil
}

func (s *CSVSlotStore) Remove(id string) error {
	if err := s.tbl.Remove(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrSlotNotFound, id)
		}
		return err
	}
	return nil
}

func (s *CSVSlotStore) Len() int { return s.tbl.Len() }

func (s *CSVSlotStore) Load(path string) error {
	return storage.LoadCSV(path, slotCodec{}, s.tbl)
}

func (s *CSVSlotStore) Save(path string) error {
	return storage.SaveCSV(path, slotCodec{}, s.tbl)
}

type slotCodec struct{}

func (slotCodec) Header() []string {
	return []string{"slotID", "doctorID", "date", "startTime", "endTime", "status"}
}

func (slotCodec) Encode(s Slot) []string {
	return []string{s.ID, s.DoctorID, s.Date, s.Start, s.End, string(s.Status)}
}

func (slotCodec) Decode(row []string) (Slot, error) {
	s := Slot{
		ID:       row[0],
		DoctorID: row[1],
		Date:     row[2],
		Start:    row[3],
		End:      row[4],
		Status:   SlotStatus(row[5]),
	}
	if err := s.Validate(); err != nil {
		return Slot{}, err
	}
	return s, nil
}

// -- Appointments --

type CSVAppointmentStore struct {
	tbl *storage.Table[Appointment]
}

func NewCSVAppointmentStore() *CSVAppointmentStore {
	return &CSVAppointmentStore{tbl: storage.NewTable[Appointment]()}
}

func (s *CSVAppointmentStore) Add(a Appointment) error {
	return s.tbl.Add(a)
}

func (s *CSVAppointmentStore) Get(id string) (*Appointment, error) {
	a, ok := s.tbl.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAppointmentNotFound, id)
	}
	return &a, nil
}

func (s *CSVAppointmentStore) GetBySlot(slotID string) (*Appointment, error) {
	active := s.tbl.Filter(func(a Appointment) bool {
		return a.SlotID == slotID && a.Active()
	})
	if len(active) == 0 {
		return nil, fmt.Errorf("%w: no active appointment for slot %s", ErrAppointmentNotFound, slotID)
	}
	return &active[0], nil
}

func (s *CSVAppointmentStore) ListBySlot(slotID string) []Appointment {
	return s.tbl.Filter(func(a Appointment) bool { return a.SlotID == slotID })
}

func (s *CSVAppointmentStore) List() []Appointment {
	return s.tbl.List()
}

func (s *CSVAppointmentStore) Filter(f AppointmentFilter) []Appointment {
	return s.tbl.Filter(func(a Appointment) bool {
		if f.Status != "" && !strings.EqualFold(string(a.Status), f.Status) {
			return false
		}
		if f.PatientID != "" && !strings.EqualFold(a.PatientID, f.PatientID) {
			return false
		}
		if f.DoctorID != "" && !strings.EqualFold(a.DoctorID, f.DoctorID) {
			return false
		}
		return true
	})
}

func (s *CSVAppointmentStore) Update(a Appointment) error {
	if err := s.tbl.Update(a); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrAppointmentNotFound, a.ID)
		}
		return err
	}
	return nil
}

func (s *CSVAppointmentStore) Len() int { return s.tbl.Len() }

func (s *CSVAppointmentStore) Load(path string) error {
	return storage.LoadCSV(path, appointmentCodec{}, s.tbl)
}

func (s *CSVAppointmentStore) Save(path string) error {
	return storage.SaveCSV(path, appointmentCodec{}, s.tbl)
}

type appointmentCodec struct{}

func (appointmentCodec) Header() []string {
	return []string{"appointmentID", "patientID", "doctorID", "slotID", "status", "outcomeID"}
}

func (appointmentCodec) Encode(a Appointment) []string {
	return []string{a.ID, a.PatientID, a.DoctorID, a.SlotID, string(a.Status), a.OutcomeID}
}

func (appointmentCodec) Decode(row []string) (Appointment, error) {
	a := Appointment{
		ID:        row[0],
		PatientID: row[1],
		DoctorID:  row[2],
		SlotID:    row[3],
		Status:    AppointmentStatus(row[4]),
		OutcomeID: row[5],
	}
	if !validAppointmentStatuses[a.Status] {
		return Appointment{}, fmt.Errorf("invalid appointment status %q", a.Status)
	}
	return a, nil
}

// -- Outcomes --

type CSVOutcomeStore struct {
	tbl *storage.Table[Outcome]
}

func NewCSVOutcomeStore() *CSVOutcomeStore {
	return &CSVOutcomeStore{tbl: storage.NewTable[Outcome]()}
}

func (s *CSVOutcomeStore) Add(o Outcome) error {
	return s.tbl.Add(o)
}

func (s *CSVOutcomeStore) Get(id string) (*Outcome, error) {
	o, ok := s.tbl.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutcomeNotFound, id)
	}
	return &o, nil
}

func (s *CSVOutcomeStore) Update(o Outcome) error {
	if err := s.tbl.Update(o); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrOutcomeNotFound, o.ID)
		}
		return err
	}
	return nil
}

func (s *CSVOutcomeStore) Len() int { return s.tbl.Len() }

func (s *CSVOutcomeStore) Load(path string) error {
	return storage.LoadCSV(path, outcomeCodec{}, s.tbl)
}

func (s *CSVOutcomeStore) Save(path string) error {
	return storage.SaveCSV(path, outcomeCodec{}, s.tbl)
}

type outcomeCodec struct{}

func (outcomeCodec) Header() []string {
	return []string{"outcomeID", "appointmentID", "serviceProvided", "prescriptionIDs", "consultationNotes"}
}

func (outcomeCodec) Encode(o Outcome) []string {
	return []string{o.ID, o.AppointmentID, o.ServiceProvided, strings.Join(o.PrescriptionIDs, ";"), o.ConsultationNotes}
}

func (outcomeCodec) Decode(row []string) (Outcome, error) {
	o := Outcome{
		ID:                row[0],
		AppointmentID:     row[1],
		ServiceProvided:   row[2],
		ConsultationNotes: row[4],
	}
	if row[3] != "" {
		o.PrescriptionIDs = strings.Split(row[3], ";")
	}
	return o, nil
}

// -- Prescriptions --

type CSVPrescriptionStore struct {
	tbl *storage.Table[Prescription]
}

func NewCSVPrescriptionStore() *CSVPrescriptionStore {
	return &CSVPrescriptionStore{tbl: storage.NewTable[Prescription]()}
}

func (s *CSVPrescriptionStore) Add(p Prescription) error {
	return s.tbl.Add(p)
}

func (s *CSVPrescriptionStore) Get(id string) (*Prescription, error) {
	p, ok := s.tbl.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPrescriptionNotFound, id)
	}
	return &p, nil
}

func (s *CSVPrescriptionStore) List() []Prescription {
	return s.tbl.List()
}

func (s *CSVPrescriptionStore) ListByAppointment(appointmentID string) []Prescription {
	return s.tbl.Filter(func(p Prescription) bool { return p.AppointmentID == appointmentID })
}

func (s *CSVPrescriptionStore) Update(p Prescription) error {
	if err := s.tbl.Update(p); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrPrescriptionNotFound, p.ID)
		}
		return err
	}
	return nil
}

func (s *CSVPrescriptionStore) Remove(id string) error {
	if err := s.tbl.Remove(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrPrescriptionNotFound, id)
		}
		return err
	}
	return nil
}

func (s *CSVPrescriptionStore) Len() int { return s.tbl.Len() }

func (s *CSVPrescriptionStore) Load(path string) error {
	return storage.LoadCSV(path, prescriptionCodec{}, s.tbl)
}

func (s *CSVPrescriptionStore) Save(path string) error {
	return storage.SaveCSV(path, prescriptionCodec{}, s.tbl)
}

type prescriptionCodec struct{}

func (prescriptionCodec) Header() []string {
	return []string{"prescriptionID", "appointmentID", "medicationID", "quantity", "status", "notes"}
}

func (prescriptionCodec) Encode(p Prescription) []string {
	return []string{p.ID, p.AppointmentID, p.MedicationID, strconv.Itoa(p.Quantity), string(p.Status), p.Notes}
}

func (prescriptionCodec) Decode(row []string) (Prescription, error) {
	qty, err := strconv.Atoi(row[3])
	if err != nil {
		return Prescription{}, fmt.Errorf("parse quantity %q: %w", row[3], err)
	}
	if qty <= 0 {
		return Prescription{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	status := PrescriptionStatus(row[4])
	if status != PrescriptionPending && status != PrescriptionDispensed {
		return Prescription{}, fmt.Errorf("invalid prescription status %q", status)
	}
	return Prescription{
		ID:            row[0],
		AppointmentID: row[1],
		MedicationID:  row[2],
		Quantity:      qty,
		Status:        status,
		Notes:         row[5],
	}, nil
}
