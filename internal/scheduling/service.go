package scheduling

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service is the scheduling and outcome engine. It owns every status
// transition on slots and appointments and the multi-record transactions
// (book, decide, complete, outcome updates) that span the stores. All methods
// validate before mutating, so a failed operation leaves every store
// unchanged.
type Service struct {
	mu sync.Mutex

	slots         SlotStore
	appointments  AppointmentStore
	outcomes      OutcomeStore
	prescriptions PrescriptionStore
	meds          MedicationDirectory
	users         UserDirectory

	newID func() string
	log   zerolog.Logger
}

func NewService(
	slots SlotStore,
	appointments AppointmentStore,
	outcomes OutcomeStore,
	prescriptions PrescriptionStore,
	meds MedicationDirectory,
	users UserDirectory,
	log zerolog.Logger,
) *Service {
	return &Service{
		slots:         slots,
		appointments:  appointments,
		outcomes:      outcomes,
		prescriptions: prescriptions,
		meds:          meds,
		users:         users,
		newID:         uuid.NewString,
		log:           log,
	}
}

// LineError reports which prescription line of a batch failed validation.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("prescription line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// -- Slots --

// CreateSlot registers a new availability window for a doctor.
func (s *Service) CreateSlot(doctorID, date, start, end string) (*Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.users.HasDoctor(doctorID) {
		return nil, fmt.Errorf("%w: %s", ErrDoctorNotFound, doctorID)
	}

	slot := Slot{
		ID:       s.newID(),
		DoctorID: doctorID,
		Date:     date,
		Start:    start,
		End:      end,
		Status:   SlotAvailable,
	}
	if err := s.slots.Add(slot); err != nil {
		return nil, fmt.Errorf("add slot: %w", err)
	}

	s.log.Info().
		Str("slot_id", slot.ID).
		Str("doctor_id", doctorID).
		Str("date", date).
		Msg("slot created")
	return &slot, nil
}

// WithdrawSlot takes an available slot off the books. A slot that never held
// an appointment is deleted outright; one with booking history is kept with
// status removed so old appointments still resolve.
func (s *Service) WithdrawSlot(doctorID, slotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, err := s.slots.Get(slotID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(slot.DoctorID, doctorID) {
		return fmt.Errorf("%w: slot %s", ErrSlotNotOwned, slotID)
	}
	if slot.Status != SlotAvailable {
		return fmt.Errorf("%w: slot %s is %s", ErrSlotNotAvailable, slotID, slot.Status)
	}

	if len(s.appointments.ListBySlot(slotID)) > 0 {
		slot.Status = SlotRemoved
		if err := s.slots.Update(*slot); err != nil {
			return fmt.Errorf("update slot: %w", err)
		}
		s.log.Info().Str("slot_id", slotID).Msg("slot withdrawn (kept for history)")
		return nil
	}

	if err := s.slots.Remove(slotID); err != nil {
		return fmt.Errorf("remove slot: %w", err)
	}
	s.log.Info().Str("slot_id", slotID).Msg("slot withdrawn")
	return nil
}

// ListAvailableSlots returns the bookable slots of one doctor.
func (s *Service) ListAvailableSlots(doctorID string) []Slot {
	return s.slots.ListByDoctor(doctorID, SlotAvailable)
}

// ListSlotsByDoctor returns a doctor's slots in any status.
func (s *Service) ListSlotsByDoctor(doctorID string) []Slot {
	return s.slots.ListByDoctor(doctorID, "")
}

func (s *Service) GetSlot(id string) (*Slot, error) {
	return s.slots.Get(id)
}

// -- Booking --

// Book creates a requested appointment for the patient on the given slot and
// marks the slot taken. The slot must belong to the doctor and be available.
func (s *Service) Book(patientID, doctorID, slotID string) (*Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.users.HasPatient(patientID) {
		return nil, fmt.Errorf("%w: %s", ErrPatientNotFound, patientID)
	}

	slot, err := s.slots.Get(slotID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(slot.DoctorID, doctorID) {
		return nil, fmt.Errorf("%w: slot %s", ErrSlotNotOwned, slotID)
	}
	if slot.Status != SlotAvailable {
		return nil, fmt.Errorf("%w: slot %s is %s", ErrSlotNotAvailable, slotID, slot.Status)
	}

	appt := Appointment{
		ID:        s.newID(),
		PatientID: patientID,
		DoctorID:  slot.DoctorID,
		SlotID:    slotID,
		Status:    StatusRequested,
	}
	if err := s.appointments.Add(appt); err != nil {
		return nil, fmt.Errorf("add appointment: %w", err)
	}

	slot.Status = SlotBooked
	if err := s.slots.Update(*slot); err != nil {
		return nil, fmt.Errorf("update slot: %w", err)
	}

	s.log.Info().
		Str("appointment_id", appt.ID).
		Str("patient_id", patientID).
		Str("slot_id", slotID).
		Msg("appointment requested")
	return &appt, nil
}

// Reschedule moves a requested or confirmed appointment to a new slot owned
// by the same doctor. The old slot reopens and the appointment drops back to
// requested pending doctor re-approval.
func (s *Service) Reschedule(appointmentID, newSlotID string) (*Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, err := s.appointments.Get(appointmentID)
	if err != nil {
		return nil, err
	}
	if !appt.Active() {
		return nil, fmt.Errorf("%w: cannot reschedule a %s appointment", ErrInvalidStatusTransition, appt.Status)
	}

	newSlot, err := s.slots.Get(newSlotID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(newSlot.DoctorID, appt.DoctorID) {
		return nil, fmt.Errorf("%w: slot %s", ErrSlotNotOwned, newSlotID)
	}
	if newSlot.Status != SlotAvailable {
		return nil, fmt.Errorf("%w: slot %s is %s", ErrSlotNotAvailable, newSlotID, newSlot.Status)
	}

	oldSlot, err := s.slots.Get(appt.SlotID)
	if err != nil {
		return nil, fmt.Errorf("load current slot: %w", err)
	}

	oldSlot.Status = SlotAvailable
	if err := s.slots.Update(*oldSlot); err != nil {
		return nil, fmt.Errorf("release slot: %w", err)
	}
	newSlot.Status = SlotBooked
	if err := s.slots.Update(*newSlot); err != nil {
		return nil, fmt.Errorf("book slot: %w", err)
	}

	appt.SlotID = newSlotID
	appt.Status = StatusRequested
	if err := s.appointments.Update(*appt); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	s.log.Info().
		Str("appointment_id", appointmentID).
		Str("old_slot_id", oldSlot.ID).
		Str("new_slot_id", newSlotID).
		Msg("appointment rescheduled")
	return appt, nil
}

// Cancel is the patient-side cancellation: requested or confirmed only.
func (s *Service) Cancel(appointmentID string) (*Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, err := s.appointments.Get(appointmentID)
	if err != nil {
		return nil, err
	}
	if !appt.Active() {
		return nil, fmt.Errorf("%w: appointment is %s", ErrNotCancellable, appt.Status)
	}

	if err := s.releaseSlot(appt.SlotID); err != nil {
		return nil, err
	}
	appt.Status = StatusCancelled
	if err := s.appointments.Update(*appt); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	s.log.Info().Str("appointment_id", appointmentID).Msg("appointment cancelled")
	return appt, nil
}

// Decide is the doctor's accept/decline on a requested appointment. Accept
// confirms it; decline cancels it and reopens the slot.
func (s *Service) Decide(appointmentID string, accept bool) (*Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, err := s.appointments.Get(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status != StatusRequested {
		return nil, fmt.Errorf("%w: appointment is %s, want %s", ErrInvalidStatusTransition, appt.Status, StatusRequested)
	}

	if accept {
		appt.Status = StatusConfirmed
	} else {
		if err := s.releaseSlot(appt.SlotID); err != nil {
			return nil, err
		}
		appt.Status = StatusCancelled
	}
	if err := s.appointments.Update(*appt); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	s.log.Info().
		Str("appointment_id", appointmentID).
		Bool("accepted", accept).
		Msg("appointment decided")
	return appt, nil
}

func (s *Service) releaseSlot(slotID string) error {
	slot, err := s.slots.Get(slotID)
	if err != nil {
		return fmt.Errorf("load slot: %w", err)
	}
	slot.Status = SlotAvailable
	if err := s.slots.Update(*slot); err != nil {
		return fmt.Errorf("release slot: %w", err)
	}
	return nil
}

// -- Completion and outcomes --

// Complete closes a confirmed appointment: it creates one prescription per
// line, one outcome referencing them all, marks the appointment completed and
// the slot completed. All lines are validated up front; any bad line fails
// the whole call with a LineError and no store is touched.
func (s *Service) Complete(appointmentID, serviceProvided, consultationNotes string, lines []PrescriptionLine) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, err := s.appointments.Get(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status != StatusConfirmed {
		return nil, fmt.Errorf("%w: appointment is %s, want %s", ErrInvalidStatusTransition, appt.Status, StatusConfirmed)
	}
	if strings.TrimSpace(serviceProvided) == "" {
		return nil, fmt.Errorf("%w: serviceProvided", ErrEmptyField)
	}
	if strings.TrimSpace(consultationNotes) == "" {
		return nil, fmt.Errorf("%w: consultationNotes", ErrEmptyField)
	}

	seen := make(map[string]bool)
	medIDs := make([]string, len(lines))
	for i, line := range lines {
		medID, err := s.validateLine(appointmentID, line, seen)
		if err != nil {
			return nil, &LineError{Line: i, Err: err}
		}
		seen[medID] = true
		medIDs[i] = medID
	}

	slot, err := s.slots.Get(appt.SlotID)
	if err != nil {
		return nil, fmt.Errorf("load slot: %w", err)
	}

	ids := make([]string, 0, len(lines))
	for i, line := range lines {
		rx := Prescription{
			ID:            s.newID(),
			AppointmentID: appointmentID,
			MedicationID:  medIDs[i],
			Quantity:      line.Quantity,
			Status:        PrescriptionPending,
			Notes:         line.Notes,
		}
		if err := s.prescriptions.Add(rx); err != nil {
			return nil, fmt.Errorf("add prescription: %w", err)
		}
		ids = append(ids, rx.ID)
	}

	outcome := Outcome{
		ID:                s.newID(),
		AppointmentID:     appointmentID,
		ServiceProvided:   serviceProvided,
		PrescriptionIDs:   ids,
		ConsultationNotes: consultationNotes,
	}
	if err := s.outcomes.Add(outcome); err != nil {
		return nil, fmt.Errorf("add outcome: %w", err)
	}

	appt.Status = StatusCompleted
	appt.OutcomeID = outcome.ID
	if err := s.appointments.Update(*appt); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	slot.Status = SlotCompleted
	if err := s.slots.Update(*slot); err != nil {
		return nil, fmt.Errorf("update slot: %w", err)
	}

	s.log.Info().
		Str("appointment_id", appointmentID).
		Str("outcome_id", outcome.ID).
		Int("prescriptions", len(ids)).
		Msg("appointment completed")
	return &outcome, nil
}

// UpdateOutcome revises the service and notes of an existing outcome. Blank
// input keeps the current value.
func (s *Service) UpdateOutcome(outcomeID, serviceProvided, consultationNotes string) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome, err := s.outcomes.Get(outcomeID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(serviceProvided) != "" {
		outcome.ServiceProvided = serviceProvided
	}
	if strings.TrimSpace(consultationNotes) != "" {
		outcome.ConsultationNotes = consultationNotes
	}
	if err := s.outcomes.Update(*outcome); err != nil {
		return nil, fmt.Errorf("update outcome: %w", err)
	}

	s.log.Info().Str("outcome_id", outcomeID).Msg("outcome updated")
	return outcome, nil
}

// AddPrescription appends one medication order to an existing outcome, with
// the same validation as Complete.
func (s *Service) AddPrescription(outcomeID string, line PrescriptionLine) (*Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome, err := s.outcomes.Get(outcomeID)
	if err != nil {
		return nil, err
	}
	medID, err := s.validateLine(outcome.AppointmentID, line, nil)
	if err != nil {
		return nil, err
	}

	rx := Prescription{
		ID:            s.newID(),
		AppointmentID: outcome.AppointmentID,
		MedicationID:  medID,
		Quantity:      line.Quantity,
		Status:        PrescriptionPending,
		Notes:         line.Notes,
	}
	if err := s.prescriptions.Add(rx); err != nil {
		return nil, fmt.Errorf("add prescription: %w", err)
	}

	outcome.PrescriptionIDs = append(outcome.PrescriptionIDs, rx.ID)
	if err := s.outcomes.Update(*outcome); err != nil {
		return nil, fmt.Errorf("update outcome: %w", err)
	}

	s.log.Info().
		Str("outcome_id", outcomeID).
		Str("prescription_id", rx.ID).
		Str("medication_id", line.MedicationID).
		Msg("prescription added")
	return &rx, nil
}

// RemovePrescription deletes a prescription and drops its ID from the
// outcome's prescription set.
func (s *Service) RemovePrescription(outcomeID, prescriptionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome, err := s.outcomes.Get(outcomeID)
	if err != nil {
		return err
	}
	rx, err := s.prescriptions.Get(prescriptionID)
	if err != nil {
		return err
	}
	if rx.AppointmentID != outcome.AppointmentID {
		return fmt.Errorf("%w: %s does not belong to outcome %s", ErrPrescriptionNotFound, prescriptionID, outcomeID)
	}

	if err := s.prescriptions.Remove(prescriptionID); err != nil {
		return fmt.Errorf("remove prescription: %w", err)
	}

	kept := make([]string, 0, len(outcome.PrescriptionIDs))
	for _, id := range outcome.PrescriptionIDs {
		if id != prescriptionID {
			kept = append(kept, id)
		}
	}
	outcome.PrescriptionIDs = kept
	if err := s.outcomes.Update(*outcome); err != nil {
		return fmt.Errorf("update outcome: %w", err)
	}

	s.log.Info().
		Str("outcome_id", outcomeID).
		Str("prescription_id", prescriptionID).
		Msg("prescription removed")
	return nil
}

// validateLine checks one medication order and returns the canonical
// medication ID the prescription must record. Duplicate detection runs on
// canonical IDs, so two spellings of the same medication collide.
func (s *Service) validateLine(appointmentID string, line PrescriptionLine, seen map[string]bool) (string, error) {
	if line.MedicationID == "" {
		return "", fmt.Errorf("%w: medicationID", ErrEmptyField)
	}
	if line.Quantity <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidQuantity, line.Quantity)
	}
	medID, ok := s.meds.Resolve(line.MedicationID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMedicationNotFound, line.MedicationID)
	}
	if seen[medID] {
		return "", fmt.Errorf("%w: %s", ErrDuplicateMedication, line.MedicationID)
	}
	for _, rx := range s.prescriptions.ListByAppointment(appointmentID) {
		if strings.EqualFold(rx.MedicationID, medID) {
			return "", fmt.Errorf("%w: %s", ErrDuplicateMedication, line.MedicationID)
		}
	}
	return medID, nil
}

// -- Reads --

func (s *Service) GetAppointment(id string) (*Appointment, error) {
	return s.appointments.Get(id)
}

// GetAppointmentDetail joins the appointment with its slot.
func (s *Service) GetAppointmentDetail(id string) (*AppointmentDetail, error) {
	appt, err := s.appointments.Get(id)
	if err != nil {
		return nil, err
	}
	slot, err := s.slots.Get(appt.SlotID)
	if err != nil {
		return nil, fmt.Errorf("load slot for appointment %s: %w", id, err)
	}
	return &AppointmentDetail{Appointment: *appt, Slot: *slot}, nil
}

func (s *Service) ListAppointments(f AppointmentFilter) []Appointment {
	return s.appointments.Filter(f)
}

func (s *Service) GetOutcome(id string) (*Outcome, error) {
	return s.outcomes.Get(id)
}

func (s *Service) ListPrescriptionsByAppointment(appointmentID string) []Prescription {
	return s.prescriptions.ListByAppointment(appointmentID)
}
