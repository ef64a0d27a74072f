package scheduling

import "errors"

var (
	ErrSlotNotFound         = errors.New("slot not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrOutcomeNotFound      = errors.New("outcome not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrMedicationNotFound   = errors.New("medication not found")

	ErrSlotNotAvailable        = errors.New("slot is not available")
	ErrSlotNotOwned            = errors.New("slot does not belong to this doctor")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrNotCancellable          = errors.New("appointment is not in a cancellable status")
	ErrDuplicateMedication     = errors.New("medication already prescribed for this appointment")

	ErrInvalidTimeRange = errors.New("slot start must be before slot end")
	ErrEmptyField       = errors.New("required field is empty")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

// SlotStore owns all appointment time slots.
type SlotStore interface {
	Add(s Slot) error
	Get(id string) (*Slot, error)
	List() []Slot
	// ListByDoctor returns the doctor's slots; status "" matches all statuses.
	ListByDoctor(doctorID string, status SlotStatus) []Slot
	Update(s Slot) error
	Remove(id string) error
}

// AppointmentStore owns appointment records. Appointments are never removed,
// only status-transitioned.
type AppointmentStore interface {
	Add(a Appointment) error
	Get(id string) (*Appointment, error)
	// GetBySlot returns the at-most-one appointment holding the slot in a
	// non-terminal state.
	GetBySlot(slotID string) (*Appointment, error)
	// ListBySlot returns every appointment that ever referenced the slot.
	ListBySlot(slotID string) []Appointment
	List() []Appointment
	Filter(f AppointmentFilter) []Appointment
	Update(a Appointment) error
}

type OutcomeStore interface {
	Add(o Outcome) error
	Get(id string) (*Outcome, error)
	Update(o Outcome) error
}

type PrescriptionStore interface {
	Add(p Prescription) error
	Get(id string) (*Prescription, error)
	ListByAppointment(appointmentID string) []Prescription
	Update(p Prescription) error
	Remove(id string) error
}

// MedicationDirectory is the engine's narrow view of the pharmacy inventory.
// Resolve maps a caller-supplied medication ID, ignoring case, to the stored
// canonical ID. Stock mutation happens in the pharmacist dispense flow,
// outside this package.
type MedicationDirectory interface {
	Resolve(id string) (string, bool)
	Stock(id string) (int, error)
}

// UserDirectory is the engine's narrow view of the user records.
type UserDirectory interface {
	HasPatient(id string) bool
	HasDoctor(id string) bool
}
