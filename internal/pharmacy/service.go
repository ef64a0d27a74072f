package pharmacy

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/openclinic/hms/internal/scheduling"
)

// The medication store doubles as the scheduling engine's read-only view.
var _ scheduling.MedicationDirectory = (*CSVMedicationStore)(nil)

// Service implements the pharmacist flow: dispensing pending prescriptions
// and decrementing stock in one step.
type Service struct {
	mu            sync.Mutex
	meds          *CSVMedicationStore
	prescriptions scheduling.PrescriptionStore
	log           zerolog.Logger
}

func NewService(meds *CSVMedicationStore, prescriptions scheduling.PrescriptionStore, log zerolog.Logger) *Service {
	return &Service{meds: meds, prescriptions: prescriptions, log: log}
}

// Dispense flips a pending prescription to dispensed and deducts its quantity
// from the medication stock. Both preconditions are checked before either
// record changes.
func (s *Service) Dispense(prescriptionID string) (*scheduling.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rx, err := s.prescriptions.Get(prescriptionID)
	if err != nil {
		return nil, err
	}
	if rx.Status != scheduling.PrescriptionPending {
		return nil, fmt.Errorf("%w: prescription %s is %s", ErrAlreadyDispensed, prescriptionID, rx.Status)
	}

	med, err := s.meds.Get(rx.MedicationID)
	if err != nil {
		return nil, err
	}
	if med.Stock < rx.Quantity {
		return nil, fmt.Errorf("%w: %s has %d, need %d", ErrInsufficientStock, med.ID, med.Stock, rx.Quantity)
	}

	med.Stock -= rx.Quantity
	if err := s.meds.Update(*med); err != nil {
		return nil, fmt.Errorf("update medication: %w", err)
	}
	rx.Status = scheduling.PrescriptionDispensed
	if err := s.prescriptions.Update(*rx); err != nil {
		return nil, fmt.Errorf("update prescription: %w", err)
	}

	evt := s.log.Info().
		Str("prescription_id", prescriptionID).
		Str("medication_id", med.ID).
		Int("quantity", rx.Quantity).
		Int("stock_left", med.Stock)
	if med.LowStock() {
		evt = evt.Bool("low_stock", true)
	}
	evt.Msg("prescription dispensed")

	return rx, nil
}
