package pharmacy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/openclinic/hms/internal/storage"
)

// CSVMedicationStore keeps the inventory in memory, backed by
// medications.csv. It also satisfies the scheduling engine's
// MedicationDirectory through Resolve and Stock.
type CSVMedicationStore struct {
	tbl *storage.Table[Medication]
}

func NewCSVMedicationStore() *CSVMedicationStore {
	return &CSVMedicationStore{tbl: storage.NewTable[Medication]()}
}

func (s *CSVMedicationStore) Add(m Medication) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return s.tbl.Add(m)
}

func (s *CSVMedicationStore) Get(id string) (*Medication, error) {
	m, ok := s.tbl.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMedicationNotFound, id)
	}
	return &m, nil
}

func (s *CSVMedicationStore) List() []Medication {
	return s.tbl.List()
}

func (s *CSVMedicationStore) ListLowStock() []Medication {
	return s.tbl.Filter(Medication.LowStock)
}

func (s *CSVMedicationStore) Update(m Medication) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := s.tbl.Update(m); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrMedicationNotFound, m.ID)
		}
		return err
	}
	return nil
}

func (s *CSVMedicationStore) Exists(id string) bool {
	_, ok := s.tbl.Get(id)
	return ok
}

// Resolve maps id, ignoring case, to the canonical medication ID.
func (s *CSVMedicationStore) Resolve(id string) (string, bool) {
	if _, ok := s.tbl.Get(id); ok {
		return id, true
	}
	for _, m := range s.tbl.List() {
		if strings.EqualFold(m.ID, id) {
			return m.ID, true
		}
	}
	return "", false
}

func (s *CSVMedicationStore) Stock(id string) (int, error) {
	m, ok := s.tbl.Get(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMedicationNotFound, id)
	}
	return m.Stock, nil
}

func (s *CSVMedicationStore) Len() int { return s.tbl.Len() }

func (s *CSVMedicationStore) Load(path string) error {
	return storage.LoadCSV(path, medicationCodec{}, s.tbl)
}

func (s *CSVMedicationStore) Save(path string) error {
	return storage.SaveCSV(path, medicationCodec{}, s.tbl)
}

type medicationCodec struct{}

func (medicationCodec) Header() []string {
	return []string{"medicationID", "name", "stock", "lowStockLevel"}
}

func (medicationCodec) Encode(m Medication) []string {
	return []string{m.ID, m.Name, strconv.Itoa(m.Stock), strconv.Itoa(m.LowStockLevel)}
}

func (medicationCodec) Decode(row []string) (Medication, error) {
	stock, err := strconv.Atoi(row[2])
	if err != nil {
		return Medication{}, fmt.Errorf("parse stock %q: %w", row[2], err)
	}
	level, err := strconv.Atoi(row[3])
	if err != nil {
		return Medication{}, fmt.Errorf("parse low stock level %q: %w", row[3], err)
	}
	m := Medication{ID: row[0], Name: row[1], Stock: stock, LowStockLevel: level}
	if err := m.Validate(); err != nil {
		return Medication{}, err
	}
	return m, nil
}
