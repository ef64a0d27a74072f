// Package pharmacy tracks the medication inventory and the pharmacist
// dispense flow. The scheduling engine only reads from it (existence and
// stock checks); stock mutation happens here.
package pharmacy

import (
	"errors"
	"fmt"
)

var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrAlreadyDispensed   = errors.New("prescription is not pending")
)

type Medication struct {
	ID            string
	Name          string
	Stock         int
	LowStockLevel int
}

func (m Medication) Key() string { return m.ID }

// LowStock reports whether the current stock has fallen to the reorder level.
func (m Medication) LowStock() bool {
	return m.Stock <= m.LowStockLevel
}

func (m Medication) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("medication %s: name is required", m.ID)
	}
	if m.Stock < 0 {
		return fmt.Errorf("medication %s: stock cannot be negative", m.ID)
	}
	if m.LowStockLevel < 0 {
		return fmt.Errorf("medication %s: low stock level cannot be negative", m.ID)
	}
	return nil
}
