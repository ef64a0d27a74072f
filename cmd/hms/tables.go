package main

import (
	"fmt"
	"path/filepath"

	"github.com/openclinic/hms/internal/identity"
	"github.com/openclinic/hms/internal/pharmacy"
	"github.com/openclinic/hms/internal/scheduling"
)

// tables bundles every CSV-backed store with its file location. The whole
// data set is read at startup and written back at shutdown (or on an explicit
// flush).
type tables struct {
	dir string

	slots         *scheduling.CSVSlotStore
	appointments  *scheduling.CSVAppointmentStore
	outcomes      *scheduling.CSVOutcomeStore
	prescriptions *scheduling.CSVPrescriptionStore
	medications   *pharmacy.CSVMedicationStore
	users         *identity.CSVUserStore
}

func newTables(dir string) *tables {
	return &tables{
		dir:           dir,
		slots:         scheduling.NewCSVSlotStore(),
		appointments:  scheduling.NewCSVAppointmentStore(),
		outcomes:      scheduling.NewCSVOutcomeStore(),
		prescriptions: scheduling.NewCSVPrescriptionStore(),
		medications:   pharmacy.NewCSVMedicationStore(),
		users:         identity.NewCSVUserStore(),
	}
}

func (t *tables) path(name string) string {
	return filepath.Join(t.dir, name)
}

// load reads every table. A missing or malformed file is fatal; run
// `hms seed` first on a fresh data directory.
func (t *tables) load() error {
	if err := t.slots.Load(t.path("slots.csv")); err != nil {
		return fmt.Errorf("load slots: %w", err)
	}
	if err := t.appointments.Load(t.path("appointments.csv")); err != nil {
		return fmt.Errorf("load appointments: %w", err)
	}
	if err := t.outcomes.Load(t.path("outcomes.csv")); err != nil {
		return fmt.Errorf("load outcomes: %w", err)
	}
	if err := t.prescriptions.Load(t.path("prescriptions.csv")); err != nil {
		return fmt.Errorf("load prescriptions: %w", err)
	}
	if err := t.medications.Load(t.path("medications.csv")); err != nil {
		return fmt.Errorf("load medications: %w", err)
	}
	if err := t.users.Load(t.path("users.csv")); err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	return nil
}

func (t *tables) flush() error {
	if err := t.slots.Save(t.path("slots.csv")); err != nil {
		return fmt.Errorf("save slots: %w", err)
	}
	if err := t.appointments.Save(t.path("appointments.csv")); err != nil {
		return fmt.Errorf("save appointments: %w", err)
	}
	if err := t.outcomes.Save(t.path("outcomes.csv")); err != nil {
		return fmt.Errorf("save outcomes: %w", err)
	}
	if err := t.prescriptions.Save(t.path("prescriptions.csv")); err != nil {
		return fmt.Errorf("save prescriptions: %w", err)
	}
	if err := t.medications.Save(t.path("medications.csv")); err != nil {
		return fmt.Errorf("save medications: %w", err)
	}
	if err := t.users.Save(t.path("users.csv")); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (t *tables) counts() map[string]int {
	return map[string]int{
		"slots":         t.slots.Len(),
		"appointments":  t.appointments.Len(),
		"outcomes":      t.outcomes.Len(),
		"prescriptions": t.prescriptions.Len(),
		"medications":   t.medications.Len(),
		"users":         t.users.Len(),
	}
}
