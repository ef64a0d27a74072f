package scheduling

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStoreCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.csv")

	s := NewCSVSlotStore()
	require.NoError(t, s.Add(Slot{ID: "S1", DoctorID: "D1", Date: "2024-06-01", Start: "09:00", End: "09:30", Status: SlotAvailable}))
	require.NoError(t, s.Add(Slot{ID: "S2", DoctorID: "D2", Date: "2024-06-02", Start: "14:00", End: "15:00", Status: SlotCompleted}))
	require.NoError(t, s.Save(path))

	loaded := NewCSVSlotStore()
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, s.List(), loaded.List())
}

func TestSlotStoreRejectsInvalid(t *testing.T) {
	s := NewCSVSlotStore()

	err := s.Add(Slot{ID: "S1", DoctorID: "D1", Date: "2024-06-01", Start: "09:30", End: "09:00", Status: SlotAvailable})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	err = s.Add(Slot{ID: "S1", DoctorID: "D1", Date: "2024-06-01", Start: "09:00", End: "09:00", Status: SlotAvailable})
	assert.ErrorIs(t, err, ErrInvalidTimeRange, "zero-length slots are invalid")

	err = s.Add(Slot{ID: "S1", DoctorID: "D1", Date: "01/06/2024", Start: "09:00", End: "09:30", Status: SlotAvailable})
	assert.Error(t, err, "date must be yyyy-MM-dd")

	err = s.Add(Slot{ID: "S1", Date: "2024-06-01", Start: "09:00", End: "09:30", Status: SlotAvailable})
	assert.ErrorIs(t, err, ErrEmptyField)
}

func TestSlotStoreListByDoctor(t *testing.T) {
	s := NewCSVSlotStore()
	require.NoError(t, s.Add(Slot{ID: "S1", DoctorID: "D1", Date: "2024-06-01", Start: "09:00", End: "09:30", Status: SlotAvailable}))
	require.NoError(t, s.Add(Slot{ID: "S2", DoctorID: "D1", Date: "2024-06-01", Start: "10:00", End: "10:30", Status: SlotBooked}))
	require.NoError(t, s.Add(Slot{ID: "S3", DoctorID: "D2", Date: "2024-06-01", Start: "09:00", End: "09:30", Status: SlotAvailable}))

	assert.Len(t, s.ListByDoctor("D1", ""), 2)
	assert.Len(t, s.ListByDoctor("d1", SlotAvailable), 1, "doctor match is case-insensitive")
	assert.Empty(t, s.ListByDoctor("D2", SlotBooked))
}

func TestAppointmentStoreGetBySlot(t *testing.T) {
	s := NewCSVAppointmentStore()
	require.NoError(t, s.Add(Appointment{ID: "A1", PatientID: "P1", DoctorID: "D1", SlotID: "S1", Status: StatusCancelled}))
	require.NoError(t, s.Add(Appointment{ID: "A2", PatientID: "P2", DoctorID: "D1", SlotID: "S1", Status: StatusRequested}))

	active, err := s.GetBySlot("S1")
	require.NoError(t, err)
	assert.Equal(t, "A2", active.ID, "terminal appointments do not hold the slot")

	assert.Len(t, s.ListBySlot("S1"), 2)

	_, err = s.GetBySlot("S9")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentStoreCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.csv")

	s := NewCSVAppointmentStore()
	require.NoError(t, s.Add(Appointment{ID: "A1", PatientID: "P1", DoctorID: "D1", SlotID: "S1", Status: StatusCompleted, OutcomeID: "O1"}))
	require.NoError(t, s.Add(Appointment{ID: "A2", PatientID: "P2", DoctorID: "D1", SlotID: "S2", Status: StatusRequested}))
	require.NoError(t, s.Save(path))

	loaded := NewCSVAppointmentStore()
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, s.List(), loaded.List())
}

func TestOutcomeCodecPrescriptionIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outcomes.csv")

	s := NewCSVOutcomeStore()
	require.NoError(t, s.Add(Outcome{
		ID:                "O1",
		AppointmentID:     "A1",
		ServiceProvided:   "Consultation",
		PrescriptionIDs:   []string{"PR1", "PR2"},
		ConsultationNotes: "notes with, comma; and semicolon",
	}))
	require.NoError(t, s.Add(Outcome{
		ID:              "O2",
		AppointmentID:   "A2",
		ServiceProvided: "Checkup",
	}))
	require.NoError(t, s.Save(path))

	loaded := NewCSVOutcomeStore()
	require.NoError(t, loaded.Load(path))

	o1, err := loaded.Get("O1")
	require.NoError(t, err)
	assert.Equal(t, []string{"PR1", "PR2"}, o1.PrescriptionIDs)
	assert.Equal(t, "notes with, comma; and semicolon", o1.ConsultationNotes)

	o2, err := loaded.Get("O2")
	require.NoError(t, err)
	assert.Empty(t, o2.PrescriptionIDs, "no prescriptions round-trips as an empty set")
}

func TestPrescriptionStoreCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prescriptions.csv")

	s := NewCSVPrescriptionStore()
	require.NoError(t, s.Add(Prescription{ID: "PR1", AppointmentID: "A1", MedicationID: "M01", Quantity: 2, Status: PrescriptionPending, Notes: "after meals"}))
	require.NoError(t, s.Add(Prescription{ID: "PR2", AppointmentID: "A1", MedicationID: "M02", Quantity: 1, Status: PrescriptionDispensed}))
	require.NoError(t, s.Save(path))

	loaded := NewCSVPrescriptionStore()
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, s.List(), loaded.List())

	assert.Len(t, loaded.ListByAppointment("A1"), 2)
	assert.Empty(t, loaded.ListByAppointment("A2"))
}
