package scheduling

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Fakes for the external collaborators --

type fakeMeds struct {
	stock map[string]int
}

func (f fakeMeds) Resolve(id string) (string, bool) {
	for med := range f.stock {
		if strings.EqualFold(med, id) {
			return med, true
		}
	}
	return "", false
}

func (f fakeMeds) Stock(id string) (int, error) {
	n, ok := f.stock[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMedicationNotFound, id)
	}
	return n, nil
}

type fakeUsers struct {
	patients map[string]bool
	doctors  map[string]bool
}

func (f fakeUsers) HasPatient(id string) bool { return f.patients[id] }
func (f fakeUsers) HasDoctor(id string) bool  { return f.doctors[id] }

type fixture struct {
	svc           *Service
	slots         *CSVSlotStore
	appointments  *CSVAppointmentStore
	outcomes      *CSVOutcomeStore
	prescriptions *CSVPrescriptionStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		slots:         NewCSVSlotStore(),
		appointments:  NewCSVAppointmentStore(),
		outcomes:      NewCSVOutcomeStore(),
		prescriptions: NewCSVPrescriptionStore(),
	}
	meds := fakeMeds{stock: map[string]int{"M01": 50, "M02": 10}}
	users := fakeUsers{
		patients: map[string]bool{"P1": true, "P2": true},
		doctors:  map[string]bool{"D1": true, "D2": true},
	}
	f.svc = NewService(f.slots, f.appointments, f.outcomes, f.prescriptions, meds, users, zerolog.Nop())
	return f
}

func (f *fixture) addSlot(t *testing.T, id, doctorID string, status SlotStatus) Slot {
	t.Helper()
	slot := Slot{ID: id, DoctorID: doctorID, Date: "2024-06-01", Start: "09:00", End: "09:30", Status: status}
	require.NoError(t, f.slots.Add(slot))
	return slot
}

func (f *fixture) mustSlot(t *testing.T, id string) Slot {
	t.Helper()
	slot, err := f.slots.Get(id)
	require.NoError(t, err)
	return *slot
}

func (f *fixture) mustAppointment(t *testing.T, id string) Appointment {
	t.Helper()
	appt, err := f.appointments.Get(id)
	require.NoError(t, err)
	return *appt
}

// bookConfirmed books S onto P1/D1 and has the doctor accept it.
func (f *fixture) bookConfirmed(t *testing.T, slotID string) Appointment {
	t.Helper()
	appt, err := f.svc.Book("P1", "D1", slotID)
	require.NoError(t, err)
	confirmed, err := f.svc.Decide(appt.ID, true)
	require.NoError(t, err)
	return *confirmed
}

// -- Booking --

func TestBook(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)

	appt, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)

	assert.Equal(t, StatusRequested, appt.Status)
	assert.Equal(t, "P1", appt.PatientID)
	assert.Equal(t, "D1", appt.DoctorID)
	assert.Equal(t, "S1", appt.SlotID)
	assert.Empty(t, appt.OutcomeID)
	assert.Equal(t, SlotBooked, f.mustSlot(t, "S1").Status)
}

func TestBookSlotNotAvailable(t *testing.T) {
	f := newFixture(t)
	for _, status := range []SlotStatus{SlotBooked, SlotCompleted, SlotRemoved} {
		t.Run(string(status), func(t *testing.T) {
			id := "S-" + string(status)
			f.addSlot(t, id, "D1", status)

			before := f.appointments.Len()
			_, err := f.svc.Book("P1", "D1", id)
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.Equal(t, status, f.mustSlot(t, id).Status, "slot must be unchanged")
			assert.Equal(t, before, f.appointments.Len(), "no appointment must be created")
		})
	}
}

func TestBookSlotOwnership(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D2", SlotAvailable)

	_, err := f.svc.Book("P1", "D1", "S1")
	assert.ErrorIs(t, err, ErrSlotNotOwned)
	assert.Equal(t, SlotAvailable, f.mustSlot(t, "S1").Status)
}

func TestBookUnknownPatientOrSlot(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)

	_, err := f.svc.Book("P99", "D1", "S1")
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = f.svc.Book("P1", "D1", "S99")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBookSlotTwice(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)

	_, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)

	_, err = f.svc.Book("P2", "D1", "S1")
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, f.appointments.List(), 1)
}

// -- Accept / decline --

func TestDecideAccept(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)

	confirmed, err := f.svc.Decide(appt.ID, true)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)
	assert.Equal(t, SlotBooked, f.mustSlot(t, "S1").Status, "accept keeps the slot taken")
}

func TestDecideDecline(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)

	declined, err := f.svc.Decide(appt.ID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, declined.Status)
	assert.Equal(t, SlotAvailable, f.mustSlot(t, "S1").Status, "decline reopens the slot")
}

func TestDecideRequiresRequested(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")

	for _, accept := range []bool{true, false} {
		_, err := f.svc.Decide(appt.ID, accept)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	}
	assert.Equal(t, StatusConfirmed, f.mustAppointment(t, appt.ID).Status)
}

// -- Cancellation --

func TestCancelRequestedAndConfirmed(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	f.addSlot(t, "S2", "D1", SlotAvailable)

	requested, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)
	confirmed := f.bookConfirmed(t, "S2")

	for _, appt := range []Appointment{*requested, confirmed} {
		cancelled, err := f.svc.Cancel(appt.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
		assert.Equal(t, SlotAvailable, f.mustSlot(t, appt.SlotID).Status)
	}
}

func TestCancelTerminalStates(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")

	_, err := f.svc.Complete(appt.ID, "Consultation", "Stable", nil)
	require.NoError(t, err)

	_, err = f.svc.Cancel(appt.ID)
	assert.ErrorIs(t, err, ErrNotCancellable)
	assert.Equal(t, StatusCompleted, f.mustAppointment(t, appt.ID).Status)
	assert.Equal(t, SlotCompleted, f.mustSlot(t, "S1").Status)

	f.addSlot(t, "S2", "D1", SlotAvailable)
	other, err := f.svc.Book("P1", "D1", "S2")
	require.NoError(t, err)
	_, err = f.svc.Cancel(other.ID)
	require.NoError(t, err)
	_, err = f.svc.Cancel(other.ID)
	assert.ErrorIs(t, err, ErrNotCancellable, "cancelling twice must fail")
}

// -- Rescheduling --

func TestReschedule(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	f.addSlot(t, "S2", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")

	moved, err := f.svc.Reschedule(appt.ID, "S2")
	require.NoError(t, err)

	assert.Equal(t, "S2", moved.SlotID)
	assert.Equal(t, StatusRequested, moved.Status, "reschedule needs doctor re-approval")
	assert.Equal(t, SlotAvailable, f.mustSlot(t, "S1").Status)
	assert.Equal(t, SlotBooked, f.mustSlot(t, "S2").Status)
}

func TestRescheduleRejectsTakenSlot(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	f.addSlot(t, "S2", "D1", SlotBooked)
	appt, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)

	_, err = f.svc.Reschedule(appt.ID, "S2")
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, "S1", f.mustAppointment(t, appt.ID).SlotID)
	assert.Equal(t, SlotBooked, f.mustSlot(t, "S1").Status, "old slot must stay held")
}

func TestRescheduleRejectsOtherDoctorsSlot(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	f.addSlot(t, "S2", "D2", SlotAvailable)
	appt, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)

	_, err = f.svc.Reschedule(appt.ID, "S2")
	assert.ErrorIs(t, err, ErrSlotNotOwned)
}

func TestRescheduleTerminalAppointment(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	f.addSlot(t, "S2", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")
	_, err := f.svc.Complete(appt.ID, "Consultation", "Stable", nil)
	require.NoError(t, err)

	_, err = f.svc.Reschedule(appt.ID, "S2")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

// -- Completion --

func TestCompleteWithPrescriptions(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")

	outcome, err := f.svc.Complete(appt.ID, "Consultation", "Stable", []PrescriptionLine{
		{MedicationID: "M01", Quantity: 2, Notes: "after meals"},
		{MedicationID: "M02", Quantity: 1},
	})
	require.NoError(t, err)

	rxs := f.prescriptions.ListByAppointment(appt.ID)
	require.Len(t, rxs, 2)
	for _, rx := range rxs {
		assert.Equal(t, PrescriptionPending, rx.Status)
		assert.Contains(t, outcome.PrescriptionIDs, rx.ID)
	}
	assert.Len(t, outcome.PrescriptionIDs, 2)
	assert.Equal(t, appt.ID, outcome.AppointmentID)
	assert.Equal(t, "Consultation", outcome.ServiceProvided)

	updated := f.mustAppointment(t, appt.ID)
	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Equal(t, outcome.ID, updated.OutcomeID)
	assert.Equal(t, SlotCompleted, f.mustSlot(t, "S1").Status)
}

func TestCompleteWithoutPrescriptions(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")

	outcome, err := f.svc.Complete(appt.ID, "Checkup", "All clear", nil)
	require.NoError(t, err)
	assert.Empty(t, outcome.PrescriptionIDs)
	assert.Empty(t, f.prescriptions.ListByAppointment(appt.ID))
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)

	_, err = f.svc.Complete(appt.ID, "Consultation", "Stable", nil)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Equal(t, StatusRequested, f.mustAppointment(t, appt.ID).Status)
}

func TestCompleteRequiresServiceAndNotes(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")

	_, err := f.svc.Complete(appt.ID, "  ", "Stable", nil)
	assert.ErrorIs(t, err, ErrEmptyField)
	_, err = f.svc.Complete(appt.ID, "Consultation", "", nil)
	assert.ErrorIs(t, err, ErrEmptyField)
	assert.Equal(t, StatusConfirmed, f.mustAppointment(t, appt.ID).Status)
}

func TestCompleteRejectsBadLines(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")

	cases := []struct {
		name string
		line PrescriptionLine
		want error
	}{
		{"unknown medication", PrescriptionLine{MedicationID: "M99", Quantity: 1}, ErrMedicationNotFound},
		{"zero quantity", PrescriptionLine{MedicationID: "M01", Quantity: 0}, ErrInvalidQuantity},
		{"negative quantity", PrescriptionLine{MedicationID: "M01", Quantity: -2}, ErrInvalidQuantity},
		{"blank medication", PrescriptionLine{Quantity: 1}, ErrEmptyField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Complete(appt.ID, "Consultation", "Stable", []PrescriptionLine{
				{MedicationID: "M02", Quantity: 1},
				tc.line,
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var le *LineError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, 1, le.Line)

			assert.Empty(t, f.prescriptions.ListByAppointment(appt.ID), "no line may be written on failure")
			assert.Equal(t, StatusConfirmed, f.mustAppointment(t, appt.ID).Status)
		})
	}
}

func TestCompleteRejectsDuplicateMedication(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")

	_, err := f.svc.Complete(appt.ID, "Consultation", "Stable", []PrescriptionLine{
		{MedicationID: "M01", Quantity: 2},
		{MedicationID: "m01", Quantity: 1},
	})
	require.ErrorIs(t, err, ErrDuplicateMedication)

	var le *LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 1, le.Line, "the second occurrence is the one rejected")
	assert.Empty(t, f.prescriptions.ListByAppointment(appt.ID))
}

func TestCompleteResolvesMedicationCase(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")

	outcome, err := f.svc.Complete(appt.ID, "Consultation", "Stable", []PrescriptionLine{
		{MedicationID: "m01", Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, outcome.PrescriptionIDs, 1)

	rx, err := f.prescriptions.Get(outcome.PrescriptionIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "M01", rx.MedicationID, "prescriptions record the canonical medication ID")
}

// -- Outcome updates --

func TestUpdateOutcomeBlankKeepsCurrent(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")
	outcome, err := f.svc.Complete(appt.ID, "Consultation", "Stable", []PrescriptionLine{
		{MedicationID: "M01", Quantity: 2},
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateOutcome(outcome.ID, "", "Improving")
	require.NoError(t, err)
	assert.Equal(t, "Consultation", updated.ServiceProvided, "blank service keeps the old value")
	assert.Equal(t, "Improving", updated.ConsultationNotes)
	assert.Equal(t, outcome.PrescriptionIDs, updated.PrescriptionIDs, "notes-only revision leaves prescriptions alone")
}

func TestAddPrescriptionToOutcome(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")
	outcome, err := f.svc.Complete(appt.ID, "Consultation", "Stable", []PrescriptionLine{
		{MedicationID: "M01", Quantity: 2},
	})
	require.NoError(t, err)

	rx, err := f.svc.AddPrescription(outcome.ID, PrescriptionLine{MedicationID: "M02", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, appt.ID, rx.AppointmentID)
	assert.Equal(t, PrescriptionPending, rx.Status)

	refetched, err := f.svc.GetOutcome(outcome.ID)
	require.NoError(t, err)
	assert.Len(t, refetched.PrescriptionIDs, 2)
	assert.Contains(t, refetched.PrescriptionIDs, rx.ID)

	// The medication prescribed at completion cannot be added again.
	_, err = f.svc.AddPrescription(outcome.ID, PrescriptionLine{MedicationID: "M01", Quantity: 1})
	assert.ErrorIs(t, err, ErrDuplicateMedication)
}

func TestRemovePrescriptionFromOutcome(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt := f.bookConfirmed(t, "S1")
	outcome, err := f.svc.Complete(appt.ID, "Consultation", "Stable", []PrescriptionLine{
		{MedicationID: "M01", Quantity: 2},
		{MedicationID: "M02", Quantity: 1},
	})
	require.NoError(t, err)
	removeID := outcome.PrescriptionIDs[0]

	require.NoError(t, f.svc.RemovePrescription(outcome.ID, removeID))

	refetched, err := f.svc.GetOutcome(outcome.ID)
	require.NoError(t, err)
	assert.NotContains(t, refetched.PrescriptionIDs, removeID)
	assert.Len(t, refetched.PrescriptionIDs, 1)

	_, err = f.prescriptions.Get(removeID)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)

	// Once removed, the medication can be prescribed again.
	_, err = f.svc.AddPrescription(outcome.ID, PrescriptionLine{MedicationID: "M01", Quantity: 1})
	assert.NoError(t, err)
}

func TestRemovePrescriptionOfOtherOutcome(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	f.addSlot(t, "S2", "D1", SlotAvailable)

	first := f.bookConfirmed(t, "S1")
	firstOutcome, err := f.svc.Complete(first.ID, "Consultation", "Stable", []PrescriptionLine{
		{MedicationID: "M01", Quantity: 1},
	})
	require.NoError(t, err)

	second := f.bookConfirmed(t, "S2")
	secondOutcome, err := f.svc.Complete(second.ID, "Checkup", "Fine", nil)
	require.NoError(t, err)

	err = f.svc.RemovePrescription(secondOutcome.ID, firstOutcome.PrescriptionIDs[0])
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
	_, err = f.prescriptions.Get(firstOutcome.PrescriptionIDs[0])
	assert.NoError(t, err, "the prescription must survive the mismatched remove")
}

// -- Slot withdrawal --

func TestWithdrawSlot(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)

	require.NoError(t, f.svc.WithdrawSlot("D1", "S1"))
	_, err := f.slots.Get("S1")
	assert.ErrorIs(t, err, ErrSlotNotFound, "a slot without history is hard deleted")
}

func TestWithdrawSlotKeepsHistory(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)
	_, err = f.svc.Cancel(appt.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.WithdrawSlot("D1", "S1"))
	assert.Equal(t, SlotRemoved, f.mustSlot(t, "S1").Status, "a slot with history is soft deleted")
}

func TestWithdrawSlotGuards(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	_, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.WithdrawSlot("D1", "S1"), ErrSlotNotAvailable)
	assert.ErrorIs(t, f.svc.WithdrawSlot("D2", "S1"), ErrSlotNotOwned)
}

// -- Reads --

func TestGetAppointmentDetail(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	appt, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)

	detail, err := f.svc.GetAppointmentDetail(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, appt.ID, detail.ID)
	assert.Equal(t, "S1", detail.Slot.ID)
	assert.Equal(t, "2024-06-01", detail.Slot.Date)

	_, err = f.svc.GetAppointmentDetail("missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListAppointmentsFiltered(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)
	f.addSlot(t, "S2", "D2", SlotAvailable)
	f.addSlot(t, "S3", "D1", SlotAvailable)

	a1, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)
	_, err = f.svc.Book("P2", "D2", "S2")
	require.NoError(t, err)
	_, err = f.svc.Book("P2", "D1", "S3")
	require.NoError(t, err)
	_, err = f.svc.Decide(a1.ID, true)
	require.NoError(t, err)

	byDoctor := f.svc.ListAppointments(AppointmentFilter{DoctorID: "d1"})
	assert.Len(t, byDoctor, 2, "doctor filter is case-insensitive")

	confirmed := f.svc.ListAppointments(AppointmentFilter{Status: "CONFIRMED", DoctorID: "D1"})
	require.Len(t, confirmed, 1)
	assert.Equal(t, a1.ID, confirmed[0].ID)

	none := f.svc.ListAppointments(AppointmentFilter{Status: "completed"})
	assert.Empty(t, none)
}

// -- Full lifecycle --

func TestLifecycleRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "S1", "D1", SlotAvailable)

	appt, err := f.svc.Book("P1", "D1", "S1")
	require.NoError(t, err)
	assert.Equal(t, SlotBooked, f.mustSlot(t, "S1").Status)

	_, err = f.svc.Decide(appt.ID, true)
	require.NoError(t, err)

	outcome, err := f.svc.Complete(appt.ID, "Consultation", "Stable", []PrescriptionLine{
		{MedicationID: "M01", Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, outcome.PrescriptionIDs, 1)

	rx, err := f.prescriptions.Get(outcome.PrescriptionIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "M01", rx.MedicationID)
	assert.Equal(t, 2, rx.Quantity)
	assert.Equal(t, PrescriptionPending, rx.Status)

	final := f.mustAppointment(t, appt.ID)
	assert.Equal(t, StatusCompleted, final.Status)
	assert.Equal(t, outcome.ID, final.OutcomeID)
	assert.Equal(t, SlotCompleted, f.mustSlot(t, "S1").Status)

	// Revising notes only must leave the prescription set untouched.
	revised, err := f.svc.UpdateOutcome(outcome.ID, "", "Follow up in two weeks")
	require.NoError(t, err)
	assert.Equal(t, outcome.PrescriptionIDs, revised.PrescriptionIDs)
}
