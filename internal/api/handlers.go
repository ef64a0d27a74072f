package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openclinic/hms/internal/pharmacy"
	"github.com/openclinic/hms/internal/scheduling"
)

// -- Slots --

func createSlotHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		slot, err := svc.CreateSlot(req.DoctorID, req.Date, req.Start, req.End)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSlotResponse(*slot))
	}
}

func listSlotsHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID := r.URL.Query().Get("doctor_id")
		if doctorID == "" {
			writeError(w, http.StatusBadRequest, "missing_doctor_id", "doctor_id query parameter is required")
			return
		}

		var slots []scheduling.Slot
		if r.URL.Query().Get("status") == string(scheduling.SlotAvailable) {
			slots = svc.ListAvailableSlots(doctorID)
		} else {
			slots = svc.ListSlotsByDoctor(doctorID)
		}

		resp := make([]SlotResponse, 0, len(slots))
		for _, s := range slots {
			resp = append(resp, toSlotResponse(s))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getSlotHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, err := svc.GetSlot(chi.URLParam(r, "id"))
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSlotResponse(*slot))
	}
}

func withdrawSlotHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID := r.URL.Query().Get("doctor_id")
		if doctorID == "" {
			writeError(w, http.StatusBadRequest, "missing_doctor_id", "doctor_id query parameter is required")
			return
		}

		if err := svc.WithdrawSlot(doctorID, chi.URLParam(r, "id")); err != nil {
			handleDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// -- Appointments --

func bookAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		appt, err := svc.Book(req.PatientID, req.DoctorID, req.SlotID)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(*appt))
	}
}

func listAppointmentsHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		appts := svc.ListAppointments(scheduling.AppointmentFilter{
			Status:    q.Get("status"),
			PatientID: q.Get("patient_id"),
			DoctorID:  q.Get("doctor_id"),
		})

		resp := make([]AppointmentResponse, 0, len(appts))
		for _, a := range appts {
			resp = append(resp, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := svc.GetAppointmentDetail(chi.URLParam(r, "id"))
		if err != nil {
			handleDomainError(w, err)
			return
		}

		resp := toAppointmentResponse(detail.Appointment)
		slot := toSlotResponse(detail.Slot)
		resp.Slot = &slot
		writeJSON(w, http.StatusOK, resp)
	}
}

func decideAppointmentHandler(svc *scheduling.Service, accept bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appt, err := svc.Decide(chi.URLParam(r, "id"), accept)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(*appt))
	}
}

func cancelAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appt, err := svc.Cancel(chi.URLParam(r, "id"))
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(*appt))
	}
}

func rescheduleAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RescheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		appt, err := svc.Reschedule(chi.URLParam(r, "id"), req.SlotID)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(*appt))
	}
}

func completeAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CompleteAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		lines := make([]scheduling.PrescriptionLine, 0, len(req.Prescriptions))
		for _, p := range req.Prescriptions {
			lines = append(lines, scheduling.PrescriptionLine{
				MedicationID: p.MedicationID,
				Quantity:     p.Quantity,
				Notes:        p.Notes,
			})
		}

		outcome, err := svc.Complete(chi.URLParam(r, "id"), req.ServiceProvided, req.ConsultationNotes, lines)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toOutcomeResponse(*outcome))
	}
}

func listPrescriptionsHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rxs := svc.ListPrescriptionsByAppointment(chi.URLParam(r, "id"))
		resp := make([]PrescriptionResponse, 0, len(rxs))
		for _, rx := range rxs {
			resp = append(resp, toPrescriptionResponse(rx))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// -- Error mapping and JSON plumbing --

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduling.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, "slot_not_found", err.Error())
	case errors.Is(err, scheduling.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, scheduling.ErrOutcomeNotFound):
		writeError(w, http.StatusNotFound, "outcome_not_found", err.Error())
	case errors.Is(err, scheduling.ErrPrescriptionNotFound):
		writeError(w, http.StatusNotFound, "prescription_not_found", err.Error())
	case errors.Is(err, scheduling.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, scheduling.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
	case errors.Is(err, scheduling.ErrMedicationNotFound),
		errors.Is(err, pharmacy.ErrMedicationNotFound):
		writeError(w, http.StatusNotFound, "medication_not_found", err.Error())
	case errors.Is(err, scheduling.ErrSlotNotOwned):
		writeError(w, http.StatusForbidden, "slot_not_owned", err.Error())
	case errors.Is(err, scheduling.ErrSlotNotAvailable):
		writeError(w, http.StatusConflict, "slot_not_available", err.Error())
	case errors.Is(err, scheduling.ErrInvalidStatusTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, scheduling.ErrNotCancellable):
		writeError(w, http.StatusConflict, "not_cancellable", err.Error())
	case errors.Is(err, scheduling.ErrDuplicateMedication):
		writeError(w, http.StatusConflict, "duplicate_medication", err.Error())
	case errors.Is(err, pharmacy.ErrAlreadyDispensed):
		writeError(w, http.StatusConflict, "not_pending", err.Error())
	case errors.Is(err, pharmacy.ErrInsufficientStock):
		writeError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, scheduling.ErrEmptyField),
		errors.Is(err, scheduling.ErrInvalidQuantity),
		errors.Is(err, scheduling.ErrInvalidTimeRange):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}
