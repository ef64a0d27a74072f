package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openclinic/hms/internal/identity"
	"github.com/openclinic/hms/internal/pharmacy"
	"github.com/openclinic/hms/internal/scheduling"
)

// -- Outcomes --

func getOutcomeHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, err := svc.GetOutcome(chi.URLParam(r, "id"))
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOutcomeResponse(*outcome))
	}
}

func updateOutcomeHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateOutcomeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		outcome, err := svc.UpdateOutcome(chi.URLParam(r, "id"), req.ServiceProvided, req.ConsultationNotes)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOutcomeResponse(*outcome))
	}
}

func addPrescriptionHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PrescriptionLineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		rx, err := svc.AddPrescription(chi.URLParam(r, "id"), scheduling.PrescriptionLine{
			MedicationID: req.MedicationID,
			Quantity:     req.Quantity,
			Notes:        req.Notes,
		})
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPrescriptionResponse(*rx))
	}
}

func removePrescriptionHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.RemovePrescription(chi.URLParam(r, "id"), chi.URLParam(r, "prescriptionID"))
		if err != nil {
			handleDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// -- Pharmacy --

func listMedicationsHandler(meds *pharmacy.CSVMedicationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var list []pharmacy.Medication
		if r.URL.Query().Get("low_stock") == "true" {
			list = meds.ListLowStock()
		} else {
			list = meds.List()
		}

		resp := make([]MedicationResponse, 0, len(list))
		for _, m := range list {
			resp = append(resp, MedicationResponse{
				ID:            m.ID,
				Name:          m.Name,
				Stock:         m.Stock,
				LowStockLevel: m.LowStockLevel,
				LowStock:      m.LowStock(),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func dispenseHandler(svc *pharmacy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rx, err := svc.Dispense(chi.URLParam(r, "id"))
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPrescriptionResponse(*rx))
	}
}

// -- Users --

func listUsersHandler(users *identity.CSVUserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var list []identity.User
		if role := r.URL.Query().Get("role"); role != "" {
			list = users.ListByRole(identity.Role(role))
		} else {
			list = users.List()
		}

		resp := make([]UserResponse, 0, len(list))
		for _, u := range list {
			resp = append(resp, UserResponse{
				ID:          u.ID,
				Name:        u.Name,
				Role:        string(u.Role),
				Specialty:   u.Specialty,
				DateOfBirth: u.DateOfBirth,
				Contact:     u.Contact,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// -- Admin --

func flushHandler(flush func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := flush(); err != nil {
			writeError(w, http.StatusInternalServerError, "flush_failed", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "flushed"})
	}
}
