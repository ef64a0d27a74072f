package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/openclinic/hms/internal/identity"
	"github.com/openclinic/hms/internal/pharmacy"
	"github.com/openclinic/hms/internal/scheduling"
)

type RouterConfig struct {
	Engine   *scheduling.Service
	Pharmacy *pharmacy.Service
	Meds     *pharmacy.CSVMedicationStore
	Users    *identity.CSVUserStore
	Flush    func() error // writes all CSV tables back to disk
	Counts   func() map[string]int
	Logger   zerolog.Logger
	Env      string
	Version  string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	health := NewHealthHandler(cfg.Counts, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/slots", func(r chi.Router) {
		r.Get("/", listSlotsHandler(cfg.Engine))
		r.Post("/", createSlotHandler(cfg.Engine))
		r.Get("/{id}", getSlotHandler(cfg.Engine))
		r.Delete("/{id}", withdrawSlotHandler(cfg.Engine))
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Post("/", bookAppointmentHandler(cfg.Engine))
		r.Get("/", listAppointmentsHandler(cfg.Engine))
		r.Get("/{id}", getAppointmentHandler(cfg.Engine))
		r.Post("/{id}/accept", decideAppointmentHandler(cfg.Engine, true))
		r.Post("/{id}/decline", decideAppointmentHandler(cfg.Engine, false))
		r.Post("/{id}/cancel", cancelAppointmentHandler(cfg.Engine))
		r.Post("/{id}/reschedule", rescheduleAppointmentHandler(cfg.Engine))
		r.Post("/{id}/complete", completeAppointmentHandler(cfg.Engine))
		r.Get("/{id}/prescriptions", listPrescriptionsHandler(cfg.Engine))
	})

	r.Route("/outcomes", func(r chi.Router) {
		r.Get("/{id}", getOutcomeHandler(cfg.Engine))
		r.Patch("/{id}", updateOutcomeHandler(cfg.Engine))
		r.Post("/{id}/prescriptions", addPrescriptionHandler(cfg.Engine))
		r.Delete("/{id}/prescriptions/{prescriptionID}", removePrescriptionHandler(cfg.Engine))
	})

	r.Get("/medications", listMedicationsHandler(cfg.Meds))
	r.Post("/prescriptions/{id}/dispense", dispenseHandler(cfg.Pharmacy))
	r.Get("/users", listUsersHandler(cfg.Users))

	r.Post("/admin/flush", flushHandler(cfg.Flush))

	return r
}
