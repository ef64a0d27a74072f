package api

import "net/http"

type HealthHandler struct {
	counts  func() map[string]int
	env     string
	version string
}

func NewHealthHandler(counts func() map[string]int, env, version string) *HealthHandler {
	return &HealthHandler{counts: counts, env: env, version: version}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status  string         `json:"status"`
	Version string         `json:"version,omitempty"`
	Env     string         `json:"env,omitempty"`
	Tables  map[string]int `json:"tables"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	})
}

// Readiness reports the loaded record count per CSV table. All tables are
// loaded at startup, so a serving process is ready by construction; the
// counts are exposed for operators.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ReadinessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
		Tables:  h.counts(),
	})
}
