package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ev-charging/api/internal/api/types"
	"github.com/ev-charging/api/pkg/logger"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
	Driver() string
}

type HealthHandler struct {
	env   string
	store Pinger
	now   func() time.Time
}

func NewHealthHandler(env string, store Pinger) *HealthHandler {
	return &HealthHandler{env: env, store: store, now: time.Now}
}

// Liveness godoc
// @Summary  Liveness check
// @Tags     health
// @Produce  json
// @Success  200 {object} types.HealthResponse
// @Router   /health [get]
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{
		Message:     "EV Charging Stations API is running!",
		Timestamp:   h.now().UTC(),
		Environment: h.env,
	})
}

// Readiness godoc
// @Summary  Readiness check
// @Tags     health
// @Produce  json
// @Success  200 {object} types.ReadinessResponse
// @Failure  503 {object} types.ReadinessResponse
// @Router   /ready [get]
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		logger.L().Warn("readiness check failed", zap.String("storage", h.store.Driver()), zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, types.ReadinessResponse{Status: "unavailable", Storage: h.store.Driver()})
		return
	}
	writeJSON(w, http.StatusOK, types.ReadinessResponse{Status: "ready", Storage: h.store.Driver()})
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.WelcomeResponse{
		Message: "Welcome to EV Charging Stations API",
		Endpoints: map[string]string{
			"health":   "/api/health",
			"auth":     "/api/auth",
			"stations": "/api/stations",
			"docs":     "/docs/index.html",
		},
	})
}
