// Package handlers exposes the print-preparation pipeline and the order
// confirmation workflow over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
	"github.com/brian-kiplagat/image-resizer/internal/infra"
	"github.com/brian-kiplagat/image-resizer/internal/orderflow"
	"github.com/brian-kiplagat/image-resizer/internal/printprep"
)

// App holds the request-independent wiring: configuration, logger, the paper
// resolver and the external collaborators. All fields are read-only after
// startup, so the container is safe under concurrent requests.
type App struct {
	Config    *infra.Config
	Logger    zerolog.Logger
	Resolver  *printprep.Resolver
	Publisher domain.Publisher
	Confirmer *orderflow.Confirmer
}

// NewApp assembles the handler container.
func NewApp(cfg *infra.Config, logger zerolog.Logger, resolver *printprep.Resolver, publisher domain.Publisher, confirmer *orderflow.Confirmer) *App {
	return &App{
		Config:    cfg,
		Logger:    logger,
		Resolver:  resolver,
		Publisher: publisher,
		Confirmer: confirmer,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// clientError answers a validation failure: 400 with a stable error field.
func (a *App) clientError(w http.ResponseWriter, msg string) {
	a.json(w, http.StatusBadRequest, map[string]any{"error": msg})
}

// processingError answers a pipeline failure: 500 with the underlying cause
// in reason, never a stack trace.
func (a *App) processingError(w http.ResponseWriter, reason string, extra map[string]any) {
	payload := map[string]any{"error": "Failed to process image.", "reason": reason}
	for k, v := range extra {
		payload[k] = v
	}
	a.json(w, http.StatusInternalServerError, payload)
}

// statusFor maps domain error kinds onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrGeometry):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Health reports process liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
