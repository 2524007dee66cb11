package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drishti/command-center-backend/internal/core/ports"
)

// StatsHandler serves the dashboard overview aggregate.
type StatsHandler struct {
	statsService ports.StatsService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(
	statsService ports.StatsService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "stats"),
	}
}

// RegisterRoutes sets up the routing for the stats endpoints.
func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/overview", h.HandleOverview)
}

// HandleOverview handles GET /stats/overview
func (h *StatsHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Overview(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}
