package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drishti/command-center-backend/internal/adapters/primary/validation"
	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// SourceHandler handles camera/drone/sensor feed registration.
type SourceHandler struct {
	sourceService ports.SourceService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewSourceHandler creates a new source handler.
func NewSourceHandler(
	sourceService ports.SourceService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *SourceHandler {
	return &SourceHandler{
		sourceService: sourceService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "source"),
	}
}

// RegisterRoutes sets up the routing for the source endpoints.
func (h *SourceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListSources)
	r.Post("/", h.HandleRegisterSource)
}

// RegisterSourceRequest defines the expected JSON body for registering a
// feed.
type RegisterSourceRequest struct {
	SourceID string   `json:"sourceId"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Location string   `json:"location"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Protocol string   `json:"protocol"`
}

// Validate validates the source registration request.
func (r *RegisterSourceRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("sourceId", r.SourceID)
	v.Required("name", r.Name)

	v.Required("type", r.Type).
		OneOf("type", r.Type, []string{"camera", "drone", "sensor"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// HandleListSources handles GET /sources
func (h *SourceHandler) HandleListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.sourceService.List(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, sources)
}

// HandleRegisterSource handles POST /sources
func (h *SourceHandler) HandleRegisterSource(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[RegisterSourceRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	source, err := h.sourceService.Register(r.Context(), ports.RegisterSourceParams{
		SourceID: req.SourceID,
		Name:     req.Name,
		Type:     domain.SourceType(req.Type),
		Location: req.Location,
		Lat:      req.Lat,
		Lng:      req.Lng,
		Protocol: req.Protocol,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("source registered",
		"source_id", source.SourceID,
		"type", source.Type,
	)

	WriteCreated(w, source)
}
