package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/drishti/command-center-backend/internal/adapters/primary/validation"
	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// VolunteerHandler handles the responder roster endpoints.
type VolunteerHandler struct {
	volunteerService ports.VolunteerService
	errorHandler     *ErrorHandler
	logger           *slog.Logger
}

// NewVolunteerHandler creates a new volunteer handler.
func NewVolunteerHandler(
	volunteerService ports.VolunteerService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *VolunteerHandler {
	return &VolunteerHandler{
		volunteerService: volunteerService,
		errorHandler:     errorHandler,
		logger:           logger.With("handler", "volunteer"),
	}
}

// RegisterRoutes sets up the routing for the volunteer endpoints.
func (h *VolunteerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListVolunteers)
	r.Patch("/{volunteerID}/status", h.HandleSetVolunteerStatus)
}

// SetVolunteerStatusRequest defines the expected JSON body for an
// availability change.
type SetVolunteerStatusRequest struct {
	Status string `json:"status"`
}

// Validate validates the status request.
func (r *SetVolunteerStatusRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("status", r.Status).
		OneOf("status", r.Status, []string{"available", "assigned", "on_break", "offline"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// HandleListVolunteers handles GET /volunteers
func (h *VolunteerHandler) HandleListVolunteers(w http.ResponseWriter, r *http.Request) {
	volunteers, err := h.volunteerService.List(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, volunteers)
}

// HandleSetVolunteerStatus handles PATCH /volunteers/{volunteerID}/status
func (h *VolunteerHandler) HandleSetVolunteerStatus(w http.ResponseWriter, r *http.Request) {
	volunteerID, err := uuid.Parse(chi.URLParam(r, "volunteerID"))
	if err != nil {
		v := validation.NewValidator()
		v.Custom("volunteerID", false, "Invalid volunteer ID")
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	req, err := validation.DecodeAndValidate[SetVolunteerStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	volunteer, err := h.volunteerService.SetStatus(r.Context(), volunteerID, domain.VolunteerStatus(req.Status))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("volunteer status changed",
		"volunteer_id", volunteerID,
		"status", volunteer.Status,
	)

	WriteJSON(w, http.StatusOK, volunteer)
}
