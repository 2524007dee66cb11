package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mw "github.com/drishti/command-center-backend/internal/adapters/primary/http/middleware"
	"github.com/drishti/command-center-backend/internal/adapters/primary/validation"
	"github.com/drishti/command-center-backend/internal/auth"
	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

const maxIncidentsPerPage = 100

// IncidentHandler handles the incident lifecycle endpoints.
type IncidentHandler struct {
	incidentService ports.IncidentService
	errorHandler    *ErrorHandler
	logger          *slog.Logger
}

// NewIncidentHandler creates a new incident handler.
func NewIncidentHandler(
	incidentService ports.IncidentService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *IncidentHandler {
	return &IncidentHandler{
		incidentService: incidentService,
		errorHandler:    errorHandler,
		logger:          logger.With("handler", "incident"),
	}
}

// RegisterRoutes sets up the routing for the incident endpoints.
func (h *IncidentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListIncidents)
	r.Post("/", h.HandleCreateIncident)

	r.Route("/{incidentID}", func(r chi.Router) {
		r.Post("/acknowledge", h.HandleAcknowledgeIncident)
		r.Post("/assign", h.HandleAssignIncident)
	})
}

// CreateIncidentRequest defines the expected JSON body for a manually
// raised incident.
type CreateIncidentRequest struct {
	Severity string `json:"severity"`
	ZoneID   string `json:"zoneId"`
	Summary  string `json:"summary"`
}

// Validate validates the create incident request.
func (r *CreateIncidentRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("severity", r.Severity).
		OneOf("severity", r.Severity, []string{"none", "low", "medium", "high", "critical"})

	v.Required("summary", r.Summary)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// AssignIncidentRequest defines the expected JSON body for dispatching a
// volunteer.
type AssignIncidentRequest struct {
	VolunteerID string `json:"volunteerId"`
}

// Validate validates the assign request.
func (r *AssignIncidentRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("volunteerId", r.VolunteerID).
		UUID("volunteerId", r.VolunteerID)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// HandleListIncidents handles GET /incidents
func (h *IncidentHandler) HandleListIncidents(w http.ResponseWriter, r *http.Request) {
	pagination := validation.ParsePagination(r, maxIncidentsPerPage)

	incidents, err := h.incidentService.ListRecent(r.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, incidents)
}

// HandleCreateIncident handles POST /incidents
func (h *IncidentHandler) HandleCreateIncident(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[CreateIncidentRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	incident, err := h.incidentService.CreateManual(r.Context(), domain.RiskLevel(req.Severity), req.ZoneID, req.Summary)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("incident raised manually",
		"incident_id", incident.ID,
		"severity", incident.Severity,
		"user_id", claims.UserID,
	)

	WriteCreated(w, incident)
}

// HandleAcknowledgeIncident handles POST /incidents/{incidentID}/acknowledge
func (h *IncidentHandler) HandleAcknowledgeIncident(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	incidentID, err := h.parseIncidentID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	incident, err := h.incidentService.Acknowledge(r.Context(), incidentID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("incident acknowledged",
		"incident_id", incidentID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, incident)
}

// HandleAssignIncident handles POST /incidents/{incidentID}/assign
func (h *IncidentHandler) HandleAssignIncident(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	incidentID, err := h.parseIncidentID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[AssignIncidentRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	volunteerID, err := uuid.Parse(req.VolunteerID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	incident, err := h.incidentService.Assign(r.Context(), incidentID, volunteerID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("incident assigned",
		"incident_id", incidentID,
		"volunteer_id", volunteerID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, incident)
}

// getClaims extracts and validates user claims from the request context.
func (h *IncidentHandler) getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "Not authorized",
			Code:  "UNAUTHORIZED",
		})
		return nil, false
	}
	return claims, true
}

// parseIncidentID extracts and validates the incident ID from the URL.
func (h *IncidentHandler) parseIncidentID(r *http.Request) (uuid.UUID, error) {
	incidentID, err := uuid.Parse(chi.URLParam(r, "incidentID"))
	if err != nil {
		v := validation.NewValidator()
		v.Custom("incidentID", false, "Invalid incident ID")
		return uuid.Nil, v.Errors()
	}
	return incidentID, nil
}
