package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mw "github.com/drishti/command-center-backend/internal/adapters/primary/http/middleware"
	"github.com/drishti/command-center-backend/internal/adapters/primary/validation"
	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// HelpRequestHandler handles the help-request dispatch endpoints.
type HelpRequestHandler struct {
	helpRequestService ports.HelpRequestService
	errorHandler       *ErrorHandler
	logger             *slog.Logger
}

// NewHelpRequestHandler creates a new help request handler.
func NewHelpRequestHandler(
	helpRequestService ports.HelpRequestService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *HelpRequestHandler {
	return &HelpRequestHandler{
		helpRequestService: helpRequestService,
		errorHandler:       errorHandler,
		logger:             logger.With("handler", "help_request"),
	}
}

// RegisterRoutes sets up the routing for the help request endpoints.
func (h *HelpRequestHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListOpenHelpRequests)
	r.Post("/", h.HandleCreateHelpRequest)
	r.Patch("/{requestID}", h.HandleUpdateHelpRequest)
}

// CreateHelpRequestRequest defines the expected JSON body for a help
// request.
type CreateHelpRequestRequest struct {
	RequestType string   `json:"requestType"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// Validate validates the create help request.
func (r *CreateHelpRequestRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("requestType", r.RequestType).
		OneOf("requestType", r.RequestType, []string{"medical", "lost_person", "security", "general"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateHelpRequestRequest defines the expected JSON body for a status or
// assignment change. Both fields are optional but at least one must be
// present.
type UpdateHelpRequestRequest struct {
	Status     *string `json:"status"`
	AssignedTo *string `json:"assignedTo"`
}

// Validate validates the update request.
func (r *UpdateHelpRequestRequest) Validate() error {
	v := validation.NewValidator()

	v.Custom("status", r.Status != nil || r.AssignedTo != nil, "Either status or assignedTo is required")

	if r.Status != nil {
		v.OneOf("status", *r.Status, []string{"pending", "in_progress", "resolved", "cancelled"})
	}
	if r.AssignedTo != nil {
		v.UUID("assignedTo", *r.AssignedTo)
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// HandleListOpenHelpRequests handles GET /help-requests
func (h *HelpRequestHandler) HandleListOpenHelpRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.helpRequestService.ListOpen(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, requests)
}

// HandleCreateHelpRequest handles POST /help-requests
func (h *HelpRequestHandler) HandleCreateHelpRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized", Code: "UNAUTHORIZED"})
		return
	}

	req, err := validation.DecodeAndValidate[CreateHelpRequestRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	request, err := h.helpRequestService.Create(r.Context(), ports.CreateHelpRequestParams{
		UserID:      claims.UserID,
		RequestType: domain.HelpRequestType(req.RequestType),
		Description: req.Description,
		Location:    req.Location,
		Lat:         req.Lat,
		Lng:         req.Lng,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("help request created",
		"request_id", request.ID,
		"request_type", request.RequestType,
		"user_id", claims.UserID,
	)

	WriteCreated(w, request)
}

// HandleUpdateHelpRequest handles PATCH /help-requests/{requestID}
func (h *HelpRequestHandler) HandleUpdateHelpRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		v := validation.NewValidator()
		v.Custom("requestID", false, "Invalid help request ID")
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	req, err := validation.DecodeAndValidate[UpdateHelpRequestRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.UpdateHelpRequestParams{RequestID: requestID}
	if req.Status != nil {
		status := domain.HelpRequestStatus(*req.Status)
		params.Status = &status
	}
	if req.AssignedTo != nil {
		assignee, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			h.errorHandler.Handle(w, r, err)
			return
		}
		params.AssignedTo = &assignee
	}

	request, err := h.helpRequestService.Update(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("help request updated",
		"request_id", requestID,
		"status", request.Status,
	)

	WriteJSON(w, http.StatusOK, request)
}
