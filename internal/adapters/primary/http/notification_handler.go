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

const maxNotificationsPerPage = 100

// NotificationHandler handles admin announcements.
type NotificationHandler struct {
	notificationService ports.NotificationService
	errorHandler        *ErrorHandler
	logger              *slog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(
	notificationService ports.NotificationService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		errorHandler:        errorHandler,
		logger:              logger.With("handler", "notification"),
	}
}

// RegisterRoutes sets up the routing for the notification endpoints.
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListNotifications)
	r.Post("/", h.HandleCreateNotification)
	r.Post("/{notificationID}/acknowledge", h.HandleAcknowledgeNotification)
}

// CreateNotificationRequest defines the expected JSON body for an
// announcement.
type CreateNotificationRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Severity string `json:"severity"`
}

// Validate validates the create notification request.
func (r *CreateNotificationRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("title", r.Title).
		MaxLength("title", r.Title, 200)

	if r.Severity != "" {
		v.OneOf("severity", r.Severity, []string{"none", "low", "medium", "high", "critical"})
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// HandleListNotifications handles GET /notifications
func (h *NotificationHandler) HandleListNotifications(w http.ResponseWriter, r *http.Request) {
	pagination := validation.ParsePagination(r, maxNotificationsPerPage)

	notifications, err := h.notificationService.ListRecent(r.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, notifications)
}

// HandleCreateNotification handles POST /notifications
func (h *NotificationHandler) HandleCreateNotification(w http.ResponseWriter, r *http.Request) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized", Code: "UNAUTHORIZED"})
		return
	}

	req, err := validation.DecodeAndValidate[CreateNotificationRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	notification, err := h.notificationService.Create(r.Context(), ports.CreateNotificationParams{
		CreatedBy: claims.UserID,
		Title:     req.Title,
		Body:      req.Body,
		Severity:  domain.RiskLevel(req.Severity),
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("notification created",
		"notification_id", notification.ID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, notification)
}

// HandleAcknowledgeNotification handles POST /notifications/{notificationID}/acknowledge
func (h *NotificationHandler) HandleAcknowledgeNotification(w http.ResponseWriter, r *http.Request) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized", Code: "UNAUTHORIZED"})
		return
	}

	notificationID, err := uuid.Parse(chi.URLParam(r, "notificationID"))
	if err != nil {
		v := validation.NewValidator()
		v.Custom("notificationID", false, "Invalid notification ID")
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	notification, err := h.notificationService.Acknowledge(r.Context(), notificationID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, notification)
}
