package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drishti/command-center-backend/internal/adapters/primary/validation"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// AlertHandler handles multilingual alert broadcasts.
type AlertHandler struct {
	alertService ports.AlertService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(
	alertService ports.AlertService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "alert"),
	}
}

// RegisterRoutes sets up the routing for the alert endpoints.
func (h *AlertHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleGenerateAlert)
}

// GenerateAlertRequest defines the expected JSON body for an alert.
type GenerateAlertRequest struct {
	Zone      string   `json:"zone"`
	AlertType string   `json:"alertType"`
	Languages []string `json:"languages"`
}

// Validate validates the alert request.
func (r *GenerateAlertRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("zone", r.Zone)

	if r.AlertType != "" {
		v.OneOf("alertType", r.AlertType, []string{"evacuation", "congestion", "medical", "general"})
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// HandleGenerateAlert handles POST /alerts
func (h *AlertHandler) HandleGenerateAlert(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[GenerateAlertRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	alert, err := h.alertService.GenerateAlert(r.Context(), ports.GenerateAlertParams{
		Zone:      req.Zone,
		AlertType: req.AlertType,
		Languages: req.Languages,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("alert generated", "zone", alert.Zone, "alert_type", alert.AlertType)

	WriteCreated(w, alert)
}
