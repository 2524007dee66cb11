package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/drishti/command-center-backend/internal/adapters/primary/validation"
	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// maxFrameUploadBytes caps a single frame upload.
const maxFrameUploadBytes = 10 << 20 // 10 MiB

// FrameHandler handles frame uploads from cameras and drones.
type FrameHandler struct {
	ingestService ports.IngestService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewFrameHandler creates a new frame handler.
func NewFrameHandler(
	ingestService ports.IngestService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *FrameHandler {
	return &FrameHandler{
		ingestService: ingestService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "frame"),
	}
}

// RegisterRoutes sets up the routing for the frame endpoints.
func (h *FrameHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleUploadFrame)
}

// IngestResponse is the JSON response for a frame upload. Incident is only
// present when the analysis escalated.
type IngestResponse struct {
	Frame    *domain.Frame    `json:"frame"`
	Analysis *domain.Analysis `json:"analysis"`
	Incident *domain.Incident `json:"incident,omitempty"`
}

// HandleUploadFrame handles POST /frames
//
// Expects a multipart form with a "frame" file plus source_id and optional
// width/height fields.
func (h *FrameHandler) HandleUploadFrame(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFrameUploadBytes)

	if err := r.ParseMultipartForm(maxFrameUploadBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid multipart form"))
		return
	}

	sourceID := r.FormValue("source_id")

	v := validation.NewValidator()
	v.Required("source_id", sourceID)

	file, header, err := r.FormFile("frame")
	if err != nil {
		v.Custom("frame", false, "A frame image file is required")
	} else {
		defer func() { _ = file.Close() }()
	}

	if v.HasErrors() {
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Failed to read frame image"))
		return
	}

	params := ports.IngestFrameParams{
		SourceID: sourceID,
		Image:    image,
		Filename: header.Filename,
		Width:    parseFormInt(r, "width"),
		Height:   parseFormInt(r, "height"),
	}

	result, err := h.ingestService.IngestFrame(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if result.Incident != nil {
		h.logger.Info("frame escalated to incident",
			"frame_id", result.Frame.ID,
			"incident_id", result.Incident.ID,
			"severity", result.Incident.Severity,
		)
	}

	WriteCreated(w, IngestResponse{
		Frame:    result.Frame,
		Analysis: result.Analysis,
		Incident: result.Incident,
	})
}

// parseFormInt reads an integer form field, returning 0 when absent or
// malformed.
func parseFormInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(r.FormValue(key))
	if err != nil || value < 0 {
		return 0
	}
	return value
}
