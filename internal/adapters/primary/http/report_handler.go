package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mw "github.com/drishti/command-center-backend/internal/adapters/primary/http/middleware"
	"github.com/drishti/command-center-backend/internal/adapters/primary/validation"
	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

const maxReportsPerPage = 100

// maxReportUploadBytes caps a report media attachment.
const maxReportUploadBytes = 10 << 20 // 10 MiB

// ReportHandler handles field reports from the public app. Submission is
// open to anonymous users; the optional-auth middleware attaches claims
// when a token is present.
type ReportHandler struct {
	reportService ports.ReportService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(
	reportService ports.ReportService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "report"),
	}
}

// RegisterRoutes sets up the routing for the report endpoints. Submission
// accepts anonymous users; listing requires a token.
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleSubmitReport)
	r.Get("/", h.HandleListReports)
}

// SubmitReportRequest defines the expected body for a field report. JSON
// submissions reference already-hosted media via mediaUrl; multipart
// submissions attach the media file directly.
type SubmitReportRequest struct {
	Type     string   `json:"type"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Text     string   `json:"text"`
	MediaURL string   `json:"mediaUrl"`
}

// Validate validates the report submission. hasMedia reports whether a
// multipart attachment accompanied the request.
func (r *SubmitReportRequest) Validate(hasMedia bool) error {
	v := validation.NewValidator()

	v.Required("type", r.Type).
		OneOf("type", r.Type, []string{"panic", "congestion", "medical", "lost_person", "hazard"})

	v.Custom("text", r.Text != "" || r.MediaURL != "" || hasMedia, "Either text, mediaUrl or a media file is required")

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// SubmitReportResponse is the JSON response for a submitted report.
// Incident is present only when the report auto-escalated.
type SubmitReportResponse struct {
	Report   *domain.Report   `json:"report"`
	Incident *domain.Incident `json:"incident,omitempty"`
}

// HandleSubmitReport handles POST /reports
//
// Accepts either a JSON body or a multipart form with an optional "media"
// file. Audio attachments are transcribed server-side.
func (h *ReportHandler) HandleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var (
		req           *SubmitReportRequest
		media         []byte
		mediaType     string
		mediaFilename string
		err           error
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		req, media, mediaType, mediaFilename, err = h.parseMultipartReport(w, r)
	} else {
		req, err = validation.DecodeAndValidate[SubmitReportRequest](r)
	}
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(len(media) > 0); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	// Anonymous submissions carry no user ID.
	var userID *uuid.UUID
	if claims, ok := mw.GetClaims(r.Context()); ok {
		userID = &claims.UserID
	}

	params := ports.SubmitReportParams{
		UserID:        userID,
		Type:          domain.ReportType(req.Type),
		Lat:           req.Lat,
		Lng:           req.Lng,
		Text:          req.Text,
		MediaURL:      req.MediaURL,
		Media:         media,
		MediaType:     mediaType,
		MediaFilename: mediaFilename,
	}

	report, incident, err := h.reportService.SubmitReport(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if incident != nil {
		h.logger.Info("report escalated to incident",
			"report_id", report.ID,
			"incident_id", incident.ID,
			"type", report.Type,
		)
	}

	WriteCreated(w, SubmitReportResponse{Report: report, Incident: incident})
}

// parseMultipartReport reads a multipart report submission: type/lat/lng/
// text form fields plus an optional "media" attachment.
func (h *ReportHandler) parseMultipartReport(w http.ResponseWriter, r *http.Request) (*SubmitReportRequest, []byte, string, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReportUploadBytes)

	if err := r.ParseMultipartForm(maxReportUploadBytes); err != nil {
		return nil, nil, "", "", apperrors.NewBadRequestError(err, "Invalid multipart form")
	}

	req := &SubmitReportRequest{
		Type: r.FormValue("type"),
		Lat:  parseFormFloat(r, "lat"),
		Lng:  parseFormFloat(r, "lng"),
		Text: r.FormValue("text"),
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		// The attachment is optional; text-only multipart is fine.
		return req, nil, "", "", nil
	}
	defer func() { _ = file.Close() }()

	media, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, "", "", apperrors.NewBadRequestError(err, "Failed to read media attachment")
	}

	return req, media, header.Header.Get("Content-Type"), header.Filename, nil
}

// parseFormFloat reads an optional float form field, returning nil when
// absent or malformed.
func parseFormFloat(r *http.Request, key string) *float64 {
	raw := r.FormValue(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

// HandleListReports handles GET /reports
func (h *ReportHandler) HandleListReports(w http.ResponseWriter, r *http.Request) {
	if _, ok := mw.GetClaims(r.Context()); !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized", Code: "UNAUTHORIZED"})
		return
	}

	pagination := validation.ParsePagination(r, maxReportsPerPage)

	reports, err := h.reportService.ListRecent(r.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, reports)
}
