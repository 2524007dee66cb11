package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/drishti/command-center-backend/internal/adapters/primary/validation"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// maxSearchUploadBytes caps a lost-person search image upload.
const maxSearchUploadBytes = 10 << 20 // 10 MiB

// LostPersonHandler handles missing-person cases and image search.
type LostPersonHandler struct {
	lostPersonService ports.LostPersonService
	errorHandler      *ErrorHandler
	logger            *slog.Logger
}

// NewLostPersonHandler creates a new lost person handler.
func NewLostPersonHandler(
	lostPersonService ports.LostPersonService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *LostPersonHandler {
	return &LostPersonHandler{
		lostPersonService: lostPersonService,
		errorHandler:      errorHandler,
		logger:            logger.With("handler", "lost_person"),
	}
}

// RegisterRoutes sets up the routing for the lost person endpoints.
func (h *LostPersonHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleRegisterLostPerson)
	r.Post("/search", h.HandleSearchLostPerson)
}

// RegisterLostPersonRequest defines the expected JSON body for a
// missing-person case. Embedding is the reference image vector computed by
// the vision pipeline at upload time.
type RegisterLostPersonRequest struct {
	ReportID         string    `json:"reportId"`
	Description      string    `json:"description"`
	ImageURL         string    `json:"imageUrl"`
	Embedding        []float64 `json:"embedding"`
	Age              *int      `json:"age"`
	LastSeenLocation string    `json:"lastSeenLocation"`
	ContactInfo      string    `json:"contactInfo"`
}

// Validate validates the registration request.
func (r *RegisterLostPersonRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("reportId", r.ReportID).
		UUID("reportId", r.ReportID)

	v.Required("description", r.Description)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// HandleRegisterLostPerson handles POST /lost-persons
func (h *LostPersonHandler) HandleRegisterLostPerson(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[RegisterLostPersonRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	reportID, err := uuid.Parse(req.ReportID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var embedding string
	if len(req.Embedding) > 0 {
		encoded, err := json.Marshal(req.Embedding)
		if err != nil {
			h.errorHandler.Handle(w, r, err)
			return
		}
		embedding = string(encoded)
	}

	person, err := h.lostPersonService.Register(r.Context(), ports.RegisterLostPersonParams{
		ReportID:         reportID,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		Embedding:        embedding,
		Age:              req.Age,
		LastSeenLocation: req.LastSeenLocation,
		ContactInfo:      req.ContactInfo,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("lost person case registered",
		"case_id", person.ID,
		"report_id", reportID,
	)

	WriteCreated(w, person)
}

// HandleSearchLostPerson handles POST /lost-persons/search
//
// Expects a multipart form with an "image" file to match against
// registered cases.
func (h *LostPersonHandler) HandleSearchLostPerson(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSearchUploadBytes)

	if err := r.ParseMultipartForm(maxSearchUploadBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid multipart form"))
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		v := validation.NewValidator()
		v.Custom("image", false, "An image file is required")
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Failed to read image"))
		return
	}

	matches, err := h.lostPersonService.Search(r.Context(), image)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("lost person search completed", "matches", len(matches))

	WriteList(w, matches)
}
