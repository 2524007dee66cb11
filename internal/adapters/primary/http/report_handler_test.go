package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// capturingReportService records the params the handler hands over.
type capturingReportService struct {
	params ports.SubmitReportParams
}

func (s *capturingReportService) SubmitReport(_ context.Context, params ports.SubmitReportParams) (*domain.Report, *domain.Incident, error) {
	s.params = params
	return &domain.Report{ID: uuid.New(), Type: params.Type, Severity: domain.RiskMedium}, nil, nil
}

func (s *capturingReportService) ListRecent(context.Context, int, int) ([]*domain.Report, error) {
	return nil, nil
}

func newReportRouter(service ports.ReportService) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewReportHandler(service, NewErrorHandler(logger), logger)

	router := chi.NewRouter()
	router.Route("/reports", handler.RegisterRoutes)
	return router
}

func TestSubmitReportMultipart(t *testing.T) {
	t.Run("media attachment is forwarded to the service", func(t *testing.T) {
		service := &capturingReportService{}
		router := newReportRouter(service)

		audio := []byte{0x1a, 0x45, 0xdf, 0xa3}
		body, contentType := multipartBody(t,
			map[string]string{"type": "hazard", "lat": "23.18241", "lng": "75.76842"},
			"media", "voice-note.webm", audio)

		req := httptest.NewRequest(stdhttp.MethodPost, "/reports", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(t, stdhttp.StatusCreated, recorder.Code, recorder.Body.String())

		assert.Equal(t, domain.ReportHazard, service.params.Type)
		assert.Equal(t, audio, service.params.Media)
		assert.Equal(t, "voice-note.webm", service.params.MediaFilename)
		require.NotNil(t, service.params.Lat)
		assert.InDelta(t, 23.18241, *service.params.Lat, 1e-9)
	})

	t.Run("multipart without text or media is rejected", func(t *testing.T) {
		service := &capturingReportService{}
		router := newReportRouter(service)

		body, contentType := multipartBody(t, map[string]string{"type": "hazard"}, "", "", nil)

		req := httptest.NewRequest(stdhttp.MethodPost, "/reports", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(t, stdhttp.StatusBadRequest, recorder.Code)
	})

	t.Run("json submission still works", func(t *testing.T) {
		service := &capturingReportService{}
		router := newReportRouter(service)

		payload, _ := json.Marshal(SubmitReportRequest{Type: "congestion", Text: "queue backing up"})
		req := httptest.NewRequest(stdhttp.MethodPost, "/reports", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(t, stdhttp.StatusCreated, recorder.Code, recorder.Body.String())
		assert.Equal(t, "queue backing up", service.params.Text)
		assert.Empty(t, service.params.Media)
	})
}
