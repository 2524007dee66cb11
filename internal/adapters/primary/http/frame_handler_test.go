package http

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, file []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadFrameValidation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewFrameHandler(nil, NewErrorHandler(logger), logger)

	router := chi.NewRouter()
	router.Route("/frames", handler.RegisterRoutes)

	t.Run("missing source_id is rejected even with a frame file", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, "frame", "frame.jpg", []byte{0xff, 0xd8, 0xff})

		req := httptest.NewRequest(stdhttp.MethodPost, "/frames", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(t, stdhttp.StatusBadRequest, recorder.Code, recorder.Body.String())
	})

	t.Run("missing frame file is rejected", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"source_id": "cam-1"}, "", "", nil)

		req := httptest.NewRequest(stdhttp.MethodPost, "/frames", body)
		req.Header.Set("Content-Type", contentType)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(t, stdhttp.StatusBadRequest, recorder.Code, recorder.Body.String())
	})
}
