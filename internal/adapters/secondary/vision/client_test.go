package vision

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_AnalyzeFrame(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a judgment", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/analyze", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"crowd_density":      "high",
				"estimated_people":   450,
				"risk_level":         "medium",
				"detected_behaviors": []string{"surge", "counterflow"},
				"confidence":         0.87,
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, testLogger())
		judgment, err := client.AnalyzeFrame(ctx, []byte{0xff}, "west gate")

		require.NoError(t, err)
		assert.Equal(t, domain.RiskMedium, judgment.RiskLevel)
		assert.Equal(t, 450, judgment.EstimatedPeople)
		assert.Equal(t, []string{"surge", "counterflow"}, judgment.DetectedBehaviors)
	})

	t.Run("clamps unknown risk level to none", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"risk_level": "apocalyptic"})
		}))
		defer server.Close()

		client := NewClient(server.URL, testLogger())
		judgment, err := client.AnalyzeFrame(ctx, []byte{0xff}, "west gate")

		require.NoError(t, err)
		assert.Equal(t, domain.RiskNone, judgment.RiskLevel)
	})

	t.Run("non-200 maps to analyzer unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, testLogger())
		_, err := client.AnalyzeFrame(ctx, []byte{0xff}, "west gate")

		assert.ErrorIs(t, err, apperrors.ErrAnalyzerUnavailable)
	})

	t.Run("unreachable service maps to analyzer unavailable", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", testLogger())
		_, err := client.AnalyzeFrame(ctx, []byte{0xff}, "west gate")

		assert.ErrorIs(t, err, apperrors.ErrAnalyzerUnavailable)
	})
}

func TestClient_Transcribe(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the transcript", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transcribe", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{"transcript": "medical help needed near the ghat"})
		}))
		defer server.Close()

		client := NewClient(server.URL, testLogger())
		transcript, err := client.Transcribe(ctx, []byte{0x1a, 0x45})

		require.NoError(t, err)
		assert.Equal(t, "medical help needed near the ghat", transcript)
	})

	t.Run("non-200 maps to analyzer unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL, testLogger())
		_, err := client.Transcribe(ctx, []byte{0x1a, 0x45})

		assert.ErrorIs(t, err, apperrors.ErrAnalyzerUnavailable)
	})
}

func TestClient_EmbedImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embed", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	embedding, err := client.EmbedImage(context.Background(), []byte{0xff})

	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, embedding)
}
