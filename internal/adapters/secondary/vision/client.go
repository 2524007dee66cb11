package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Client calls the external vision service for frame classification, image
// embeddings and audio transcription. It implements ports.FrameAnalyzer,
// ports.ImageEmbedder and ports.Transcriber.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var (
	_ ports.FrameAnalyzer = (*Client)(nil)
	_ ports.ImageEmbedder = (*Client)(nil)
	_ ports.Transcriber   = (*Client)(nil)
)

// NewClient creates a vision service client.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger.With("component", "vision_client"),
	}
}

type analyzeRequest struct {
	Image    []byte `json:"image"`
	Location string `json:"location"`
}

type analyzeResponse struct {
	CrowdDensity      string   `json:"crowd_density"`
	EstimatedPeople   int      `json:"estimated_people"`
	RiskLevel         string   `json:"risk_level"`
	DetectedBehaviors []string `json:"detected_behaviors"`
	Confidence        float64  `json:"confidence"`
}

// AnalyzeFrame submits one frame for classification. Unknown risk values in
// the response are clamped to none rather than propagated.
func (c *Client) AnalyzeFrame(ctx context.Context, image []byte, location string) (*ports.FrameJudgment, error) {
	var resp analyzeResponse
	if err := c.post(ctx, "/analyze", analyzeRequest{Image: image, Location: location}, &resp); err != nil {
		return nil, err
	}

	judgment := &ports.FrameJudgment{
		CrowdDensity:      domain.RiskLevel(resp.CrowdDensity),
		EstimatedPeople:   resp.EstimatedPeople,
		RiskLevel:         domain.RiskLevel(resp.RiskLevel),
		DetectedBehaviors: resp.DetectedBehaviors,
		Confidence:        resp.Confidence,
	}
	if !judgment.RiskLevel.Valid() {
		c.logger.Warn("vision service returned unknown risk level", "risk_level", resp.RiskLevel)
		judgment.RiskLevel = domain.RiskNone
	}
	if !judgment.CrowdDensity.Valid() {
		judgment.CrowdDensity = domain.RiskNone
	}
	return judgment, nil
}

type embedRequest struct {
	Image []byte `json:"image"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// EmbedImage returns the embedding vector for an uploaded image.
func (c *Client) EmbedImage(ctx context.Context, image []byte) ([]float64, error) {
	var resp embedResponse
	if err := c.post(ctx, "/embed", embedRequest{Image: image}, &resp); err != nil {
		return nil, err
	}
	return resp.Embedding, nil
}

type transcribeRequest struct {
	Audio []byte `json:"audio"`
}

type transcribeResponse struct {
	Transcript string `json:"transcript"`
}

// Transcribe converts an uploaded audio clip to text.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var resp transcribeResponse
	if err := c.post(ctx, "/transcribe", transcribeRequest{Audio: audio}, &resp); err != nil {
		return "", err
	}
	return resp.Transcript, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrAnalyzerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", apperrors.ErrAnalyzerUnavailable, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
