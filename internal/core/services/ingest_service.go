package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// IngestService runs the frame pipeline: obtain a vision judgment, persist
// the frame and analysis in one transaction, and raise an incident when the
// judged risk reaches medium or above. The incident broadcast happens only
// after the transaction commits.
type IngestService struct {
	sourceRepo   ports.SourceRepository
	frameRepo    ports.FrameRepository
	analysisRepo ports.AnalysisRepository
	incidentRepo ports.IncidentRepository
	analyzer     ports.FrameAnalyzer
	broadcaster  ports.Broadcaster
	tx           ports.Transactor
	logger       *slog.Logger
}

var _ ports.IngestService = (*IngestService)(nil)

// NewIngestService creates a new frame ingest service.
func NewIngestService(
	sourceRepo ports.SourceRepository,
	frameRepo ports.FrameRepository,
	analysisRepo ports.AnalysisRepository,
	incidentRepo ports.IncidentRepository,
	analyzer ports.FrameAnalyzer,
	broadcaster ports.Broadcaster,
	tx ports.Transactor,
	logger *slog.Logger,
) ports.IngestService {
	return &IngestService{
		sourceRepo:   sourceRepo,
		frameRepo:    frameRepo,
		analysisRepo: analysisRepo,
		incidentRepo: incidentRepo,
		analyzer:     analyzer,
		broadcaster:  broadcaster,
		tx:           tx,
		logger:       logger.With("component", "ingest_service"),
	}
}

// IngestFrame processes one uploaded frame end to end.
func (s *IngestService) IngestFrame(ctx context.Context, params ports.IngestFrameParams) (*ports.IngestResult, error) {
	if params.SourceID == "" {
		return nil, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "sourceId is required")
	}
	if len(params.Image) == 0 {
		return nil, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "image payload is empty")
	}

	source, err := s.ensureSource(ctx, params.SourceID)
	if err != nil {
		return nil, err
	}

	// The analyzer runs before the transaction opens so a slow vision
	// service never holds database locks.
	judgment := s.judge(ctx, params.Image, source.Location)

	frame := &domain.Frame{
		ID:         uuid.New(),
		SourceID:   source.SourceID,
		Width:      params.Width,
		Height:     params.Height,
		CapturedAt: time.Now().UTC(),
	}
	frame.StorageURL = fmt.Sprintf("frames/%s.jpg", frame.ID)

	analysis := &domain.Analysis{
		ID:                uuid.New(),
		FrameID:           frame.ID,
		CrowdDensity:      judgment.CrowdDensity,
		EstimatedPeople:   judgment.EstimatedPeople,
		RiskLevel:         judgment.RiskLevel,
		DetectedBehaviors: judgment.DetectedBehaviors,
		Confidence:        judgment.Confidence,
		CreatedAt:         time.Now().UTC(),
	}

	var incident *domain.Incident
	if analysis.RiskLevel.AtLeast(domain.RiskMedium) {
		summary := fmt.Sprintf("%s risk detected at %s", analysis.RiskLevel, source.Location)
		incident, err = domain.NewIncident(domain.KindAnalysis, analysis.RiskLevel, source.Location, summary)
		if err != nil {
			return nil, err
		}
		incident.SourceFrameID = &frame.ID
	}

	// Frame, analysis and incident land atomically; a dashboard reacting
	// to the push can immediately read all three back.
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		if frame, txErr = s.frameRepo.Create(ctx, frame); txErr != nil {
			return txErr
		}
		if analysis, txErr = s.analysisRepo.Create(ctx, analysis); txErr != nil {
			return txErr
		}
		if incident != nil {
			if incident, txErr = s.incidentRepo.Create(ctx, incident); txErr != nil {
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &ports.IngestResult{Frame: frame, Analysis: analysis, Incident: incident}

	if incident != nil {
		s.broadcaster.Broadcast(domain.EventIncident, IncidentEventPayload{
			Event:    incident,
			Analysis: analysis,
			Frame:    frame,
		})
	}

	return result, nil
}

// ensureSource looks the feed up and registers it on first sight, so field
// devices can start streaming without a provisioning step.
func (s *IngestService) ensureSource(ctx context.Context, sourceID string) (*domain.Source, error) {
	source, err := s.sourceRepo.GetBySourceID(ctx, sourceID)
	if err == nil {
		return source, nil
	}
	if !errors.Is(err, apperrors.ErrSourceNotFound) {
		return nil, err
	}

	return s.sourceRepo.Create(ctx, &domain.Source{
		ID:        uuid.New(),
		SourceID:  sourceID,
		Name:      sourceID,
		Type:      domain.SourceCamera,
		Location:  sourceID,
		Status:    "active",
		CreatedAt: time.Now().UTC(),
	})
}

// judge calls the vision collaborator. An unavailable analyzer degrades to a
// no-risk judgment instead of failing the upload; the frame is still stored
// for later reprocessing.
func (s *IngestService) judge(ctx context.Context, image []byte, location string) *ports.FrameJudgment {
	judgment, err := s.analyzer.AnalyzeFrame(ctx, image, location)
	if err != nil {
		s.logger.Warn("frame analysis unavailable, storing frame without judgment", "error", err)
		return &ports.FrameJudgment{
			CrowdDensity: domain.RiskNone,
			RiskLevel:    domain.RiskNone,
		}
	}
	return judgment
}
