package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// ReportService accepts pilgrim field reports and escalates the urgent ones
// into incidents. Voice reports are transcribed so the triage view can read
// them without playback.
type ReportService struct {
	reportRepo   ports.ReportRepository
	incidentRepo ports.IncidentRepository
	transcriber  ports.Transcriber
	broadcaster  ports.Broadcaster
	logger       *slog.Logger
}

var _ ports.ReportService = (*ReportService)(nil)

// NewReportService creates a new report service.
func NewReportService(
	reportRepo ports.ReportRepository,
	incidentRepo ports.IncidentRepository,
	transcriber ports.Transcriber,
	broadcaster ports.Broadcaster,
	logger *slog.Logger,
) ports.ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		incidentRepo: incidentRepo,
		transcriber:  transcriber,
		broadcaster:  broadcaster,
		logger:       logger.With("component", "report_service"),
	}
}

// SubmitReport stores a report and, for panic and medical reports, raises an
// incident and pushes it to every dashboard. The returned incident is nil
// when the report did not escalate.
func (s *ReportService) SubmitReport(ctx context.Context, params ports.SubmitReportParams) (*domain.Report, *domain.Incident, error) {
	mediaURL := params.MediaURL
	transcript := ""
	if len(params.Media) > 0 {
		mediaURL = fmt.Sprintf("reports/%s-%s", uuid.New(), params.MediaFilename)
		transcript = s.transcribe(ctx, params)
	}

	text := params.Text
	if text == "" {
		text = transcript
	}

	report, err := domain.NewReport(params.UserID, params.Type, params.Lat, params.Lng, text, mediaURL)
	if err != nil {
		return nil, nil, err
	}
	report.Transcript = transcript

	report, err = s.reportRepo.Create(ctx, report)
	if err != nil {
		return nil, nil, err
	}

	if !report.Escalates() {
		return report, nil, nil
	}

	summary := report.Text
	if summary == "" {
		summary = fmt.Sprintf("%s report submitted from the field", report.Type)
	}

	incident, err := domain.NewIncident(domain.KindReport, report.Severity, locationLabel(report), summary)
	if err != nil {
		return nil, nil, err
	}
	incident.RelatedReportID = &report.ID

	incident, err = s.incidentRepo.Create(ctx, incident)
	if err != nil {
		return nil, nil, err
	}

	s.broadcaster.Broadcast(domain.EventIncident, IncidentEventPayload{
		Event:  incident,
		Report: report,
	})

	return report, incident, nil
}

// ListRecent returns the newest reports for the triage view.
func (s *ReportService) ListRecent(ctx context.Context, limit, offset int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.reportRepo.ListRecent(ctx, limit, offset)
}

// transcribe converts an uploaded audio attachment to text. A failed or
// unavailable transcriber degrades to an empty transcript; the report and
// its media are kept either way.
func (s *ReportService) transcribe(ctx context.Context, params ports.SubmitReportParams) string {
	if !strings.HasPrefix(params.MediaType, "audio/") {
		return ""
	}

	transcript, err := s.transcriber.Transcribe(ctx, params.Media)
	if err != nil {
		s.logger.Warn("audio transcription unavailable, storing report without transcript", "error", err)
		return ""
	}
	return transcript
}

// locationLabel renders the report coordinates as a zone label, falling back
// to "field" when the report carried no position.
func locationLabel(report *domain.Report) string {
	if report.Lat == nil || report.Lng == nil {
		return "field"
	}
	return fmt.Sprintf("%.5f,%.5f", *report.Lat, *report.Lng)
}
