package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/mocks"
	"github.com/drishti/command-center-backend/internal/core/ports"
	"github.com/drishti/command-center-backend/internal/core/services"
)

type reportFixture struct {
	reportRepo   *mocks.MockReportRepository
	incidentRepo *mocks.MockIncidentRepository
	transcriber  *mocks.MockTranscriber
	broadcaster  *mocks.MockBroadcaster
	svc          ports.ReportService
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		reportRepo:   mocks.NewMockReportRepository(),
		incidentRepo: mocks.NewMockIncidentRepository(),
		transcriber:  mocks.NewMockTranscriber(),
		broadcaster:  mocks.NewMockBroadcaster(),
	}
	f.svc = services.NewReportService(
		f.reportRepo, f.incidentRepo, f.transcriber, f.broadcaster, discardLogger(),
	)
	return f
}

func TestReportService_SubmitReport(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("panic report escalates to a critical incident", func(t *testing.T) {
		f := newReportFixture()

		storedReport := &domain.Report{
			ID:       uuid.New(),
			UserID:   &userID,
			Type:     domain.ReportPanic,
			Text:     "stampede near the ghat steps",
			Severity: domain.RiskCritical,
			Status:   domain.ReportNew,
		}
		storedIncident := &domain.Incident{
			ID:       uuid.New(),
			Kind:     domain.KindReport,
			Severity: domain.RiskCritical,
			Status:   domain.IncidentOpen,
		}

		f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(storedReport, nil)

		var persisted *domain.Incident
		f.incidentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Incident")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*domain.Incident)
			}).
			Return(storedIncident, nil)
		f.broadcaster.On("Broadcast", domain.EventIncident, mock.AnythingOfType("services.IncidentEventPayload")).Return()

		report, incident, err := f.svc.SubmitReport(ctx, ports.SubmitReportParams{
			UserID: &userID,
			Type:   domain.ReportPanic,
			Text:   "stampede near the ghat steps",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.RiskCritical, report.Severity)
		require.NotNil(t, incident)

		require.NotNil(t, persisted)
		assert.Equal(t, domain.RiskCritical, persisted.Severity)
		require.NotNil(t, persisted.RelatedReportID)
		assert.Equal(t, storedReport.ID, *persisted.RelatedReportID)

		f.broadcaster.AssertExpectations(t)
	})

	t.Run("congestion report does not escalate", func(t *testing.T) {
		f := newReportFixture()

		f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).
			Return(&domain.Report{ID: uuid.New(), Type: domain.ReportCongestion, Severity: domain.RiskMedium}, nil)

		report, incident, err := f.svc.SubmitReport(ctx, ports.SubmitReportParams{
			Type: domain.ReportCongestion,
			Text: "queue backing up at gate 4",
		})

		require.NoError(t, err)
		assert.NotNil(t, report)
		assert.Nil(t, incident)
		f.incidentRepo.AssertNotCalled(t, "Create")
		f.broadcaster.AssertNotCalled(t, "Broadcast")
	})

	t.Run("medical report escalates at high severity", func(t *testing.T) {
		f := newReportFixture()

		f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).
			Return(&domain.Report{ID: uuid.New(), Type: domain.ReportMedical, Severity: domain.RiskHigh, Text: "collapsed pilgrim"}, nil)
		f.incidentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Incident")).
			Return(&domain.Incident{ID: uuid.New(), Kind: domain.KindReport, Severity: domain.RiskHigh}, nil)
		f.broadcaster.On("Broadcast", domain.EventIncident, mock.Anything).Return()

		_, incident, err := f.svc.SubmitReport(ctx, ports.SubmitReportParams{
			Type: domain.ReportMedical,
			Text: "collapsed pilgrim",
		})

		require.NoError(t, err)
		require.NotNil(t, incident)
		assert.Equal(t, domain.RiskHigh, incident.Severity)
	})

	t.Run("report without text or media is rejected", func(t *testing.T) {
		f := newReportFixture()

		_, _, err := f.svc.SubmitReport(ctx, ports.SubmitReportParams{Type: domain.ReportHazard})

		assert.ErrorIs(t, err, domain.ErrReportBodyEmpty)
		f.reportRepo.AssertNotCalled(t, "Create")
	})
}

func TestReportService_SubmitReport_Media(t *testing.T) {
	ctx := context.Background()
	audio := []byte{0x1a, 0x45, 0xdf, 0xa3}

	t.Run("audio attachment is transcribed and stored", func(t *testing.T) {
		f := newReportFixture()

		f.transcriber.On("Transcribe", mock.Anything, audio).Return("मदद चाहिए", nil)

		var persisted *domain.Report
		f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*domain.Report)
			}).
			Return(&domain.Report{ID: uuid.New(), Type: domain.ReportHazard, Severity: domain.RiskMedium}, nil)

		_, _, err := f.svc.SubmitReport(ctx, ports.SubmitReportParams{
			Type:          domain.ReportHazard,
			Media:         audio,
			MediaType:     "audio/webm",
			MediaFilename: "report.webm",
		})

		require.NoError(t, err)
		require.NotNil(t, persisted)
		assert.Equal(t, "मदद चाहिए", persisted.Transcript)
		// The transcript stands in for the missing text.
		assert.Equal(t, "मदद चाहिए", persisted.Text)
		assert.True(t, strings.HasPrefix(persisted.MediaURL, "reports/"))
		assert.True(t, strings.HasSuffix(persisted.MediaURL, "-report.webm"))
	})

	t.Run("transcriber failure keeps the report without a transcript", func(t *testing.T) {
		f := newReportFixture()

		f.transcriber.On("Transcribe", mock.Anything, audio).Return("", errors.New("transcriber down"))

		var persisted *domain.Report
		f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*domain.Report)
			}).
			Return(&domain.Report{ID: uuid.New(), Type: domain.ReportHazard, Severity: domain.RiskMedium}, nil)

		_, _, err := f.svc.SubmitReport(ctx, ports.SubmitReportParams{
			Type:          domain.ReportHazard,
			Media:         audio,
			MediaType:     "audio/webm",
			MediaFilename: "report.webm",
		})

		require.NoError(t, err)
		require.NotNil(t, persisted)
		assert.Empty(t, persisted.Transcript)
		assert.NotEmpty(t, persisted.MediaURL)
	})

	t.Run("non-audio attachment skips transcription", func(t *testing.T) {
		f := newReportFixture()

		f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).
			Return(&domain.Report{ID: uuid.New(), Type: domain.ReportHazard, Severity: domain.RiskMedium}, nil)

		_, _, err := f.svc.SubmitReport(ctx, ports.SubmitReportParams{
			Type:          domain.ReportHazard,
			Text:          "broken railing",
			Media:         []byte{0xff, 0xd8, 0xff},
			MediaType:     "image/jpeg",
			MediaFilename: "railing.jpg",
		})

		require.NoError(t, err)
		f.transcriber.AssertNotCalled(t, "Transcribe")
	})
}

func TestReportService_ListRecent(t *testing.T) {
	ctx := context.Background()

	t.Run("limit and offset are passed through", func(t *testing.T) {
		f := newReportFixture()

		f.reportRepo.On("ListRecent", mock.Anything, 25, 50).Return([]*domain.Report{}, nil)

		_, err := f.svc.ListRecent(ctx, 25, 50)

		require.NoError(t, err)
		f.reportRepo.AssertExpectations(t)
	})

	t.Run("out-of-range values fall back to defaults", func(t *testing.T) {
		f := newReportFixture()

		f.reportRepo.On("ListRecent", mock.Anything, 50, 0).Return([]*domain.Report{}, nil)

		_, err := f.svc.ListRecent(ctx, 0, -10)

		require.NoError(t, err)
		f.reportRepo.AssertExpectations(t)
	})
}
