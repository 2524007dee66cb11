package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockSourceRepository is a mock implementation of ports.SourceRepository
type MockSourceRepository struct {
	mock.Mock
}

func NewMockSourceRepository() *MockSourceRepository {
	return &MockSourceRepository{}
}

func (m *MockSourceRepository) Create(ctx context.Context, source *domain.Source) (*domain.Source, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Source), args.Error(1)
}

func (m *MockSourceRepository) GetBySourceID(ctx context.Context, sourceID string) (*domain.Source, error) {
	args := m.Called(ctx, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Source), args.Error(1)
}

func (m *MockSourceRepository) List(ctx context.Context) ([]*domain.Source, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Source), args.Error(1)
}

// MockFrameRepository is a mock implementation of ports.FrameRepository
type MockFrameRepository struct {
	mock.Mock
}

func NewMockFrameRepository() *MockFrameRepository {
	return &MockFrameRepository{}
}

func (m *MockFrameRepository) Create(ctx context.Context, frame *domain.Frame) (*domain.Frame, error) {
	args := m.Called(ctx, frame)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Frame), args.Error(1)
}

func (m *MockFrameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Frame, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Frame), args.Error(1)
}

// MockAnalysisRepository is a mock implementation of ports.AnalysisRepository
type MockAnalysisRepository struct {
	mock.Mock
}

func NewMockAnalysisRepository() *MockAnalysisRepository {
	return &MockAnalysisRepository{}
}

func (m *MockAnalysisRepository) Create(ctx context.Context, analysis *domain.Analysis) (*domain.Analysis, error) {
	args := m.Called(ctx, analysis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

// MockReportRepository is a mock implementation of ports.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{}
}

func (m *MockReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) ListRecent(ctx context.Context, limit, offset int) ([]*domain.Report, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Report), args.Error(1)
}

// MockIncidentRepository is a mock implementation of ports.IncidentRepository
type MockIncidentRepository struct {
	mock.Mock
}

func NewMockIncidentRepository() *MockIncidentRepository {
	return &MockIncidentRepository{}
}

func (m *MockIncidentRepository) Create(ctx context.Context, incident *domain.Incident) (*domain.Incident, error) {
	args := m.Called(ctx, incident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Incident), args.Error(1)
}

func (m *MockIncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Incident), args.Error(1)
}

func (m *MockIncidentRepository) Update(ctx context.Context, incident *domain.Incident) (*domain.Incident, error) {
	args := m.Called(ctx, incident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Incident), args.Error(1)
}

func (m *MockIncidentRepository) ListRecent(ctx context.Context, limit, offset int) ([]*domain.Incident, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Incident), args.Error(1)
}

// MockVolunteerRepository is a mock implementation of ports.VolunteerRepository
type MockVolunteerRepository struct {
	mock.Mock
}

func NewMockVolunteerRepository() *MockVolunteerRepository {
	return &MockVolunteerRepository{}
}

func (m *MockVolunteerRepository) Create(ctx context.Context, volunteer *domain.Volunteer) (*domain.Volunteer, error) {
	args := m.Called(ctx, volunteer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Volunteer), args.Error(1)
}

func (m *MockVolunteerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Volunteer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Volunteer), args.Error(1)
}

func (m *MockVolunteerRepository) Update(ctx context.Context, volunteer *domain.Volunteer) (*domain.Volunteer, error) {
	args := m.Called(ctx, volunteer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Volunteer), args.Error(1)
}

func (m *MockVolunteerRepository) List(ctx context.Context) ([]*domain.Volunteer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Volunteer), args.Error(1)
}

// MockNotificationRepository is a mock implementation of ports.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, notification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, notification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListRecent(ctx context.Context, limit, offset int) ([]*domain.Notification, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

// MockHelpRequestRepository is a mock implementation of ports.HelpRequestRepository
type MockHelpRequestRepository struct {
	mock.Mock
}

func NewMockHelpRequestRepository() *MockHelpRequestRepository {
	return &MockHelpRequestRepository{}
}

func (m *MockHelpRequestRepository) Create(ctx context.Context, request *domain.HelpRequest) (*domain.HelpRequest, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HelpRequest), args.Error(1)
}

func (m *MockHelpRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.HelpRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HelpRequest), args.Error(1)
}

func (m *MockHelpRequestRepository) Update(ctx context.Context, request *domain.HelpRequest) (*domain.HelpRequest, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HelpRequest), args.Error(1)
}

func (m *MockHelpRequestRepository) ListOpen(ctx context.Context) ([]*domain.HelpRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HelpRequest), args.Error(1)
}

// MockMessageRepository is a mock implementation of ports.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{}
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockMessageRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Message, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

// MockLostPersonRepository is a mock implementation of ports.LostPersonRepository
type MockLostPersonRepository struct {
	mock.Mock
}

func NewMockLostPersonRepository() *MockLostPersonRepository {
	return &MockLostPersonRepository{}
}

func (m *MockLostPersonRepository) Create(ctx context.Context, person *domain.LostPerson) (*domain.LostPerson, error) {
	args := m.Called(ctx, person)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LostPerson), args.Error(1)
}

func (m *MockLostPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LostPerson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LostPerson), args.Error(1)
}

func (m *MockLostPersonRepository) ListMissing(ctx context.Context) ([]*domain.LostPerson, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LostPerson), args.Error(1)
}

// MockStatsRepository is a mock implementation of ports.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func NewMockStatsRepository() *MockStatsRepository {
	return &MockStatsRepository{}
}

func (m *MockStatsRepository) CrowdStats(ctx context.Context) (*domain.CrowdStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CrowdStats), args.Error(1)
}

// MockTransactor implements ports.Transactor by running the callback
// directly, outside any real transaction. Err, when set, fails the
// transaction before the callback runs.
type MockTransactor struct {
	Err error
}

func NewMockTransactor() *MockTransactor {
	return &MockTransactor{}
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx)
}

// MockBroadcaster is a mock implementation of ports.Broadcaster
type MockBroadcaster struct {
	mock.Mock
}

func NewMockBroadcaster() *MockBroadcaster {
	return &MockBroadcaster{}
}

func (m *MockBroadcaster) Broadcast(event domain.EventName, data any) {
	m.Called(event, data)
}

// MockFrameAnalyzer is a mock implementation of ports.FrameAnalyzer
type MockFrameAnalyzer struct {
	mock.Mock
}

func NewMockFrameAnalyzer() *MockFrameAnalyzer {
	return &MockFrameAnalyzer{}
}

func (m *MockFrameAnalyzer) AnalyzeFrame(ctx context.Context, image []byte, location string) (*ports.FrameJudgment, error) {
	args := m.Called(ctx, image, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.FrameJudgment), args.Error(1)
}

// MockAlertComposer is a mock implementation of ports.AlertComposer
type MockAlertComposer struct {
	mock.Mock
}

func NewMockAlertComposer() *MockAlertComposer {
	return &MockAlertComposer{}
}

func (m *MockAlertComposer) ComposeAlertText(ctx context.Context, zone, alertType string) (domain.AlertText, error) {
	args := m.Called(ctx, zone, alertType)
	return args.Get(0).(domain.AlertText), args.Error(1)
}

// MockTranscriber is a mock implementation of ports.Transcriber
type MockTranscriber struct {
	mock.Mock
}

func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	args := m.Called(ctx, audio)
	return args.String(0), args.Error(1)
}

// MockImageEmbedder is a mock implementation of ports.ImageEmbedder
type MockImageEmbedder struct {
	mock.Mock
}

func NewMockImageEmbedder() *MockImageEmbedder {
	return &MockImageEmbedder{}
}

func (m *MockImageEmbedder) EmbedImage(ctx context.Context, image []byte) ([]float64, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}
