package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/drishti/command-center-backend/internal/core/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// SourceRepository persists camera/drone/sensor feeds.
type SourceRepository interface {
	Create(ctx context.Context, source *domain.Source) (*domain.Source, error)
	GetBySourceID(ctx context.Context, sourceID string) (*domain.Source, error)
	List(ctx context.Context) ([]*domain.Source, error)
}

// FrameRepository persists captured frame snapshots.
type FrameRepository interface {
	Create(ctx context.Context, frame *domain.Frame) (*domain.Frame, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Frame, error)
}

// AnalysisRepository persists vision judgments.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *domain.Analysis) (*domain.Analysis, error)
}

// ReportRepository persists pilgrim field reports.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*domain.Report, error)
}

// IncidentRepository persists incidents.
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) (*domain.Incident, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	Update(ctx context.Context, incident *domain.Incident) (*domain.Incident, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*domain.Incident, error)
}

// VolunteerRepository persists responders.
type VolunteerRepository interface {
	Create(ctx context.Context, volunteer *domain.Volunteer) (*domain.Volunteer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Volunteer, error)
	Update(ctx context.Context, volunteer *domain.Volunteer) (*domain.Volunteer, error)
	List(ctx context.Context) ([]*domain.Volunteer, error)
}

// NotificationRepository persists admin announcements.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	Update(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*domain.Notification, error)
}

// HelpRequestRepository persists help requests.
type HelpRequestRepository interface {
	Create(ctx context.Context, request *domain.HelpRequest) (*domain.HelpRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.HelpRequest, error)
	Update(ctx context.Context, request *domain.HelpRequest) (*domain.HelpRequest, error)
	ListOpen(ctx context.Context) ([]*domain.HelpRequest, error)
}

// MessageRepository persists direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Message, error)
}

// LostPersonRepository persists missing-person cases.
type LostPersonRepository interface {
	Create(ctx context.Context, person *domain.LostPerson) (*domain.LostPerson, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LostPerson, error)
	ListMissing(ctx context.Context) ([]*domain.LostPerson, error)
}

// StatsRepository aggregates the dashboard overview numbers.
type StatsRepository interface {
	CrowdStats(ctx context.Context) (*domain.CrowdStats, error)
}

// Transactor runs fn inside a storage transaction. Repository calls made
// with the context passed to fn join that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
