package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/drishti/command-center-backend/internal/core/domain"
)

// Broadcaster is the port producers use to push a real-time envelope to
// every connected dashboard. Broadcast is fire-and-forget: it must never
// block on or surface individual client delivery, so producers call it
// synchronously after a successful commit and return immediately.
type Broadcaster interface {
	Broadcast(event domain.EventName, data any)
}

// FrameJudgment is the structured classification the vision collaborator
// returns for one frame.
type FrameJudgment struct {
	CrowdDensity      domain.RiskLevel
	EstimatedPeople   int
	RiskLevel         domain.RiskLevel
	DetectedBehaviors []string
	Confidence        float64
}

// FrameAnalyzer is the port for the external vision/classification service,
// invoked synchronously per uploaded frame.
type FrameAnalyzer interface {
	AnalyzeFrame(ctx context.Context, image []byte, location string) (*FrameJudgment, error)
}

// AlertComposer generates calm multilingual announcement text for a zone.
type AlertComposer interface {
	ComposeAlertText(ctx context.Context, zone, alertType string) (domain.AlertText, error)
}

// ImageEmbedder produces an embedding vector for an uploaded image, used by
// the lost-person similarity search.
type ImageEmbedder interface {
	EmbedImage(ctx context.Context, image []byte) ([]float64, error)
}

// Transcriber converts an uploaded audio clip to text, used for voice
// reports from the field.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// AuthService handles account registration and login.
type AuthService interface {
	Register(ctx context.Context, fullName, email, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

// IngestFrameParams is the input for a frame upload.
type IngestFrameParams struct {
	SourceID string
	Image    []byte
	Filename string
	Width    int
	Height   int
}

// IngestResult bundles everything a frame upload produced.
type IngestResult struct {
	Frame    *domain.Frame
	Analysis *domain.Analysis
	Incident *domain.Incident // nil when risk stayed below medium
}

// IngestService runs the frame pipeline: store, analyze, escalate.
type IngestService interface {
	IngestFrame(ctx context.Context, params IngestFrameParams) (*IngestResult, error)
}

// SubmitReportParams is the input for a field report. Media carries an
// optional uploaded attachment; audio media is transcribed. MediaURL is
// only honored when no attachment was uploaded.
type SubmitReportParams struct {
	UserID        *uuid.UUID
	Type          domain.ReportType
	Lat           *float64
	Lng           *float64
	Text          string
	MediaURL      string
	Media         []byte
	MediaType     string
	MediaFilename string
}

// ReportService accepts field reports and escalates the urgent ones.
type ReportService interface {
	SubmitReport(ctx context.Context, params SubmitReportParams) (*domain.Report, *domain.Incident, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*domain.Report, error)
}

// IncidentService manages the incident lifecycle.
type IncidentService interface {
	ListRecent(ctx context.Context, limit, offset int) ([]*domain.Incident, error)
	Acknowledge(ctx context.Context, incidentID, actorID uuid.UUID) (*domain.Incident, error)
	Assign(ctx context.Context, incidentID, volunteerID uuid.UUID) (*domain.Incident, error)
	CreateManual(ctx context.Context, severity domain.RiskLevel, zoneID, summary string) (*domain.Incident, error)
}

// GenerateAlertParams is the input for an alert broadcast.
type GenerateAlertParams struct {
	Zone      string
	AlertType string
	Languages []string
}

// AlertService composes and broadcasts multilingual alerts.
type AlertService interface {
	GenerateAlert(ctx context.Context, params GenerateAlertParams) (*domain.Alert, error)
}

// CreateNotificationParams is the input for an admin announcement.
type CreateNotificationParams struct {
	CreatedBy uuid.UUID
	Title     string
	Body      string
	Severity  domain.RiskLevel
}

// NotificationService manages admin announcements.
type NotificationService interface {
	Create(ctx context.Context, params CreateNotificationParams) (*domain.Notification, error)
	Acknowledge(ctx context.Context, notificationID, actorID uuid.UUID) (*domain.Notification, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*domain.Notification, error)
}

// CreateHelpRequestParams is the input for a help request.
type CreateHelpRequestParams struct {
	UserID      uuid.UUID
	RequestType domain.HelpRequestType
	Description string
	Location    string
	Lat         *float64
	Lng         *float64
}

// UpdateHelpRequestParams changes status and/or assignment.
type UpdateHelpRequestParams struct {
	RequestID  uuid.UUID
	Status     *domain.HelpRequestStatus
	AssignedTo *uuid.UUID
}

// HelpRequestService manages the help-request lifecycle.
type HelpRequestService interface {
	Create(ctx context.Context, params CreateHelpRequestParams) (*domain.HelpRequest, error)
	Update(ctx context.Context, params UpdateHelpRequestParams) (*domain.HelpRequest, error)
	ListOpen(ctx context.Context) ([]*domain.HelpRequest, error)
}

// MessageService delivers direct messages.
type MessageService interface {
	Send(ctx context.Context, senderID, recipientID uuid.UUID, body string) (*domain.Message, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Message, error)
}

// RegisterLostPersonParams is the input for a missing-person case.
type RegisterLostPersonParams struct {
	ReportID         uuid.UUID
	Description      string
	ImageURL         string
	Embedding        string
	Age              *int
	LastSeenLocation string
	ContactInfo      string
}

// LostPersonService manages missing-person cases and image search.
type LostPersonService interface {
	Register(ctx context.Context, params RegisterLostPersonParams) (*domain.LostPerson, error)
	Search(ctx context.Context, image []byte) ([]*domain.LostPersonMatch, error)
}

// VolunteerService manages responders.
type VolunteerService interface {
	List(ctx context.Context) ([]*domain.Volunteer, error)
	SetStatus(ctx context.Context, volunteerID uuid.UUID, status domain.VolunteerStatus) (*domain.Volunteer, error)
}

// RegisterSourceParams is the input for registering a feed.
type RegisterSourceParams struct {
	SourceID string
	Name     string
	Type     domain.SourceType
	Location string
	Lat      *float64
	Lng      *float64
	Protocol string
}

// SourceService manages registered camera/drone/sensor feeds.
type SourceService interface {
	Register(ctx context.Context, params RegisterSourceParams) (*domain.Source, error)
	List(ctx context.Context) ([]*domain.Source, error)
}

// StatsService serves the dashboard overview aggregate.
type StatsService interface {
	Overview(ctx context.Context) (*domain.CrowdStats, error)
}
