package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSummaryRequired         = errors.New("summary is required")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrIncidentClosed          = errors.New("cannot modify a closed incident")
)

// IncidentKind says what produced the incident.
type IncidentKind string

const (
	KindAnalysis IncidentKind = "analysis"
	KindReport   IncidentKind = "report"
	KindManual   IncidentKind = "manual"
)

// IncidentStatus represents the lifecycle of an incident.
type IncidentStatus string

const (
	IncidentOpen         IncidentStatus = "open"
	IncidentAcknowledged IncidentStatus = "acknowledged"
	IncidentClosed       IncidentStatus = "closed"
)

// Incident is a dashboard-relevant safety event: a risky frame analysis,
// an escalated pilgrim report, or a manually raised alarm.
type Incident struct {
	ID              uuid.UUID  `json:"id"`
	Kind            IncidentKind `json:"kind"`
	SourceFrameID   *uuid.UUID `json:"sourceFrameId,omitempty"`
	RelatedReportID *uuid.UUID `json:"relatedReportId,omitempty"`
	Severity        RiskLevel  `json:"severity"`
	ZoneID          string     `json:"zoneId"`
	Summary         string     `json:"summary"`
	Status          IncidentStatus `json:"status"`
	AssignedTo      *uuid.UUID `json:"assignedTo,omitempty"`
	AcknowledgedBy  *uuid.UUID `json:"acknowledgedBy,omitempty"`
	ClosedBy        *uuid.UUID `json:"closedBy,omitempty"`
	ClosedAt        *time.Time `json:"closedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// NewIncident creates a valid open incident.
func NewIncident(kind IncidentKind, severity RiskLevel, zoneID, summary string) (*Incident, error) {
	if summary == "" {
		return nil, ErrSummaryRequired
	}
	if !severity.Valid() {
		return nil, ErrInvalidRiskLevel
	}
	return &Incident{
		ID:        uuid.New(),
		Kind:      kind,
		Severity:  severity,
		ZoneID:    zoneID,
		Summary:   summary,
		Status:    IncidentOpen,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Acknowledge marks the incident as seen by an operator.
func (i *Incident) Acknowledge(actorID uuid.UUID) error {
	if i.Status != IncidentOpen {
		return ErrInvalidStatusTransition
	}
	i.Status = IncidentAcknowledged
	i.AcknowledgedBy = &actorID
	i.touch()
	return nil
}

// Assign dispatches the incident to a volunteer. Closed incidents are
// immutable.
func (i *Incident) Assign(volunteerID uuid.UUID) error {
	if i.Status == IncidentClosed {
		return ErrIncidentClosed
	}
	i.AssignedTo = &volunteerID
	i.touch()
	return nil
}

// Close ends the incident lifecycle.
func (i *Incident) Close(actorID uuid.UUID) error {
	if i.Status == IncidentClosed {
		return ErrInvalidStatusTransition
	}
	now := time.Now().UTC()
	i.Status = IncidentClosed
	i.ClosedBy = &actorID
	i.ClosedAt = &now
	i.touch()
	return nil
}

func (i *Incident) touch() {
	now := time.Now().UTC()
	i.UpdatedAt = &now
}
