package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotificationTitleRequired = errors.New("notification title is required")
	ErrAlreadyAcknowledged       = errors.New("notification already acknowledged")
)

// Notification is an admin-authored announcement pushed to all dashboards.
type Notification struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Body           string     `json:"body,omitempty"`
	Severity       RiskLevel  `json:"severity"`
	CreatedBy      uuid.UUID  `json:"createdBy"`
	AcknowledgedBy *uuid.UUID `json:"acknowledgedBy,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// NewNotification validates and builds a notification. Severity defaults to
// low when unset.
func NewNotification(createdBy uuid.UUID, title, body string, severity RiskLevel) (*Notification, error) {
	if title == "" {
		return nil, ErrNotificationTitleRequired
	}
	if severity == "" {
		severity = RiskLow
	}
	if !severity.Valid() {
		return nil, ErrInvalidRiskLevel
	}
	return &Notification{
		ID:        uuid.New(),
		Title:     title,
		Body:      body,
		Severity:  severity,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Acknowledge records the first operator who confirmed the notification.
func (n *Notification) Acknowledge(actorID uuid.UUID) error {
	if n.AcknowledgedBy != nil {
		return ErrAlreadyAcknowledged
	}
	now := time.Now().UTC()
	n.AcknowledgedBy = &actorID
	n.AcknowledgedAt = &now
	return nil
}
