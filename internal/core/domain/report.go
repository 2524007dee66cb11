package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidReportType = errors.New("invalid report type")
	ErrReportBodyEmpty   = errors.New("report needs text or media")
)

// ReportType classifies a pilgrim-submitted report.
type ReportType string

const (
	ReportPanic      ReportType = "panic"
	ReportCongestion ReportType = "congestion"
	ReportMedical    ReportType = "medical"
	ReportLostPerson ReportType = "lost_person"
	ReportHazard     ReportType = "hazard"
)

var validReportTypes = map[ReportType]bool{
	ReportPanic:      true,
	ReportCongestion: true,
	ReportMedical:    true,
	ReportLostPerson: true,
	ReportHazard:     true,
}

// ReportStatus tracks triage progress.
type ReportStatus string

const (
	ReportNew      ReportStatus = "new"
	ReportTriaged  ReportStatus = "triaged"
	ReportAssigned ReportStatus = "assigned"
	ReportResolved ReportStatus = "resolved"
)

// Report is a field report submitted from the public app. UserID is nil for
// anonymous submissions.
type Report struct {
	ID         uuid.UUID    `json:"id"`
	UserID     *uuid.UUID   `json:"userId,omitempty"`
	Type       ReportType   `json:"type"`
	Lat        *float64     `json:"lat,omitempty"`
	Lng        *float64     `json:"lng,omitempty"`
	Text       string       `json:"text,omitempty"`
	MediaURL   string       `json:"mediaUrl,omitempty"`
	Transcript string       `json:"transcript,omitempty"`
	Status     ReportStatus `json:"status"`
	Severity   RiskLevel    `json:"severity"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// NewReport validates and builds a report, applying the severity defaults
// the triage pipeline relies on: panic is always critical, medical high,
// everything else medium.
func NewReport(userID *uuid.UUID, reportType ReportType, lat, lng *float64, text, mediaURL string) (*Report, error) {
	if !validReportTypes[reportType] {
		return nil, ErrInvalidReportType
	}
	if text == "" && mediaURL == "" {
		return nil, ErrReportBodyEmpty
	}

	severity := RiskMedium
	switch reportType {
	case ReportPanic:
		severity = RiskCritical
	case ReportMedical:
		severity = RiskHigh
	}

	return &Report{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      reportType,
		Lat:       lat,
		Lng:       lng,
		Text:      text,
		MediaURL:  mediaURL,
		Status:    ReportNew,
		Severity:  severity,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Escalates reports whether the report type warrants an automatic incident.
func (r *Report) Escalates() bool {
	return r.Type == ReportPanic || r.Type == ReportMedical
}
