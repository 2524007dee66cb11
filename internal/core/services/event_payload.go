package services

import "github.com/drishti/command-center-backend/internal/core/domain"

// IncidentEventPayload is the data carried by an "incident" envelope. The
// analysis, frame and report fields are populated depending on what produced
// the incident.
type IncidentEventPayload struct {
	Event    *domain.Incident `json:"event"`
	Analysis *domain.Analysis `json:"analysis,omitempty"`
	Frame    *domain.Frame    `json:"frame,omitempty"`
	Report   *domain.Report   `json:"report,omitempty"`
}

// AssignmentEventPayload is the data carried by an "event_assignment"
// envelope.
type AssignmentEventPayload struct {
	Event     *domain.Incident  `json:"event"`
	Volunteer *domain.Volunteer `json:"volunteer"`
}
