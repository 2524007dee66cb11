package domain

import "time"

// AlertText holds the generated loudspeaker announcement in each supported
// language.
type AlertText struct {
	Hindi   string `json:"hindi"`
	English string `json:"english"`
	Marathi string `json:"marathi"`
}

// Alert is a multilingual emergency broadcast generated for a zone.
type Alert struct {
	Zone      string    `json:"zone"`
	AlertType string    `json:"alertType"`
	Languages []string  `json:"languages,omitempty"`
	Text      AlertText `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// CrowdStats is the aggregate snapshot served to the dashboard overview.
type CrowdStats struct {
	ActiveIncidents  int            `json:"activeIncidents"`
	OpenHelpRequests int            `json:"openHelpRequests"`
	TotalVolunteers  int            `json:"totalVolunteers"`
	AvailableVolunteers int         `json:"availableVolunteers"`
	EstimatedPeople  int            `json:"estimatedPeople"`
	SeverityCounts   map[string]int `json:"severityCounts"`
}
