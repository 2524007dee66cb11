package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidVolunteerStatus = errors.New("invalid volunteer status")

// VolunteerStatus tracks availability for dispatch.
type VolunteerStatus string

const (
	VolunteerAvailable VolunteerStatus = "available"
	VolunteerAssigned  VolunteerStatus = "assigned"
	VolunteerOnBreak   VolunteerStatus = "on_break"
	VolunteerOffline   VolunteerStatus = "offline"
)

var validVolunteerStatuses = map[VolunteerStatus]bool{
	VolunteerAvailable: true,
	VolunteerAssigned:  true,
	VolunteerOnBreak:   true,
	VolunteerOffline:   true,
}

// Volunteer is a responder who can be dispatched to incidents.
type Volunteer struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone,omitempty"`
	CurrentZone     string          `json:"currentZone,omitempty"`
	Status          VolunteerStatus `json:"status"`
	LastSeen        time.Time       `json:"lastSeen"`
	ResponseTimeAvg float64         `json:"responseTimeAvg,omitempty"`
}

// SetStatus validates and applies a status change.
func (v *Volunteer) SetStatus(status VolunteerStatus) error {
	if !validVolunteerStatuses[status] {
		return ErrInvalidVolunteerStatus
	}
	v.Status = status
	v.LastSeen = time.Now().UTC()
	return nil
}
