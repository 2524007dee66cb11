package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDescriptionRequired = errors.New("person description is required")

// LostPersonStatus tracks a lost-person case.
type LostPersonStatus string

const (
	LostPersonMissing LostPersonStatus = "missing"
	LostPersonFound   LostPersonStatus = "found"
	LostPersonClosed  LostPersonStatus = "closed"
)

// LostPerson is a registered missing-person case searched against uploaded
// images.
type LostPerson struct {
	ID                uuid.UUID        `json:"id"`
	ReportID          uuid.UUID        `json:"reportId"`
	PersonDescription string           `json:"personDescription"`
	ImageURL          string           `json:"imageUrl,omitempty"`
	Embedding         string           `json:"-"`
	Age               *int             `json:"age,omitempty"`
	LastSeenLocation  string           `json:"lastSeenLocation,omitempty"`
	ContactInfo       string           `json:"contactInfo,omitempty"`
	Status            LostPersonStatus `json:"status"`
	CreatedAt         time.Time        `json:"createdAt"`
}

// NewLostPerson validates and builds a missing-person case.
func NewLostPerson(reportID uuid.UUID, description, imageURL, embedding, lastSeen, contact string, age *int) (*LostPerson, error) {
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	return &LostPerson{
		ID:                uuid.New(),
		ReportID:          reportID,
		PersonDescription: description,
		ImageURL:          imageURL,
		Embedding:         embedding,
		Age:               age,
		LastSeenLocation:  lastSeen,
		ContactInfo:       contact,
		Status:            LostPersonMissing,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// LostPersonMatch pairs a case with a similarity score from the search.
type LostPersonMatch struct {
	Person     *LostPerson `json:"person"`
	Similarity float64     `json:"similarity"`
}
