package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidHelpRequestType   = errors.New("invalid help request type")
	ErrInvalidHelpRequestStatus = errors.New("invalid help request status transition")
)

// HelpRequestType classifies what kind of help is needed.
type HelpRequestType string

const (
	HelpMedical    HelpRequestType = "medical"
	HelpLostPerson HelpRequestType = "lost_person"
	HelpSecurity   HelpRequestType = "security"
	HelpGeneral    HelpRequestType = "general"
)

var validHelpRequestTypes = map[HelpRequestType]bool{
	HelpMedical:    true,
	HelpLostPerson: true,
	HelpSecurity:   true,
	HelpGeneral:    true,
}

// HelpRequestStatus is the dispatch lifecycle of a help request.
type HelpRequestStatus string

const (
	HelpPending    HelpRequestStatus = "pending"
	HelpInProgress HelpRequestStatus = "in_progress"
	HelpResolved   HelpRequestStatus = "resolved"
	HelpCancelled  HelpRequestStatus = "cancelled"
)

// helpTransitions defines the allowed status moves.
var helpTransitions = map[HelpRequestStatus][]HelpRequestStatus{
	HelpPending:    {HelpInProgress, HelpResolved, HelpCancelled},
	HelpInProgress: {HelpResolved, HelpCancelled},
	HelpResolved:   {},
	HelpCancelled:  {},
}

// HelpRequest is a user's call for assistance, dispatched to volunteers.
type HelpRequest struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"userId"`
	RequestType HelpRequestType   `json:"requestType"`
	Description string            `json:"description,omitempty"`
	Location    string            `json:"location,omitempty"`
	Lat         *float64          `json:"lat,omitempty"`
	Lng         *float64          `json:"lng,omitempty"`
	Status      HelpRequestStatus `json:"status"`
	AssignedTo  *uuid.UUID        `json:"assignedTo,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
}

// NewHelpRequest validates and builds a pending help request.
func NewHelpRequest(userID uuid.UUID, requestType HelpRequestType, description, location string, lat, lng *float64) (*HelpRequest, error) {
	if !validHelpRequestTypes[requestType] {
		return nil, ErrInvalidHelpRequestType
	}
	return &HelpRequest{
		ID:          uuid.New(),
		UserID:      userID,
		RequestType: requestType,
		Description: description,
		Location:    location,
		Lat:         lat,
		Lng:         lng,
		Status:      HelpPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// UpdateStatus applies a status change, enforcing the lifecycle.
func (h *HelpRequest) UpdateStatus(status HelpRequestStatus) error {
	for _, allowed := range helpTransitions[h.Status] {
		if allowed == status {
			h.Status = status
			h.touch()
			return nil
		}
	}
	return ErrInvalidHelpRequestStatus
}

// Assign routes the request to a volunteer and moves it in progress if it
// was still pending.
func (h *HelpRequest) Assign(volunteerID uuid.UUID) error {
	if h.Status == HelpResolved || h.Status == HelpCancelled {
		return ErrInvalidHelpRequestStatus
	}
	h.AssignedTo = &volunteerID
	if h.Status == HelpPending {
		h.Status = HelpInProgress
	}
	h.touch()
	return nil
}

func (h *HelpRequest) touch() {
	now := time.Now().UTC()
	h.UpdatedAt = &now
}
