package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// VolunteerService manages responder availability.
type VolunteerService struct {
	volunteerRepo ports.VolunteerRepository
}

var _ ports.VolunteerService = (*VolunteerService)(nil)

// NewVolunteerService creates a new volunteer service.
func NewVolunteerService(volunteerRepo ports.VolunteerRepository) ports.VolunteerService {
	return &VolunteerService{volunteerRepo: volunteerRepo}
}

// List returns all registered responders.
func (s *VolunteerService) List(ctx context.Context) ([]*domain.Volunteer, error) {
	return s.volunteerRepo.List(ctx)
}

// SetStatus updates a responder's availability.
func (s *VolunteerService) SetStatus(ctx context.Context, volunteerID uuid.UUID, status domain.VolunteerStatus) (*domain.Volunteer, error) {
	volunteer, err := s.volunteerRepo.GetByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	if err := volunteer.SetStatus(status); err != nil {
		return nil, err
	}

	return s.volunteerRepo.Update(ctx, volunteer)
}
