package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// IncidentService manages the incident lifecycle. Every state change is
// persisted first and broadcast second, so a dashboard refreshing on the
// push always reads the committed state.
type IncidentService struct {
	incidentRepo  ports.IncidentRepository
	volunteerRepo ports.VolunteerRepository
	broadcaster   ports.Broadcaster
}

var _ ports.IncidentService = (*IncidentService)(nil)

// NewIncidentService creates a new incident service.
func NewIncidentService(
	incidentRepo ports.IncidentRepository,
	volunteerRepo ports.VolunteerRepository,
	broadcaster ports.Broadcaster,
) ports.IncidentService {
	return &IncidentService{
		incidentRepo:  incidentRepo,
		volunteerRepo: volunteerRepo,
		broadcaster:   broadcaster,
	}
}

// ListRecent returns the newest incidents for the dashboard feed.
func (s *IncidentService) ListRecent(ctx context.Context, limit, offset int) ([]*domain.Incident, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.incidentRepo.ListRecent(ctx, limit, offset)
}

// Acknowledge marks an incident as seen by an operator.
func (s *IncidentService) Acknowledge(ctx context.Context, incidentID, actorID uuid.UUID) (*domain.Incident, error) {
	incident, err := s.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	if err := incident.Acknowledge(actorID); err != nil {
		return nil, err
	}

	incident, err = s.incidentRepo.Update(ctx, incident)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(domain.EventIncidentUpdate, incident)

	return incident, nil
}

// Assign dispatches an incident to a volunteer and marks the volunteer as
// assigned.
func (s *IncidentService) Assign(ctx context.Context, incidentID, volunteerID uuid.UUID) (*domain.Incident, error) {
	incident, err := s.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	volunteer, err := s.volunteerRepo.GetByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	if err := incident.Assign(volunteer.ID); err != nil {
		return nil, err
	}

	incident, err = s.incidentRepo.Update(ctx, incident)
	if err != nil {
		return nil, err
	}

	if err := volunteer.SetStatus(domain.VolunteerAssigned); err != nil {
		return nil, err
	}
	volunteer, err = s.volunteerRepo.Update(ctx, volunteer)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(domain.EventIncidentAssignment, AssignmentEventPayload{
		Event:     incident,
		Volunteer: volunteer,
	})

	return incident, nil
}

// CreateManual raises an incident directly from the command center, outside
// the frame and report pipelines.
func (s *IncidentService) CreateManual(ctx context.Context, severity domain.RiskLevel, zoneID, summary string) (*domain.Incident, error) {
	incident, err := domain.NewIncident(domain.KindManual, severity, zoneID, summary)
	if err != nil {
		return nil, err
	}

	incident, err = s.incidentRepo.Create(ctx, incident)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(domain.EventIncident, IncidentEventPayload{Event: incident})

	return incident, nil
}
