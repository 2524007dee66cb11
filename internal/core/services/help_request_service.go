package services

import (
	"context"

	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// HelpRequestService manages the help-request dispatch lifecycle.
type HelpRequestService struct {
	helpRepo      ports.HelpRequestRepository
	volunteerRepo ports.VolunteerRepository
	broadcaster   ports.Broadcaster
}

var _ ports.HelpRequestService = (*HelpRequestService)(nil)

// NewHelpRequestService creates a new help-request service.
func NewHelpRequestService(
	helpRepo ports.HelpRequestRepository,
	volunteerRepo ports.VolunteerRepository,
	broadcaster ports.Broadcaster,
) ports.HelpRequestService {
	return &HelpRequestService{
		helpRepo:      helpRepo,
		volunteerRepo: volunteerRepo,
		broadcaster:   broadcaster,
	}
}

// Create stores a pending help request and pushes it to every dashboard.
func (s *HelpRequestService) Create(ctx context.Context, params ports.CreateHelpRequestParams) (*domain.HelpRequest, error) {
	request, err := domain.NewHelpRequest(params.UserID, params.RequestType, params.Description, params.Location, params.Lat, params.Lng)
	if err != nil {
		return nil, err
	}

	request, err = s.helpRepo.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(domain.EventNewHelpRequest, request)

	return request, nil
}

// Update applies a status change and/or an assignment, then pushes the new
// state. A request updated with neither is rejected.
func (s *HelpRequestService) Update(ctx context.Context, params ports.UpdateHelpRequestParams) (*domain.HelpRequest, error) {
	if params.Status == nil && params.AssignedTo == nil {
		return nil, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "nothing to update")
	}

	request, err := s.helpRepo.GetByID(ctx, params.RequestID)
	if err != nil {
		return nil, err
	}

	if params.AssignedTo != nil {
		volunteer, err := s.volunteerRepo.GetByID(ctx, *params.AssignedTo)
		if err != nil {
			return nil, err
		}
		if err := request.Assign(volunteer.ID); err != nil {
			return nil, err
		}
	}

	if params.Status != nil {
		if err := request.UpdateStatus(*params.Status); err != nil {
			return nil, err
		}
	}

	request, err = s.helpRepo.Update(ctx, request)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(domain.EventHelpRequestUpdate, request)

	return request, nil
}

// ListOpen returns requests still awaiting resolution.
func (s *HelpRequestService) ListOpen(ctx context.Context) ([]*domain.HelpRequest, error) {
	return s.helpRepo.ListOpen(ctx)
}
