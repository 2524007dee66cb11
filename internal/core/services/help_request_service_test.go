package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/mocks"
	"github.com/drishti/command-center-backend/internal/core/ports"
	"github.com/drishti/command-center-backend/internal/core/services"
)

func pendingRequest(t *testing.T) *domain.HelpRequest {
	t.Helper()
	request, err := domain.NewHelpRequest(uuid.New(), domain.HelpMedical, "chest pain", "gate 4", nil, nil)
	require.NoError(t, err)
	return request
}

func TestHelpRequestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("request is stored then pushed", func(t *testing.T) {
		helpRepo := mocks.NewMockHelpRequestRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewHelpRequestService(helpRepo, volunteerRepo, broadcaster)

		stored := pendingRequest(t)
		helpRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.HelpRequest")).Return(stored, nil)
		broadcaster.On("Broadcast", domain.EventNewHelpRequest, stored).Return()

		request, err := svc.Create(ctx, ports.CreateHelpRequestParams{
			UserID:      stored.UserID,
			RequestType: domain.HelpMedical,
			Description: "chest pain",
			Location:    "gate 4",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.HelpPending, request.Status)
		broadcaster.AssertExpectations(t)
	})

	t.Run("unknown request type is rejected", func(t *testing.T) {
		helpRepo := mocks.NewMockHelpRequestRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewHelpRequestService(helpRepo, volunteerRepo, broadcaster)

		_, err := svc.Create(ctx, ports.CreateHelpRequestParams{
			UserID:      uuid.New(),
			RequestType: "teleport",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidHelpRequestType)
		helpRepo.AssertNotCalled(t, "Create")
	})
}

func TestHelpRequestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("assignment moves a pending request in progress", func(t *testing.T) {
		helpRepo := mocks.NewMockHelpRequestRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewHelpRequestService(helpRepo, volunteerRepo, broadcaster)

		request := pendingRequest(t)
		volunteer := &domain.Volunteer{ID: uuid.New(), Status: domain.VolunteerAvailable}

		helpRepo.On("GetByID", mock.Anything, request.ID).Return(request, nil)
		volunteerRepo.On("GetByID", mock.Anything, volunteer.ID).Return(volunteer, nil)
		helpRepo.On("Update", mock.Anything, request).Return(request, nil)
		broadcaster.On("Broadcast", domain.EventHelpRequestUpdate, request).Return()

		updated, err := svc.Update(ctx, ports.UpdateHelpRequestParams{
			RequestID:  request.ID,
			AssignedTo: &volunteer.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.HelpInProgress, updated.Status)
		require.NotNil(t, updated.AssignedTo)
		assert.Equal(t, volunteer.ID, *updated.AssignedTo)
		broadcaster.AssertExpectations(t)
	})

	t.Run("resolved request cannot be reopened", func(t *testing.T) {
		helpRepo := mocks.NewMockHelpRequestRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewHelpRequestService(helpRepo, volunteerRepo, broadcaster)

		request := pendingRequest(t)
		require.NoError(t, request.UpdateStatus(domain.HelpResolved))
		helpRepo.On("GetByID", mock.Anything, request.ID).Return(request, nil)

		status := domain.HelpInProgress
		_, err := svc.Update(ctx, ports.UpdateHelpRequestParams{
			RequestID: request.ID,
			Status:    &status,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidHelpRequestStatus)
		helpRepo.AssertNotCalled(t, "Update")
		broadcaster.AssertNotCalled(t, "Broadcast")
	})

	t.Run("update with no changes is rejected", func(t *testing.T) {
		helpRepo := mocks.NewMockHelpRequestRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewHelpRequestService(helpRepo, volunteerRepo, broadcaster)

		_, err := svc.Update(ctx, ports.UpdateHelpRequestParams{RequestID: uuid.New()})

		assert.Error(t, err)
		helpRepo.AssertNotCalled(t, "GetByID")
	})
}
