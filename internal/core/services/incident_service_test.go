package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
	"github.com/drishti/command-center-backend/internal/core/mocks"
	"github.com/drishti/command-center-backend/internal/core/services"
)

func openIncident() *domain.Incident {
	incident, _ := domain.NewIncident(domain.KindManual, domain.RiskHigh, "sector-7", "crowd surge at the footbridge")
	return incident
}

func TestIncidentService_Acknowledge(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("open incident is acknowledged and broadcast", func(t *testing.T) {
		incidentRepo := mocks.NewMockIncidentRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewIncidentService(incidentRepo, volunteerRepo, broadcaster)

		incident := openIncident()
		incidentRepo.On("GetByID", mock.Anything, incident.ID).Return(incident, nil)
		incidentRepo.On("Update", mock.Anything, incident).Return(incident, nil)
		broadcaster.On("Broadcast", domain.EventIncidentUpdate, incident).Return()

		updated, err := svc.Acknowledge(ctx, incident.ID, actorID)

		require.NoError(t, err)
		assert.Equal(t, domain.IncidentAcknowledged, updated.Status)
		require.NotNil(t, updated.AcknowledgedBy)
		assert.Equal(t, actorID, *updated.AcknowledgedBy)
		broadcaster.AssertExpectations(t)
	})

	t.Run("double acknowledge is rejected without broadcast", func(t *testing.T) {
		incidentRepo := mocks.NewMockIncidentRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewIncidentService(incidentRepo, volunteerRepo, broadcaster)

		incident := openIncident()
		require.NoError(t, incident.Acknowledge(uuid.New()))
		incidentRepo.On("GetByID", mock.Anything, incident.ID).Return(incident, nil)

		_, err := svc.Acknowledge(ctx, incident.ID, actorID)

		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
		incidentRepo.AssertNotCalled(t, "Update")
		broadcaster.AssertNotCalled(t, "Broadcast")
	})

	t.Run("missing incident surfaces not found", func(t *testing.T) {
		incidentRepo := mocks.NewMockIncidentRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewIncidentService(incidentRepo, volunteerRepo, broadcaster)

		id := uuid.New()
		incidentRepo.On("GetByID", mock.Anything, id).Return(nil, apperrors.ErrIncidentNotFound)

		_, err := svc.Acknowledge(ctx, id, actorID)

		assert.ErrorIs(t, err, apperrors.ErrIncidentNotFound)
	})
}

func TestIncidentService_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("assignment updates both rows then broadcasts", func(t *testing.T) {
		incidentRepo := mocks.NewMockIncidentRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewIncidentService(incidentRepo, volunteerRepo, broadcaster)

		incident := openIncident()
		volunteer := &domain.Volunteer{ID: uuid.New(), Name: "Asha", Status: domain.VolunteerAvailable}

		incidentRepo.On("GetByID", mock.Anything, incident.ID).Return(incident, nil)
		volunteerRepo.On("GetByID", mock.Anything, volunteer.ID).Return(volunteer, nil)
		incidentRepo.On("Update", mock.Anything, incident).Return(incident, nil)
		volunteerRepo.On("Update", mock.Anything, volunteer).Return(volunteer, nil)
		broadcaster.On("Broadcast", domain.EventIncidentAssignment, mock.AnythingOfType("services.AssignmentEventPayload")).Return()

		updated, err := svc.Assign(ctx, incident.ID, volunteer.ID)

		require.NoError(t, err)
		require.NotNil(t, updated.AssignedTo)
		assert.Equal(t, volunteer.ID, *updated.AssignedTo)
		assert.Equal(t, domain.VolunteerAssigned, volunteer.Status)
		broadcaster.AssertExpectations(t)
	})

	t.Run("unknown volunteer blocks the assignment", func(t *testing.T) {
		incidentRepo := mocks.NewMockIncidentRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewIncidentService(incidentRepo, volunteerRepo, broadcaster)

		incident := openIncident()
		volunteerID := uuid.New()
		incidentRepo.On("GetByID", mock.Anything, incident.ID).Return(incident, nil)
		volunteerRepo.On("GetByID", mock.Anything, volunteerID).Return(nil, apperrors.ErrVolunteerNotFound)

		_, err := svc.Assign(ctx, incident.ID, volunteerID)

		assert.ErrorIs(t, err, apperrors.ErrVolunteerNotFound)
		incidentRepo.AssertNotCalled(t, "Update")
		broadcaster.AssertNotCalled(t, "Broadcast")
	})

	t.Run("closed incident cannot be assigned", func(t *testing.T) {
		incidentRepo := mocks.NewMockIncidentRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewIncidentService(incidentRepo, volunteerRepo, broadcaster)

		incident := openIncident()
		require.NoError(t, incident.Close(uuid.New()))
		volunteer := &domain.Volunteer{ID: uuid.New(), Status: domain.VolunteerAvailable}

		incidentRepo.On("GetByID", mock.Anything, incident.ID).Return(incident, nil)
		volunteerRepo.On("GetByID", mock.Anything, volunteer.ID).Return(volunteer, nil)

		_, err := svc.Assign(ctx, incident.ID, volunteer.ID)

		assert.ErrorIs(t, err, domain.ErrIncidentClosed)
		broadcaster.AssertNotCalled(t, "Broadcast")
	})
}

func TestIncidentService_CreateManual(t *testing.T) {
	ctx := context.Background()

	t.Run("valid incident is stored and broadcast", func(t *testing.T) {
		incidentRepo := mocks.NewMockIncidentRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewIncidentService(incidentRepo, volunteerRepo, broadcaster)

		stored := &domain.Incident{ID: uuid.New(), Kind: domain.KindManual, Severity: domain.RiskHigh, Status: domain.IncidentOpen}
		incidentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Incident")).Return(stored, nil)
		broadcaster.On("Broadcast", domain.EventIncident, mock.AnythingOfType("services.IncidentEventPayload")).Return()

		incident, err := svc.CreateManual(ctx, domain.RiskHigh, "sector-7", "barricade breach")

		require.NoError(t, err)
		assert.Equal(t, stored.ID, incident.ID)
		broadcaster.AssertExpectations(t)
	})

	t.Run("empty summary is rejected", func(t *testing.T) {
		incidentRepo := mocks.NewMockIncidentRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewIncidentService(incidentRepo, volunteerRepo, broadcaster)

		_, err := svc.CreateManual(ctx, domain.RiskHigh, "sector-7", "")

		assert.ErrorIs(t, err, domain.ErrSummaryRequired)
		incidentRepo.AssertNotCalled(t, "Create")
	})

	t.Run("persist failure suppresses the broadcast", func(t *testing.T) {
		incidentRepo := mocks.NewMockIncidentRepository()
		volunteerRepo := mocks.NewMockVolunteerRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewIncidentService(incidentRepo, volunteerRepo, broadcaster)

		incidentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Incident")).
			Return(nil, errors.New("db down"))

		_, err := svc.CreateManual(ctx, domain.RiskHigh, "sector-7", "barricade breach")

		assert.Error(t, err)
		broadcaster.AssertNotCalled(t, "Broadcast")
	})
}
