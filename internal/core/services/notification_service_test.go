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

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()

	t.Run("announcement is stored then pushed", func(t *testing.T) {
		repo := mocks.NewMockNotificationRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewNotificationService(repo, broadcaster)

		stored := &domain.Notification{ID: uuid.New(), Title: "Gate 3 closed", Severity: domain.RiskMedium, CreatedBy: adminID}
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(stored, nil)
		broadcaster.On("Broadcast", domain.EventNewNotification, stored).Return()

		notification, err := svc.Create(ctx, ports.CreateNotificationParams{
			CreatedBy: adminID,
			Title:     "Gate 3 closed",
			Severity:  domain.RiskMedium,
		})

		require.NoError(t, err)
		assert.Equal(t, stored.ID, notification.ID)
		broadcaster.AssertExpectations(t)
	})

	t.Run("missing title is rejected", func(t *testing.T) {
		repo := mocks.NewMockNotificationRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewNotificationService(repo, broadcaster)

		_, err := svc.Create(ctx, ports.CreateNotificationParams{CreatedBy: adminID})

		assert.ErrorIs(t, err, domain.ErrNotificationTitleRequired)
		repo.AssertNotCalled(t, "Create")
		broadcaster.AssertNotCalled(t, "Broadcast")
	})
}

func TestNotificationService_Acknowledge(t *testing.T) {
	ctx := context.Background()

	t.Run("first acknowledger wins and the update is pushed", func(t *testing.T) {
		repo := mocks.NewMockNotificationRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewNotificationService(repo, broadcaster)

		notification, err := domain.NewNotification(uuid.New(), "Gate 3 closed", "", domain.RiskMedium)
		require.NoError(t, err)

		actorID := uuid.New()
		repo.On("GetByID", mock.Anything, notification.ID).Return(notification, nil)
		repo.On("Update", mock.Anything, notification).Return(notification, nil)
		broadcaster.On("Broadcast", domain.EventNotificationAcknowledged, notification).Return()

		acked, err := svc.Acknowledge(ctx, notification.ID, actorID)

		require.NoError(t, err)
		require.NotNil(t, acked.AcknowledgedBy)
		assert.Equal(t, actorID, *acked.AcknowledgedBy)
		broadcaster.AssertExpectations(t)
	})

	t.Run("second acknowledger is rejected", func(t *testing.T) {
		repo := mocks.NewMockNotificationRepository()
		broadcaster := mocks.NewMockBroadcaster()
		svc := services.NewNotificationService(repo, broadcaster)

		notification, err := domain.NewNotification(uuid.New(), "Gate 3 closed", "", domain.RiskMedium)
		require.NoError(t, err)
		require.NoError(t, notification.Acknowledge(uuid.New()))

		repo.On("GetByID", mock.Anything, notification.ID).Return(notification, nil)

		_, err = svc.Acknowledge(ctx, notification.ID, uuid.New())

		assert.ErrorIs(t, err, domain.ErrAlreadyAcknowledged)
		repo.AssertNotCalled(t, "Update")
		broadcaster.AssertNotCalled(t, "Broadcast")
	})
}
