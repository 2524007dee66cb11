package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
)

func TestIncidentRepository_CreateGetUpdate(t *testing.T) {
	require.NotNil(t, testPool, "testPool is nil. TestMain may not have run.")
	ctx := context.Background()
	repo := NewIncidentRepository(testPool)

	incident, err := domain.NewIncident(domain.KindManual, domain.RiskHigh, "sector-7", "crowd surge at the footbridge")
	require.NoError(t, err)

	created, err := repo.Create(ctx, incident)
	require.NoError(t, err, "Failed to create incident")
	assert.Equal(t, incident.ID, created.ID)
	assert.Equal(t, domain.IncidentOpen, created.Status)
	assert.Nil(t, created.AcknowledgedBy)

	found, err := repo.GetByID(ctx, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskHigh, found.Severity)
	assert.Equal(t, "sector-7", found.ZoneID)

	actorID := uuid.New()
	require.NoError(t, found.Acknowledge(actorID))

	updated, err := repo.Update(ctx, found)
	require.NoError(t, err, "Failed to update incident")
	assert.Equal(t, domain.IncidentAcknowledged, updated.Status)
	require.NotNil(t, updated.AcknowledgedBy)
	assert.Equal(t, actorID, *updated.AcknowledgedBy)
	assert.WithinDuration(t, time.Now().UTC(), *updated.UpdatedAt, 5*time.Second)
}

func TestIncidentRepository_GetByID_NotFound(t *testing.T) {
	require.NotNil(t, testPool, "testPool is nil. TestMain may not have run.")
	ctx := context.Background()
	repo := NewIncidentRepository(testPool)

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrIncidentNotFound)
}

func TestIncidentRepository_ListRecent(t *testing.T) {
	require.NotNil(t, testPool, "testPool is nil. TestMain may not have run.")
	ctx := context.Background()
	repo := NewIncidentRepository(testPool)

	for i := 0; i < 3; i++ {
		incident, err := domain.NewIncident(domain.KindAnalysis, domain.RiskMedium, "ram_ghat", "rising density near the steps")
		require.NoError(t, err)
		_, err = repo.Create(ctx, incident)
		require.NoError(t, err)
	}

	incidents, err := repo.ListRecent(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, incidents, 2)
	// Newest first.
	assert.True(t, !incidents[0].CreatedAt.Before(incidents[1].CreatedAt))

	// The offset skips past the newest rows.
	paged, err := repo.ListRecent(ctx, 2, 1)
	require.NoError(t, err)
	require.NotEmpty(t, paged)
	assert.Equal(t, incidents[1].ID, paged[0].ID)
}
