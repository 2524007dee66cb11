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

func TestLostPersonService_Search(t *testing.T) {
	ctx := context.Background()
	image := []byte{0xff, 0xd8}

	t.Run("matches above threshold are returned best first", func(t *testing.T) {
		repo := mocks.NewMockLostPersonRepository()
		embedder := mocks.NewMockImageEmbedder()
		svc := services.NewLostPersonService(repo, embedder, discardLogger())

		exact := &domain.LostPerson{ID: uuid.New(), PersonDescription: "red kurta", Embedding: "[1, 0, 0]"}
		near := &domain.LostPerson{ID: uuid.New(), PersonDescription: "blue shawl", Embedding: "[0.9, 0.4, 0]"}
		far := &domain.LostPerson{ID: uuid.New(), PersonDescription: "green cap", Embedding: "[0, 1, 0]"}
		malformed := &domain.LostPerson{ID: uuid.New(), PersonDescription: "no data", Embedding: "not json"}

		embedder.On("EmbedImage", mock.Anything, image).Return([]float64{1, 0, 0}, nil)
		repo.On("ListMissing", mock.Anything).
			Return([]*domain.LostPerson{far, near, exact, malformed}, nil)

		matches, err := svc.Search(ctx, image)

		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, exact.ID, matches[0].Person.ID)
		assert.InDelta(t, 1.0, matches[0].Similarity, 1e-9)
		assert.Equal(t, near.ID, matches[1].Person.ID)
	})

	t.Run("empty image is rejected", func(t *testing.T) {
		repo := mocks.NewMockLostPersonRepository()
		embedder := mocks.NewMockImageEmbedder()
		svc := services.NewLostPersonService(repo, embedder, discardLogger())

		_, err := svc.Search(ctx, nil)

		assert.Error(t, err)
		embedder.AssertNotCalled(t, "EmbedImage")
	})
}

func TestLostPersonService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("case is stored", func(t *testing.T) {
		repo := mocks.NewMockLostPersonRepository()
		embedder := mocks.NewMockImageEmbedder()
		svc := services.NewLostPersonService(repo, embedder, discardLogger())

		stored := &domain.LostPerson{ID: uuid.New(), Status: domain.LostPersonMissing}
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.LostPerson")).Return(stored, nil)

		person, err := svc.Register(ctx, ports.RegisterLostPersonParams{
			ReportID:    uuid.New(),
			Description: "red kurta, about 8 years old",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.LostPersonMissing, person.Status)
	})

	t.Run("missing description is rejected", func(t *testing.T) {
		repo := mocks.NewMockLostPersonRepository()
		embedder := mocks.NewMockImageEmbedder()
		svc := services.NewLostPersonService(repo, embedder, discardLogger())

		_, err := svc.Register(ctx, ports.RegisterLostPersonParams{ReportID: uuid.New()})

		assert.ErrorIs(t, err, domain.ErrDescriptionRequired)
		repo.AssertNotCalled(t, "Create")
	})
}
