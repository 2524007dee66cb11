package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// SourceService manages registered camera/drone/sensor feeds.
type SourceService struct {
	sourceRepo ports.SourceRepository
}

var _ ports.SourceService = (*SourceService)(nil)

// NewSourceService creates a new source service.
func NewSourceService(sourceRepo ports.SourceRepository) ports.SourceService {
	return &SourceService{sourceRepo: sourceRepo}
}

// Register provisions a feed ahead of its first frame upload.
func (s *SourceService) Register(ctx context.Context, params ports.RegisterSourceParams) (*domain.Source, error) {
	if params.SourceID == "" {
		return nil, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "sourceId is required")
	}
	if params.Type == "" {
		params.Type = domain.SourceCamera
	}
	if params.Name == "" {
		params.Name = params.SourceID
	}

	return s.sourceRepo.Create(ctx, &domain.Source{
		ID:        uuid.New(),
		SourceID:  params.SourceID,
		Name:      params.Name,
		Type:      params.Type,
		Location:  params.Location,
		Lat:       params.Lat,
		Lng:       params.Lng,
		Protocol:  params.Protocol,
		Status:    "active",
		CreatedAt: time.Now().UTC(),
	})
}

// List returns every registered feed.
func (s *SourceService) List(ctx context.Context) ([]*domain.Source, error) {
	return s.sourceRepo.List(ctx)
}
