package services

import (
	"context"
	"time"

	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// AlertService composes multilingual loudspeaker announcements and pushes
// them to every dashboard. Alerts are transient: they exist only as an
// envelope on the push channel, never as a database row.
type AlertService struct {
	composer    ports.AlertComposer
	broadcaster ports.Broadcaster
}

var _ ports.AlertService = (*AlertService)(nil)

// NewAlertService creates a new alert service.
func NewAlertService(composer ports.AlertComposer, broadcaster ports.Broadcaster) ports.AlertService {
	return &AlertService{
		composer:    composer,
		broadcaster: broadcaster,
	}
}

// GenerateAlert composes announcement text for the zone and broadcasts it.
func (s *AlertService) GenerateAlert(ctx context.Context, params ports.GenerateAlertParams) (*domain.Alert, error) {
	if params.Zone == "" {
		return nil, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "zone is required")
	}
	if params.AlertType == "" {
		params.AlertType = "general"
	}

	text, err := s.composer.ComposeAlertText(ctx, params.Zone, params.AlertType)
	if err != nil {
		return nil, err
	}

	alert := &domain.Alert{
		Zone:      params.Zone,
		AlertType: params.AlertType,
		Languages: params.Languages,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	s.broadcaster.Broadcast(domain.EventAlertGenerated, alert)

	return alert, nil
}
