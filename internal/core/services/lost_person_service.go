package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sort"

	"github.com/drishti/command-center-backend/internal/core/domain"
	apperrors "github.com/drishti/command-center-backend/internal/core/errors"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// matchThreshold is the minimum cosine similarity for a search hit.
const matchThreshold = 0.75

// LostPersonService manages missing-person cases and similarity search over
// registered case images.
type LostPersonService struct {
	lostPersonRepo ports.LostPersonRepository
	embedder       ports.ImageEmbedder
	logger         *slog.Logger
}

var _ ports.LostPersonService = (*LostPersonService)(nil)

// NewLostPersonService creates a new lost-person service.
func NewLostPersonService(
	lostPersonRepo ports.LostPersonRepository,
	embedder ports.ImageEmbedder,
	logger *slog.Logger,
) ports.LostPersonService {
	return &LostPersonService{
		lostPersonRepo: lostPersonRepo,
		embedder:       embedder,
		logger:         logger.With("component", "lost_person_service"),
	}
}

// Register stores a new missing-person case.
func (s *LostPersonService) Register(ctx context.Context, params ports.RegisterLostPersonParams) (*domain.LostPerson, error) {
	person, err := domain.NewLostPerson(
		params.ReportID,
		params.Description,
		params.ImageURL,
		params.Embedding,
		params.LastSeenLocation,
		params.ContactInfo,
		params.Age,
	)
	if err != nil {
		return nil, err
	}

	return s.lostPersonRepo.Create(ctx, person)
}

// Search embeds the uploaded image and scores it against every open case,
// returning matches above the similarity threshold, best first.
func (s *LostPersonService) Search(ctx context.Context, image []byte) ([]*domain.LostPersonMatch, error) {
	if len(image) == 0 {
		return nil, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "image payload is empty")
	}

	query, err := s.embedder.EmbedImage(ctx, image)
	if err != nil {
		return nil, err
	}

	cases, err := s.lostPersonRepo.ListMissing(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]*domain.LostPersonMatch, 0, len(cases))
	for _, person := range cases {
		if person.Embedding == "" {
			continue
		}

		var stored []float64
		if err := json.Unmarshal([]byte(person.Embedding), &stored); err != nil {
			s.logger.Warn("skipping case with malformed embedding", "case_id", person.ID, "error", err)
			continue
		}

		similarity := cosineSimilarity(query, stored)
		if similarity >= matchThreshold {
			matches = append(matches, &domain.LostPersonMatch{
				Person:     person,
				Similarity: similarity,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	return matches, nil
}

// cosineSimilarity returns 0 for mismatched or degenerate vectors.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
