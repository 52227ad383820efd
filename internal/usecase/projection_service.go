package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/scoutlab/squadscope/internal/domain/player"
	"github.com/scoutlab/squadscope/internal/domain/scouting"
)

// PlayerProjection pairs a stored profile with its forward projection.
type PlayerProjection struct {
	Player     player.Profile
	Projection scouting.Projection
}

type ProjectionService struct {
	playerRepo player.Repository
	logger     *slog.Logger
}

func NewProjectionService(playerRepo player.Repository, logger *slog.Logger) *ProjectionService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ProjectionService{
		playerRepo: playerRepo,
		logger:     logger,
	}
}

func (s *ProjectionService) ProjectPlayer(ctx context.Context, playerID string) (PlayerProjection, error) {
	ctx, span := startUsecaseSpan(ctx, "ProjectionService.ProjectPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerProjection{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	profile, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerProjection{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return PlayerProjection{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	if !profile.AgeKnown() {
		return PlayerProjection{}, fmt.Errorf("%w: player %s has no usable age for projection", ErrInvalidInput, playerID)
	}

	return PlayerProjection{
		Player:     profile,
		Projection: scouting.Project(profile),
	}, nil
}
