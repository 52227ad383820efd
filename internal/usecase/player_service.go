package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/scoutlab/squadscope/internal/domain/player"
)

// IngestResult summarizes one batch of raw records pushed into the store.
type IngestResult struct {
	Received int
	Stored   int
	Skipped  int
}

type PlayerService struct {
	playerRepo player.Repository
	resolver   *PhaseResolver
	logger     *slog.Logger
}

func NewPlayerService(playerRepo player.Repository, resolver *PhaseResolver, logger *slog.Logger) *PlayerService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		resolver:   resolver,
		logger:     logger,
	}
}

// IngestPlayers normalizes raw scraped records and upserts them. Records
// without an id are skipped, never fatal: ingestion is best effort per
// record.
func (s *PlayerService) IngestPlayers(ctx context.Context, records []player.RawRecord) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.IngestPlayers")
	defer span.End()

	if len(records) == 0 {
		return IngestResult{}, fmt.Errorf("%w: at least one player record is required", ErrInvalidInput)
	}

	result := IngestResult{Received: len(records)}
	for _, raw := range records {
		profile := player.Normalize(raw)
		if strings.TrimSpace(profile.ID) == "" {
			result.Skipped++
			continue
		}

		profile.Phase = s.resolver.Resolve(ctx, profile)

		if err := s.playerRepo.Put(ctx, profile); err != nil {
			return IngestResult{}, fmt.Errorf("store player %s: %w", profile.ID, err)
		}
		result.Stored++
	}

	s.logger.InfoContext(ctx, "players ingested",
		"received", result.Received,
		"stored", result.Stored,
		"skipped", result.Skipped,
	)

	return result, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Profile{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	profile, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Profile{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Profile{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	return profile, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ListPlayers")
	defer span.End()

	profiles, err := s.playerRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return profiles, nil
}
