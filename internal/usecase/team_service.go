package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/scoutlab/squadscope/internal/domain/roster"
	"github.com/scoutlab/squadscope/internal/platform/cache"
)

type SaveTeamInput struct {
	TeamName  string
	PlayerIDs []string
}

type TeamService struct {
	teamRepo     roster.SavedTeamRepository
	balance      *BalanceService
	balanceCache *cache.Store
	logger       *slog.Logger
	now          func() time.Time
}

func NewTeamService(
	teamRepo roster.SavedTeamRepository,
	balance *BalanceService,
	balanceCache *cache.Store,
	logger *slog.Logger,
) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TeamService{
		teamRepo:     teamRepo,
		balance:      balance,
		balanceCache: balanceCache,
		logger:       logger,
		now:          time.Now,
	}
}

// SaveTeam creates or fully replaces the named composition. Saving an
// existing name is not an error: the previous player set is discarded.
func (s *TeamService) SaveTeam(ctx context.Context, input SaveTeamInput) (roster.SavedTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.SaveTeam")
	defer span.End()

	input.TeamName = strings.TrimSpace(input.TeamName)
	if input.TeamName == "" {
		return roster.SavedTeam{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if len(input.PlayerIDs) == 0 {
		return roster.SavedTeam{}, fmt.Errorf("%w: player ids are required", ErrInvalidInput)
	}

	playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
	if err != nil {
		return roster.SavedTeam{}, err
	}

	team := roster.SavedTeam{
		TeamName:  input.TeamName,
		PlayerIDs: playerIDs,
		SavedAt:   s.now().UTC(),
	}

	if err := s.teamRepo.Upsert(ctx, team); err != nil {
		return roster.SavedTeam{}, fmt.Errorf("upsert saved team: %w", err)
	}
	s.invalidateBalance(ctx, team.TeamName)

	s.logger.InfoContext(ctx, "team saved",
		"team", team.TeamName,
		"player_count", len(team.PlayerIDs),
	)

	return team, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamName string) (roster.SavedTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetTeam")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return roster.SavedTeam{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	team, exists, err := s.teamRepo.GetByName(ctx, teamName)
	if err != nil {
		return roster.SavedTeam{}, fmt.Errorf("get saved team: %w", err)
	}
	if !exists {
		return roster.SavedTeam{}, fmt.Errorf("%w: team %s", ErrNotFound, teamName)
	}

	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]roster.SavedTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list saved teams: %w", err)
	}

	return teams, nil
}

// DeleteTeam removes the named composition. Deleting an unknown name is a
// distinct not-found outcome, not a silent no-op.
func (s *TeamService) DeleteTeam(ctx context.Context, teamName string) error {
	ctx, span := startUsecaseSpan(ctx, "TeamService.DeleteTeam")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	existed, err := s.teamRepo.Delete(ctx, teamName)
	if err != nil {
		return fmt.Errorf("delete saved team: %w", err)
	}
	if !existed {
		return fmt.Errorf("%w: team %s", ErrNotFound, teamName)
	}
	s.invalidateBalance(ctx, teamName)

	s.logger.InfoContext(ctx, "team deleted", "team", teamName)

	return nil
}

// TeamBalance analyzes a saved composition. Reports are cached per team
// name until the composition changes or the TTL expires.
func (s *TeamService) TeamBalance(ctx context.Context, teamName string) (roster.BalanceReport, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.TeamBalance")
	defer span.End()

	team, err := s.GetTeam(ctx, teamName)
	if err != nil {
		return roster.BalanceReport{}, err
	}

	load := func(ctx context.Context) (any, error) {
		return s.balance.AnalyzeBalance(ctx, SquadInput{
			TeamName:  team.TeamName,
			PlayerIDs: team.PlayerIDs,
		})
	}

	if s.balanceCache == nil {
		value, err := load(ctx)
		if err != nil {
			return roster.BalanceReport{}, err
		}
		return value.(roster.BalanceReport), nil
	}

	value, err := s.balanceCache.GetOrLoad(ctx, balanceCacheKey(team.TeamName), load)
	if err != nil {
		return roster.BalanceReport{}, err
	}

	return value.(roster.BalanceReport), nil
}

func (s *TeamService) invalidateBalance(ctx context.Context, teamName string) {
	if s.balanceCache == nil {
		return
	}
	s.balanceCache.Delete(ctx, balanceCacheKey(teamName))
}

func balanceCacheKey(teamName string) string {
	return "team_balance:" + teamName
}
