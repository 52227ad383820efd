package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/scoutlab/squadscope/internal/domain/player"
	"github.com/scoutlab/squadscope/internal/domain/roster"
)

// SquadInput identifies the squad to analyze: either stored player ids or
// inline raw records. Inline records are analyzed without being persisted.
type SquadInput struct {
	TeamName  string
	PlayerIDs []string
	Records   []player.RawRecord
}

type BalanceService struct {
	playerRepo player.Repository
	targets    roster.Targets
	logger     *slog.Logger
}

func NewBalanceService(playerRepo player.Repository, targets roster.Targets, logger *slog.Logger) *BalanceService {
	if logger == nil {
		logger = slog.Default()
	}

	return &BalanceService{
		playerRepo: playerRepo,
		targets:    targets,
		logger:     logger,
	}
}

// AnalyzeBalance produces the full composition report: both axes, squad
// metrics, needs, and advisories. The two axis analyses are independent
// and run concurrently.
func (s *BalanceService) AnalyzeBalance(ctx context.Context, input SquadInput) (roster.BalanceReport, error) {
	ctx, span := startUsecaseSpan(ctx, "BalanceService.AnalyzeBalance")
	defer span.End()

	snapshot, err := s.resolveSnapshot(ctx, input)
	if err != nil {
		return roster.BalanceReport{}, err
	}

	var ageDist, phaseDist roster.Distribution
	var wg conc.WaitGroup
	wg.Go(func() {
		ageDist = roster.Analyze(snapshot, roster.AxisAge, s.targets)
	})
	wg.Go(func() {
		phaseDist = roster.Analyze(snapshot, roster.AxisPhase, s.targets)
	})
	wg.Wait()

	metrics := roster.MetricsOf(snapshot, s.targets)
	needs := mergeNeeds(
		roster.IdentifyNeeds(ageDist, s.targets.NeedThreshold),
		roster.IdentifyNeeds(phaseDist, s.targets.NeedThreshold),
	)

	report := roster.BalanceReport{
		TeamName:       snapshot.TeamName,
		Metrics:        metrics,
		AgeAnalysis:    ageDist,
		PhaseAnalysis:  phaseDist,
		AgeBalance:     ageDist.BalanceScore,
		PhaseBalance:   phaseDist.BalanceScore,
		OverallBalance: (ageDist.BalanceScore + phaseDist.BalanceScore) / 2,
		Needs:          needs,
		Advisories:     roster.Advisories(metrics, []roster.Distribution{ageDist, phaseDist}, s.targets.NeedThreshold),
	}

	s.logger.InfoContext(ctx, "squad balance analyzed",
		"team", snapshot.TeamName,
		"players", len(snapshot.Players),
		"overall_balance", report.OverallBalance,
		"needs", len(report.Needs),
	)

	return report, nil
}

// AnalyzeDistribution computes a single axis distribution.
func (s *BalanceService) AnalyzeDistribution(ctx context.Context, input SquadInput, axis roster.Axis) (roster.Distribution, error) {
	ctx, span := startUsecaseSpan(ctx, "BalanceService.AnalyzeDistribution")
	defer span.End()

	snapshot, err := s.resolveSnapshot(ctx, input)
	if err != nil {
		return roster.Distribution{}, err
	}

	return roster.Analyze(snapshot, axis, s.targets), nil
}

// Snapshot exposes squad resolution for services composing on top of
// balance analysis.
func (s *BalanceService) Snapshot(ctx context.Context, input SquadInput) (roster.Snapshot, error) {
	return s.resolveSnapshot(ctx, input)
}

func (s *BalanceService) resolveSnapshot(ctx context.Context, input SquadInput) (roster.Snapshot, error) {
	teamName := strings.TrimSpace(input.TeamName)

	if len(input.Records) > 0 {
		players := make([]player.Profile, 0, len(input.Records))
		for _, raw := range input.Records {
			profile := player.Normalize(raw)
			profile.Phase = player.PhaseForAge(profile.Age)
			players = append(players, profile)
		}
		return roster.Snapshot{TeamName: teamName, Players: players}, nil
	}

	if len(input.PlayerIDs) == 0 {
		return roster.Snapshot{}, fmt.Errorf("%w: player ids or inline records are required", ErrInvalidInput)
	}

	playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
	if err != nil {
		return roster.Snapshot{}, err
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return roster.Snapshot{}, fmt.Errorf("get players by ids: %w", err)
	}
	if len(players) != len(playerIDs) {
		return roster.Snapshot{}, fmt.Errorf("%w: %d of %d players not found", ErrNotFound, len(playerIDs)-len(players), len(playerIDs))
	}

	return roster.Snapshot{TeamName: teamName, Players: players}, nil
}

// mergeNeeds combines both axes into one list ordered by gap descending,
// keeping each axis's canonical order on equal gaps.
func mergeNeeds(age, phase []roster.Need) []roster.Need {
	out := make([]roster.Need, 0, len(age)+len(phase))
	out = append(out, age...)
	out = append(out, phase...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Gap > out[j].Gap })

	return out
}

func cleanPlayerIDs(playerIDs []string) ([]string, error) {
	cleaned := make([]string, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}

	return cleaned, nil
}
