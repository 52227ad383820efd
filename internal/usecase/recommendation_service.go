package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/scoutlab/squadscope/internal/domain/player"
	"github.com/scoutlab/squadscope/internal/domain/roster"
	"github.com/scoutlab/squadscope/internal/domain/scouting"
	idgen "github.com/scoutlab/squadscope/internal/platform/id"
)

const (
	defaultTopK       = 3
	maxTopK           = 20
	maxRankingWorkers = 4
)

type RecommendationInput struct {
	TeamName     string
	PlayerIDs    []string
	Records      []player.RawRecord
	TargetBucket string
	TopK         int
}

// NeedRecommendation pairs one squad need with its ranked candidates.
type NeedRecommendation struct {
	Need       roster.Need
	OffTarget  bool
	Candidates []scouting.RankedCandidate
}

type RecommendationReport struct {
	ReportID    string
	TeamName    string
	GeneratedAt time.Time
	Needs       []NeedRecommendation
}

type RecommendationService struct {
	playerRepo player.Repository
	teamRepo   roster.SavedTeamRepository
	balance    *BalanceService
	targets    roster.Targets
	topK       int
	idGen      idgen.Generator
	logger     *slog.Logger
	now        func() time.Time
}

func NewRecommendationService(
	playerRepo player.Repository,
	teamRepo roster.SavedTeamRepository,
	balance *BalanceService,
	targets roster.Targets,
	topK int,
	idGen idgen.Generator,
	logger *slog.Logger,
) *RecommendationService {
	if logger == nil {
		logger = slog.Default()
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	return &RecommendationService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		balance:    balance,
		targets:    targets,
		topK:       topK,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// Recommend identifies the squad's composition needs and ranks transfer
// candidates for each one. A target bucket narrows the report to that
// single bucket regardless of measured needs. Rankings for independent
// needs run on a worker pool.
func (s *RecommendationService) Recommend(ctx context.Context, input RecommendationInput) (RecommendationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "RecommendationService.Recommend")
	defer span.End()

	snapshot, err := s.resolveSquad(ctx, input)
	if err != nil {
		return RecommendationReport{}, err
	}

	topK := input.TopK
	if topK <= 0 {
		topK = s.topK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	needs, err := s.needsFor(ctx, snapshot, strings.TrimSpace(input.TargetBucket))
	if err != nil {
		return RecommendationReport{}, err
	}

	pool, err := s.candidatePool(ctx, snapshot)
	if err != nil {
		return RecommendationReport{}, err
	}

	recommendations, err := s.rankNeeds(snapshot, needs, pool, topK)
	if err != nil {
		return RecommendationReport{}, err
	}

	reportID, err := s.idGen.NewID()
	if err != nil {
		return RecommendationReport{}, fmt.Errorf("generate report id: %w", err)
	}

	report := RecommendationReport{
		ReportID:    reportID,
		TeamName:    snapshot.TeamName,
		GeneratedAt: s.now().UTC(),
		Needs:       recommendations,
	}

	s.logger.InfoContext(ctx, "recommendations generated",
		"report_id", report.ReportID,
		"team", report.TeamName,
		"needs", len(report.Needs),
		"pool_size", len(pool),
	)

	return report, nil
}

func (s *RecommendationService) resolveSquad(ctx context.Context, input RecommendationInput) (roster.Snapshot, error) {
	if len(input.PlayerIDs) > 0 || len(input.Records) > 0 {
		return s.balance.Snapshot(ctx, SquadInput{
			TeamName:  input.TeamName,
			PlayerIDs: input.PlayerIDs,
			Records:   input.Records,
		})
	}

	teamName := strings.TrimSpace(input.TeamName)
	if teamName == "" {
		return roster.Snapshot{}, fmt.Errorf("%w: team name, player ids, or inline records are required", ErrInvalidInput)
	}

	team, exists, err := s.teamRepo.GetByName(ctx, teamName)
	if err != nil {
		return roster.Snapshot{}, fmt.Errorf("get saved team: %w", err)
	}
	if !exists {
		return roster.Snapshot{}, fmt.Errorf("%w: team %s", ErrNotFound, teamName)
	}

	return s.balance.Snapshot(ctx, SquadInput{
		TeamName:  team.TeamName,
		PlayerIDs: team.PlayerIDs,
	})
}

func (s *RecommendationService) needsFor(ctx context.Context, snapshot roster.Snapshot, targetBucket string) ([]roster.Need, error) {
	if targetBucket != "" {
		axis := roster.AxisAge
		if _, ok := player.ParsePhase(targetBucket); ok {
			axis = roster.AxisPhase
		}
		dist := roster.Analyze(snapshot, axis, s.targets)
		gap, ok := dist.Gaps[targetBucket]
		if !ok {
			return nil, fmt.Errorf("%w: unknown target bucket %q", ErrInvalidInput, targetBucket)
		}

		severity := roster.SeverityMedium
		if gap > 2*s.targets.NeedThreshold {
			severity = roster.SeverityHigh
		}
		return []roster.Need{{Axis: axis, Bucket: targetBucket, Gap: gap, Severity: severity}}, nil
	}

	ageDist := roster.Analyze(snapshot, roster.AxisAge, s.targets)
	phaseDist := roster.Analyze(snapshot, roster.AxisPhase, s.targets)

	return mergeNeeds(
		roster.IdentifyNeeds(ageDist, s.targets.NeedThreshold),
		roster.IdentifyNeeds(phaseDist, s.targets.NeedThreshold),
	), nil
}

// candidatePool is every stored player not already in the squad.
func (s *RecommendationService) candidatePool(ctx context.Context, snapshot roster.Snapshot) ([]player.Profile, error) {
	all, err := s.playerRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidate players: %w", err)
	}

	inSquad := make(map[string]struct{}, len(snapshot.Players))
	for _, member := range snapshot.Players {
		inSquad[member.ID] = struct{}{}
	}

	pool := make([]player.Profile, 0, len(all))
	for _, candidate := range all {
		if _, ok := inSquad[candidate.ID]; ok {
			continue
		}
		pool = append(pool, candidate)
	}

	return pool, nil
}

func (s *RecommendationService) rankNeeds(snapshot roster.Snapshot, needs []roster.Need, pool []player.Profile, topK int) ([]NeedRecommendation, error) {
	out := make([]NeedRecommendation, len(needs))
	if len(needs) == 0 {
		return out, nil
	}

	workerCount := len(needs)
	if workerCount > maxRankingWorkers {
		workerCount = maxRankingWorkers
	}

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create ranking worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for i, need := range needs {
		i, need := i, need
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			result := scouting.Rank(snapshot.Players, pool, need.Bucket, topK)
			out[i] = NeedRecommendation{
				Need:       need,
				OffTarget:  result.OffTarget,
				Candidates: result.Candidates,
			}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit ranking task: %w", err)
		}
	}
	workers.Wait()

	return out, nil
}
