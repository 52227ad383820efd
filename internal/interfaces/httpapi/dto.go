package httpapi

import (
	"context"
	"math"
	"time"

	"github.com/scoutlab/squadscope/internal/domain/player"
	"github.com/scoutlab/squadscope/internal/domain/roster"
	"github.com/scoutlab/squadscope/internal/domain/scouting"
	"github.com/scoutlab/squadscope/internal/usecase"
)

type ingestPlayersRequest struct {
	Players []player.RawRecord `json:"players" validate:"required,min=1"`
}

// squadSelector is the shared squad reference used by analysis and
// recommendation requests: a saved team name, stored player ids, or
// inline raw records.
type squadSelector struct {
	TeamName  string             `json:"teamName" validate:"max=100"`
	PlayerIDs []string           `json:"playerIds" validate:"dive,required"`
	Players   []player.RawRecord `json:"players"`
}

type balanceRequest struct {
	squadSelector
}

type distributionRequest struct {
	squadSelector
	Axis string `json:"axis" validate:"required,oneof=age phase"`
}

type recommendationsRequest struct {
	squadSelector
	TargetBucket string `json:"targetBucket"`
	TopK         int    `json:"topK" validate:"min=0,max=20"`
}

type saveTeamRequest struct {
	TeamName  string   `json:"teamName" validate:"required,max=100"`
	PlayerIDs []string `json:"playerIds" validate:"required,min=1,dive,required"`
}

type ingestResultDTO struct {
	Received int `json:"received"`
	Stored   int `json:"stored"`
	Skipped  int `json:"skipped"`
}

type playerDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Age           int     `json:"age"`
	Position      string  `json:"position"`
	MarketValue   float64 `json:"marketValue"`
	Appearances   int     `json:"appearances"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	MinutesPlayed int     `json:"minutesPlayed"`
	YellowCards   int     `json:"yellowCards"`
	RedCards      int     `json:"redCards"`
	Phase         string  `json:"phase"`
}

type metricsDTO struct {
	TotalPlayers int     `json:"totalPlayers"`
	AverageAge   float64 `json:"averageAge"`
	SizeStatus   string  `json:"sizeStatus"`
	SizeMessage  string  `json:"sizeMessage"`
}

type distributionDTO struct {
	Axis         string             `json:"axis"`
	Current      map[string]float64 `json:"current"`
	Ideal        map[string]float64 `json:"ideal"`
	Gaps         map[string]float64 `json:"gaps"`
	BalanceScore float64            `json:"balanceScore"`
}

type needDTO struct {
	Axis     string  `json:"axis"`
	Bucket   string  `json:"bucket"`
	Gap      float64 `json:"gap"`
	Severity string  `json:"severity"`
}

type balanceReportDTO struct {
	TeamName       string          `json:"teamName"`
	Metrics        metricsDTO      `json:"metrics"`
	AgeAnalysis    distributionDTO `json:"ageAnalysis"`
	PhaseAnalysis  distributionDTO `json:"phaseAnalysis"`
	AgeBalance     float64         `json:"ageBalance"`
	PhaseBalance   float64         `json:"phaseBalance"`
	OverallBalance float64         `json:"overallBalance"`
	Needs          []needDTO       `json:"needs"`
	Advisories     []string        `json:"advisories"`
}

type savedTeamDTO struct {
	TeamName  string   `json:"teamName"`
	PlayerIDs []string `json:"playerIds"`
	SavedAt   string   `json:"savedAtUtc"`
}

type rankedCandidateDTO struct {
	Player     playerDTO `json:"player"`
	Similarity float64   `json:"similarity"`
}

type needRecommendationDTO struct {
	Need       needDTO              `json:"need"`
	OffTarget  bool                 `json:"offTarget"`
	Candidates []rankedCandidateDTO `json:"candidates"`
}

type recommendationReportDTO struct {
	ReportID    string                  `json:"reportId"`
	TeamName    string                  `json:"teamName"`
	GeneratedAt string                  `json:"generatedAtUtc"`
	Needs       []needRecommendationDTO `json:"needs"`
}

type metricRatesDTO struct {
	GamesPerSeason float64 `json:"gamesPerSeason"`
	GoalsPerGame   float64 `json:"goalsPerGame"`
	AssistsPerGame float64 `json:"assistsPerGame"`
	MinutesPerGame float64 `json:"minutesPerGame"`
	CardsPerGame   float64 `json:"cardsPerGame"`
}

type trajectoryDTO struct {
	CurrentPhase         string  `json:"currentPhase"`
	NextPhase            string  `json:"nextPhase"`
	YearsToNextPhase     int     `json:"yearsToNextPhase"`
	DevelopmentPotential float64 `json:"developmentPotential"`
	ExpectedPeakAge      int     `json:"expectedPeakAge"`
}

type valueProjectionDTO struct {
	CurrentValue     float64         `json:"currentValue"`
	PeakValue        float64         `json:"peakValue"`
	YearsToPeakValue int             `json:"yearsToPeakValue"`
	AnnualGrowthRate float64         `json:"annualGrowthRate"`
	ByAge            map[int]float64 `json:"byAge"`
}

type projectionDTO struct {
	Player          playerDTO          `json:"player"`
	Current         metricRatesDTO     `json:"current"`
	NextSeason      metricRatesDTO     `json:"nextSeason"`
	Trajectory      trajectoryDTO      `json:"trajectory"`
	PeakAge         int                `json:"peakAge"`
	YearsToPeak     int                `json:"yearsToPeak"`
	PeakMetrics     metricRatesDTO     `json:"peakMetrics"`
	ValueProjection valueProjectionDTO `json:"valueProjection"`
}

// sanitizeFloat keeps non-finite values out of JSON payloads.
func sanitizeFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func sanitizeFloatMap(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = sanitizeFloat(v)
	}
	return out
}

func playerToDTO(v player.Profile) playerDTO {
	return playerDTO{
		ID:            v.ID,
		Name:          v.Name,
		Age:           v.Age,
		Position:      v.Position,
		MarketValue:   sanitizeFloat(v.MarketValue),
		Appearances:   v.Appearances,
		Goals:         v.Goals,
		Assists:       v.Assists,
		MinutesPlayed: v.MinutesPlayed,
		YellowCards:   v.YellowCards,
		RedCards:      v.RedCards,
		Phase:         string(v.Phase),
	}
}

func distributionToDTO(v roster.Distribution) distributionDTO {
	return distributionDTO{
		Axis:         string(v.Axis),
		Current:      sanitizeFloatMap(v.Current),
		Ideal:        sanitizeFloatMap(v.Ideal),
		Gaps:         sanitizeFloatMap(v.Gaps),
		BalanceScore: sanitizeFloat(v.BalanceScore),
	}
}

func needToDTO(v roster.Need) needDTO {
	return needDTO{
		Axis:     string(v.Axis),
		Bucket:   v.Bucket,
		Gap:      sanitizeFloat(v.Gap),
		Severity: string(v.Severity),
	}
}

func balanceReportToDTO(ctx context.Context, v roster.BalanceReport) balanceReportDTO {
	_, span := startSpan(ctx, "httpapi.balanceReportToDTO")
	defer span.End()

	needs := make([]needDTO, 0, len(v.Needs))
	for _, need := range v.Needs {
		needs = append(needs, needToDTO(need))
	}

	return balanceReportDTO{
		TeamName: v.TeamName,
		Metrics: metricsDTO{
			TotalPlayers: v.Metrics.TotalPlayers,
			AverageAge:   sanitizeFloat(v.Metrics.AverageAge),
			SizeStatus:   string(v.Metrics.SizeStatus),
			SizeMessage:  v.Metrics.SizeMessage,
		},
		AgeAnalysis:    distributionToDTO(v.AgeAnalysis),
		PhaseAnalysis:  distributionToDTO(v.PhaseAnalysis),
		AgeBalance:     sanitizeFloat(v.AgeBalance),
		PhaseBalance:   sanitizeFloat(v.PhaseBalance),
		OverallBalance: sanitizeFloat(v.OverallBalance),
		Needs:          needs,
		Advisories:     append([]string(nil), v.Advisories...),
	}
}

func savedTeamToDTO(v roster.SavedTeam) savedTeamDTO {
	return savedTeamDTO{
		TeamName:  v.TeamName,
		PlayerIDs: append([]string(nil), v.PlayerIDs...),
		SavedAt:   v.SavedAt.UTC().Format(time.RFC3339),
	}
}

func recommendationReportToDTO(ctx context.Context, v usecase.RecommendationReport) recommendationReportDTO {
	_, span := startSpan(ctx, "httpapi.recommendationReportToDTO")
	defer span.End()

	needs := make([]needRecommendationDTO, 0, len(v.Needs))
	for _, rec := range v.Needs {
		candidates := make([]rankedCandidateDTO, 0, len(rec.Candidates))
		for _, c := range rec.Candidates {
			candidates = append(candidates, rankedCandidateDTO{
				Player:     playerToDTO(c.Profile),
				Similarity: sanitizeFloat(c.Similarity),
			})
		}
		needs = append(needs, needRecommendationDTO{
			Need:       needToDTO(rec.Need),
			OffTarget:  rec.OffTarget,
			Candidates: candidates,
		})
	}

	return recommendationReportDTO{
		ReportID:    v.ReportID,
		TeamName:    v.TeamName,
		GeneratedAt: v.GeneratedAt.UTC().Format(time.RFC3339),
		Needs:       needs,
	}
}

func metricRatesToDTO(v scouting.CurrentMetrics) metricRatesDTO {
	return metricRatesDTO{
		GamesPerSeason: sanitizeFloat(v.GamesPerSeason),
		GoalsPerGame:   sanitizeFloat(v.GoalsPerGame),
		AssistsPerGame: sanitizeFloat(v.AssistsPerGame),
		MinutesPerGame: sanitizeFloat(v.MinutesPerGame),
		CardsPerGame:   sanitizeFloat(v.CardsPerGame),
	}
}

func projectionToDTO(ctx context.Context, v usecase.PlayerProjection) projectionDTO {
	_, span := startSpan(ctx, "httpapi.projectionToDTO")
	defer span.End()

	byAge := make(map[int]float64, len(v.Projection.ValueProjection.ByAge))
	for age, value := range v.Projection.ValueProjection.ByAge {
		byAge[age] = sanitizeFloat(value)
	}

	return projectionDTO{
		Player:      playerToDTO(v.Player),
		Current:     metricRatesToDTO(v.Projection.Current),
		NextSeason:  metricRatesToDTO(v.Projection.NextSeason),
		PeakAge:     v.Projection.PeakAge,
		YearsToPeak: v.Projection.YearsToPeak,
		PeakMetrics: metricRatesToDTO(v.Projection.PeakMetrics),
		Trajectory: trajectoryDTO{
			CurrentPhase:         string(v.Projection.Trajectory.CurrentPhase),
			NextPhase:            v.Projection.Trajectory.NextPhase,
			YearsToNextPhase:     v.Projection.Trajectory.YearsToNextPhase,
			DevelopmentPotential: sanitizeFloat(v.Projection.Trajectory.DevelopmentPotential),
			ExpectedPeakAge:      v.Projection.Trajectory.ExpectedPeakAge,
		},
		ValueProjection: valueProjectionDTO{
			CurrentValue:     sanitizeFloat(v.Projection.ValueProjection.CurrentValue),
			PeakValue:        sanitizeFloat(v.Projection.ValueProjection.PeakValue),
			YearsToPeakValue: v.Projection.ValueProjection.YearsToPeakValue,
			AnnualGrowthRate: sanitizeFloat(v.Projection.ValueProjection.AnnualGrowthRate),
			ByAge:            byAge,
		},
	}
}
