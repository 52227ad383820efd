package scouting

import (
	"math"

	"github.com/scoutlab/squadscope/internal/domain/player"
)

// CurrentMetrics are a player's per-game and per-season career rates.
type CurrentMetrics struct {
	GamesPerSeason float64
	GoalsPerGame   float64
	AssistsPerGame float64
	MinutesPerGame float64
	CardsPerGame   float64
}

// Trajectory describes where a player sits in the phase life cycle and how
// far the next transition is.
type Trajectory struct {
	CurrentPhase         player.Phase
	NextPhase            string
	YearsToNextPhase     int
	DevelopmentPotential float64
	ExpectedPeakAge      int
}

// Projection is the full forward-looking report for one player.
type Projection struct {
	Current        CurrentMetrics
	NextSeason     CurrentMetrics
	Trajectory     Trajectory
	PeakAge        int
	YearsToPeak    int
	PeakMetrics    CurrentMetrics
	ValueProjection ValueProjection
}

// ValueProjection models market value over the next five years: geometric
// growth toward the peak value, then a 15% annual decline past the peak age.
type ValueProjection struct {
	CurrentValue     float64
	PeakValue        float64
	YearsToPeakValue int
	AnnualGrowthRate float64
	ByAge            map[int]float64
}

// Phase multipliers for next-season performance: young players have
// headroom, twilight players decline.
var nextSeasonMultiplier = map[player.Phase]float64{
	player.PhaseBreakthrough: 1.30,
	player.PhaseDevelopment:  1.15,
	player.PhasePeak:         1.05,
	player.PhaseTwilight:     0.90,
}

const (
	basePeakAge       = 27
	postPeakDecayRate = 0.85
	projectionYears   = 5
)

// Project builds the performance and value projection for a profile using
// the deterministic age-phase rules only; it needs no model call.
func Project(p player.Profile) Projection {
	current := metricsOf(p)
	phase := player.PhaseForAge(p.Age)
	peakAge := predictPeakAge(p, current)
	yearsToPeak := maxInt(0, peakAge-p.Age)

	multiplier := nextSeasonMultiplier[phase]
	improvement := 1 + float64(yearsToPeak)*0.10

	return Projection{
		Current:    current,
		NextSeason: scaleMetrics(current, multiplier),
		Trajectory: Trajectory{
			CurrentPhase:         phase,
			NextPhase:            nextPhase(phase),
			YearsToNextPhase:     yearsToNextPhase(p.Age, phase),
			DevelopmentPotential: developmentPotential(p, current),
			ExpectedPeakAge:      peakAge,
		},
		PeakAge:         peakAge,
		YearsToPeak:     yearsToPeak,
		PeakMetrics:     scaleMetrics(current, improvement),
		ValueProjection: projectValue(p, peakAge),
	}
}

func metricsOf(p player.Profile) CurrentMetrics {
	games := math.Max(1, float64(p.Appearances))
	seasons := math.Max(1, float64(p.Age-17))

	return CurrentMetrics{
		GamesPerSeason: float64(p.Appearances) / seasons,
		GoalsPerGame:   float64(p.Goals) / games,
		AssistsPerGame: float64(p.Assists) / games,
		MinutesPerGame: float64(p.MinutesPlayed) / games,
		CardsPerGame:   float64(p.YellowCards+p.RedCards) / games,
	}
}

func scaleMetrics(m CurrentMetrics, factor float64) CurrentMetrics {
	return CurrentMetrics{
		GamesPerSeason: m.GamesPerSeason * factor,
		GoalsPerGame:   m.GoalsPerGame * factor,
		AssistsPerGame: m.AssistsPerGame * factor,
		MinutesPerGame: m.MinutesPerGame * factor,
		CardsPerGame:   m.CardsPerGame * factor,
	}
}

// predictPeakAge starts from the default peak age and shifts a year earlier
// for early bloomers: under 23 with more than half a goal involvement per
// game.
func predictPeakAge(p player.Profile, current CurrentMetrics) int {
	peakAge := basePeakAge
	if p.Age < 23 && current.GoalsPerGame+current.AssistsPerGame > 0.5 {
		peakAge--
	}

	return peakAge
}

func nextPhase(phase player.Phase) string {
	switch phase {
	case player.PhaseBreakthrough:
		return string(player.PhaseDevelopment)
	case player.PhaseDevelopment:
		return string(player.PhasePeak)
	case player.PhasePeak:
		return string(player.PhaseTwilight)
	default:
		return "retirement"
	}
}

func yearsToNextPhase(age int, phase player.Phase) int {
	switch phase {
	case player.PhaseBreakthrough:
		return maxInt(0, 21-age)
	case player.PhaseDevelopment:
		return maxInt(0, 25-age)
	case player.PhasePeak:
		return maxInt(0, 30-age)
	default:
		return maxInt(0, 35-age)
	}
}

// developmentPotential weighs remaining age headroom 70% and current output
// 30%, clamped to [0,1].
func developmentPotential(p player.Profile, current CurrentMetrics) float64 {
	ageFactor := math.Max(0, 1-float64(p.Age-17)/15)
	performance := math.Min(1, (current.GoalsPerGame+current.AssistsPerGame)/1.5)

	potential := ageFactor*0.7 + performance*0.3

	return math.Min(1, math.Max(0, potential))
}

func projectValue(p player.Profile, peakAge int) ValueProjection {
	yearsToPeak := maxInt(0, peakAge-p.Age)

	growthRate := 1.0
	if yearsToPeak > 0 && p.CurrentValue > 0 {
		growthRate = math.Pow(p.PeakValue/p.CurrentValue, 1/float64(yearsToPeak))
	}

	byAge := make(map[int]float64, projectionYears)
	for year := 0; year < projectionYears; year++ {
		projectedAge := p.Age + year
		if projectedAge < peakAge {
			byAge[projectedAge] = p.CurrentValue * math.Pow(growthRate, float64(year))
			continue
		}
		yearsPastPeak := projectedAge - peakAge
		byAge[projectedAge] = p.PeakValue * math.Pow(postPeakDecayRate, float64(yearsPastPeak))
	}

	return ValueProjection{
		CurrentValue:     p.CurrentValue,
		PeakValue:        p.PeakValue,
		YearsToPeakValue: yearsToPeak,
		AnnualGrowthRate: growthRate - 1,
		ByAge:            byAge,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
