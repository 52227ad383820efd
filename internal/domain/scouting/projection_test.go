package scouting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlab/squadscope/internal/domain/player"
)

func TestProject_YoungPlayerGrowthTrajectory(t *testing.T) {
	p := player.Profile{
		ID:            "p-1",
		Age:           19,
		Appearances:   40,
		Goals:         15,
		Assists:       10,
		MinutesPlayed: 3200,
		CurrentValue:  10_000_000,
		PeakValue:     40_000_000,
	}

	proj := Project(p)

	assert.Equal(t, player.PhaseBreakthrough, proj.Trajectory.CurrentPhase)
	assert.Equal(t, string(player.PhaseDevelopment), proj.Trajectory.NextPhase)
	assert.Equal(t, 2, proj.Trajectory.YearsToNextPhase)

	// 19 years old with 0.625 goal involvements per game shifts the peak a
	// year earlier.
	assert.Equal(t, 26, proj.PeakAge)
	assert.Equal(t, 7, proj.YearsToPeak)

	// Breakthrough multiplier lifts next-season rates by 30%.
	assert.InDelta(t, proj.Current.GoalsPerGame*1.30, proj.NextSeason.GoalsPerGame, 1e-9)
	assert.Greater(t, proj.PeakMetrics.GoalsPerGame, proj.Current.GoalsPerGame)
}

func TestProject_TwilightPlayerDeclines(t *testing.T) {
	p := player.Profile{
		ID:            "p-2",
		Age:           33,
		Appearances:   400,
		Goals:         120,
		Assists:       60,
		MinutesPlayed: 33000,
		CurrentValue:  5_000_000,
		PeakValue:     60_000_000,
	}

	proj := Project(p)

	assert.Equal(t, player.PhaseTwilight, proj.Trajectory.CurrentPhase)
	assert.Equal(t, "retirement", proj.Trajectory.NextPhase)
	assert.Equal(t, 0, proj.YearsToPeak)
	assert.Less(t, proj.NextSeason.GoalsPerGame, proj.Current.GoalsPerGame)

	// Past the peak age every projected year decays by 15% from the peak
	// value.
	vp := proj.ValueProjection
	require.Len(t, vp.ByAge, 5)
	for age := 33; age <= 37; age++ {
		yearsPast := float64(age - proj.PeakAge)
		assert.InDelta(t, 60_000_000*math.Pow(0.85, yearsPast), vp.ByAge[age], 1e-6)
	}
}

func TestProject_ValueGrowsGeometricallyTowardPeak(t *testing.T) {
	p := player.Profile{
		ID:           "p-3",
		Age:          23,
		Appearances:  100,
		Goals:        20,
		Assists:      8,
		CurrentValue: 10_000_000,
		PeakValue:    40_000_000,
	}

	proj := Project(p)
	vp := proj.ValueProjection

	// Four years to the default peak age of 27: rate = (40/10)^(1/4).
	wantRate := math.Pow(4, 0.25) - 1
	assert.InDelta(t, wantRate, vp.AnnualGrowthRate, 1e-9)
	assert.Equal(t, 4, vp.YearsToPeakValue)

	assert.InDelta(t, 10_000_000, vp.ByAge[23], 1e-6)
	for age := 24; age < 27; age++ {
		assert.Greater(t, vp.ByAge[age], vp.ByAge[age-1])
	}
	assert.InDelta(t, 40_000_000, vp.ByAge[27], 1e-3)
}

func TestProject_ZeroAppearancesDoNotDivideByZero(t *testing.T) {
	proj := Project(player.Profile{ID: "p-4", Age: 18})

	assert.Zero(t, proj.Current.GoalsPerGame)
	assert.Zero(t, proj.Current.MinutesPerGame)
	assert.False(t, math.IsNaN(proj.Trajectory.DevelopmentPotential))
	assert.False(t, math.IsInf(proj.ValueProjection.AnnualGrowthRate, 0))
}

func TestDevelopmentPotential_Bounds(t *testing.T) {
	prolificTeen := player.Profile{Age: 18, Appearances: 30, Goals: 30, Assists: 20}
	veteran := player.Profile{Age: 38, Appearances: 500, Goals: 10, Assists: 5}

	high := Project(prolificTeen).Trajectory.DevelopmentPotential
	low := Project(veteran).Trajectory.DevelopmentPotential

	assert.Greater(t, high, low)
	assert.LessOrEqual(t, high, 1.0)
	assert.GreaterOrEqual(t, low, 0.0)
}
