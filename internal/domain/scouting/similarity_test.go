package scouting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlab/squadscope/internal/domain/player"
)

func profile(id string, age int, value float64, apps, goals, assists, minutes int) player.Profile {
	return player.Profile{
		ID:            id,
		Name:          id,
		Age:           age,
		MarketValue:   value,
		Appearances:   apps,
		Goals:         goals,
		Assists:       assists,
		MinutesPlayed: minutes,
	}
}

func TestRank_ScoresStayInUnitInterval(t *testing.T) {
	squad := []player.Profile{
		profile("s1", 24, 20_000_000, 120, 30, 12, 9000),
		profile("s2", 28, 35_000_000, 220, 70, 25, 17000),
		profile("s3", 21, 8_000_000, 40, 5, 3, 2500),
	}
	pool := []player.Profile{
		profile("c1", 22, 12_000_000, 60, 10, 6, 4300),
		profile("c2", 23, 1_000_000, 10, 0, 0, 400),
		profile("c3", 25, 90_000_000, 300, 150, 60, 26000),
	}

	result := Rank(squad, pool, "21_25", 10)

	require.False(t, result.OffTarget)
	require.NotEmpty(t, result.Candidates)
	for _, c := range result.Candidates {
		assert.GreaterOrEqual(t, c.Similarity, 0.0)
		assert.LessOrEqual(t, c.Similarity, 1.0)
	}
}

func TestRank_MeanProfileCandidateScoresHighest(t *testing.T) {
	squad := []player.Profile{
		profile("s1", 22, 10_000_000, 100, 20, 10, 8000),
		profile("s2", 26, 30_000_000, 200, 40, 20, 16000),
	}
	// Feature-for-feature mean of the squad.
	mean := profile("mean", 24, 20_000_000, 150, 30, 15, 12000)
	outlier := profile("far", 24, 500_000, 5, 0, 0, 200)

	result := Rank(squad, []player.Profile{outlier, mean}, "21_25", 2)

	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "mean", result.Candidates[0].Profile.ID)
	assert.InDelta(t, 1.0, result.Candidates[0].Similarity, 1e-9)
	assert.Greater(t, result.Candidates[0].Similarity, result.Candidates[1].Similarity)
}

func TestRank_EmptyBucketFallsBackToFullPool(t *testing.T) {
	squad := []player.Profile{
		profile("s1", 24, 20_000_000, 120, 30, 12, 9000),
	}
	pool := []player.Profile{
		profile("c1", 33, 4_000_000, 400, 80, 40, 30000),
		profile("c2", 35, 2_000_000, 450, 90, 35, 33000),
	}

	result := Rank(squad, pool, "u21", 3)

	assert.True(t, result.OffTarget)
	assert.Len(t, result.Candidates, 2)
}

func TestRank_EmptyPool(t *testing.T) {
	squad := []player.Profile{profile("s1", 24, 1_000_000, 10, 1, 1, 900)}

	result := Rank(squad, nil, "peak", 3)

	assert.Empty(t, result.Candidates)
	assert.False(t, result.OffTarget)
}

func TestRank_SingleRowsDoNotDivideByZero(t *testing.T) {
	// One squad member and one candidate with identical ages makes the age
	// column zero-variance; the standardized value must be 0, not NaN.
	squad := []player.Profile{profile("s1", 27, 5_000_000, 100, 10, 5, 8000)}
	pool := []player.Profile{profile("c1", 27, 5_000_000, 100, 10, 5, 8000)}

	result := Rank(squad, pool, "26_29", 1)

	require.Len(t, result.Candidates, 1)
	sim := result.Candidates[0].Similarity
	assert.False(t, sim != sim, "similarity must not be NaN")
	assert.GreaterOrEqual(t, sim, 0.0)
	assert.LessOrEqual(t, sim, 1.0)
}

func TestRank_TiesBreakByIDAscending(t *testing.T) {
	squad := []player.Profile{
		profile("s1", 22, 10_000_000, 100, 20, 10, 8000),
		profile("s2", 24, 14_000_000, 140, 24, 12, 9600),
	}
	twinA := profile("a-twin", 23, 12_000_000, 120, 22, 11, 8800)
	twinB := profile("b-twin", 23, 12_000_000, 120, 22, 11, 8800)

	result := Rank(squad, []player.Profile{twinB, twinA}, "21_25", 2)

	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "a-twin", result.Candidates[0].Profile.ID)
	assert.Equal(t, "b-twin", result.Candidates[1].Profile.ID)
}

func TestRank_TruncatesToTopK(t *testing.T) {
	squad := []player.Profile{profile("s1", 23, 10_000_000, 100, 20, 10, 8000)}
	pool := []player.Profile{
		profile("c1", 22, 9_000_000, 90, 18, 9, 7000),
		profile("c2", 23, 11_000_000, 110, 21, 11, 8500),
		profile("c3", 24, 10_000_000, 95, 19, 10, 7800),
		profile("c4", 25, 12_000_000, 130, 25, 12, 9900),
	}

	result := Rank(squad, pool, "21_25", 2)

	assert.Len(t, result.Candidates, 2)
}
