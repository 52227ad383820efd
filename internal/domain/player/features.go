package player

// ModelFeatures holds the twelve engineered ratios consumed by the external
// career-phase model. All ratios use safe division: a zero denominator
// yields 0 instead of NaN or Inf.
type ModelFeatures struct {
	MinutesPerGame    float64
	GoalsPerGame      float64
	AssistsPerGame    float64
	GoalToAssistRatio float64
	MinutesPerGoal    float64
	CardRate          float64
	GoalInvolvement   float64
	MinutesShare      float64
	ValueGrowth       float64
	ValueStability    float64
	ValueToSquadRatio float64
	PlayingTimeShare  float64
}

// ModelFeatures computes the engineered ratio vector for this profile.
func (p Profile) ModelFeatures() ModelFeatures {
	games := float64(p.Appearances)
	minutes := float64(p.MinutesPlayed)
	goals := float64(p.Goals)
	assists := float64(p.Assists)
	squadSize := float64(p.SquadSize)

	f := ModelFeatures{
		MinutesPerGame: safeDivide(minutes, games),
		GoalsPerGame:   safeDivide(goals, games),
		AssistsPerGame: safeDivide(assists, games),
	}
	f.GoalToAssistRatio = safeDivide(f.GoalsPerGame, f.AssistsPerGame)
	f.MinutesPerGoal = safeDivide(f.MinutesPerGame, f.GoalsPerGame)

	// Red cards weigh three times a yellow.
	f.CardRate = safeDivide(float64(p.YellowCards)+3*float64(p.RedCards), games)
	f.GoalInvolvement = f.GoalsPerGame + f.AssistsPerGame
	f.MinutesShare = safeDivide(minutes, 90*games)

	f.ValueGrowth = safeDivide(p.CurrentValue-p.PeakValue, p.PeakValue+1)
	f.ValueStability = safeDivide(p.CurrentValue, p.PeakValue+1)
	f.ValueToSquadRatio = safeDivide(p.CurrentValue, squadSize*(p.PeakValue+1))
	f.PlayingTimeShare = safeDivide(minutes, squadSize*games*90)

	return f
}

// Vector returns the ratios in the fixed order the phase model was trained
// against.
func (f ModelFeatures) Vector() []float64 {
	return []float64{
		f.MinutesPerGame,
		f.GoalsPerGame,
		f.AssistsPerGame,
		f.GoalToAssistRatio,
		f.MinutesPerGoal,
		f.CardRate,
		f.GoalInvolvement,
		f.MinutesShare,
		f.ValueGrowth,
		f.ValueStability,
		f.ValueToSquadRatio,
		f.PlayingTimeShare,
	}
}

// SimilarityVector returns the six core features used for candidate
// ranking: age, market value, appearances, goals, assists, minutes played.
func (p Profile) SimilarityVector() []float64 {
	return []float64{
		float64(p.Age),
		p.MarketValue,
		float64(p.Appearances),
		float64(p.Goals),
		float64(p.Assists),
		float64(p.MinutesPlayed),
	}
}

func safeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}

	return a / b
}
