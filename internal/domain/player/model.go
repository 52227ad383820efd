package player

import "fmt"

// Profile is the canonical numeric view of a player, produced by Normalize.
// All fields are defaulted rather than validated: unparseable source data
// becomes 0, never an error.
type Profile struct {
	ID            string
	Name          string
	Age           int
	Position      string
	MarketValue   float64
	Appearances   int
	Goals         int
	Assists       int
	MinutesPlayed int
	YellowCards   int
	RedCards      int
	CurrentValue  float64
	PeakValue     float64
	SquadSize     int
	Phase         Phase
}

func (p Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Age < 0 {
		return fmt.Errorf("player age cannot be negative: %d", p.Age)
	}

	return nil
}

// AgeKnown reports whether the profile carries a usable age. Zero is the
// unknown-age sentinel assigned by the normalizer.
func (p Profile) AgeKnown() bool {
	return p.Age > 0
}
