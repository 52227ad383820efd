package memory

import "github.com/scoutlab/squadscope/internal/domain/player"

// SeedProfiles is a small development dataset so the API is usable before
// any ingestion has run.
func SeedProfiles() []player.Profile {
	profiles := []player.Profile{
		{ID: "seed-1", Name: "Arjen Velde", Age: 19, Position: "Right Winger", MarketValue: 12_000_000, Appearances: 38, Goals: 11, Assists: 7, MinutesPlayed: 2650, YellowCards: 2, CurrentValue: 12_000_000, PeakValue: 12_000_000},
		{ID: "seed-2", Name: "Tomas Brandt", Age: 23, Position: "Central Midfield", MarketValue: 28_000_000, Appearances: 130, Goals: 22, Assists: 31, MinutesPlayed: 10400, YellowCards: 14, RedCards: 1, CurrentValue: 28_000_000, PeakValue: 28_000_000},
		{ID: "seed-3", Name: "Luca Ferri", Age: 27, Position: "Centre-Forward", MarketValue: 55_000_000, Appearances: 240, Goals: 118, Assists: 34, MinutesPlayed: 19300, YellowCards: 18, RedCards: 2, CurrentValue: 55_000_000, PeakValue: 60_000_000},
		{ID: "seed-4", Name: "Mikel Soto", Age: 29, Position: "Centre-Back", MarketValue: 30_000_000, Appearances: 290, Goals: 12, Assists: 9, MinutesPlayed: 25600, YellowCards: 41, RedCards: 3, CurrentValue: 30_000_000, PeakValue: 38_000_000},
		{ID: "seed-5", Name: "Davor Kovac", Age: 33, Position: "Goalkeeper", MarketValue: 4_000_000, Appearances: 410, MinutesPlayed: 36800, YellowCards: 6, CurrentValue: 4_000_000, PeakValue: 18_000_000},
	}

	for i := range profiles {
		profiles[i].Phase = player.PhaseForAge(profiles[i].Age)
	}

	return profiles
}
