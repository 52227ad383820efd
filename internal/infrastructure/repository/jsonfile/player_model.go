package jsonfile

import "github.com/scoutlab/squadscope/internal/domain/player"

type playerRecord struct {
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
	CurrentValue  float64 `json:"currentValue"`
	PeakValue     float64 `json:"peakValue"`
	SquadSize     int     `json:"squadSize"`
	Phase         string  `json:"phase"`
}

func toPlayerRecord(p player.Profile) playerRecord {
	return playerRecord{
		ID:            p.ID,
		Name:          p.Name,
		Age:           p.Age,
		Position:      p.Position,
		MarketValue:   p.MarketValue,
		Appearances:   p.Appearances,
		Goals:         p.Goals,
		Assists:       p.Assists,
		MinutesPlayed: p.MinutesPlayed,
		YellowCards:   p.YellowCards,
		RedCards:      p.RedCards,
		CurrentValue:  p.CurrentValue,
		PeakValue:     p.PeakValue,
		SquadSize:     p.SquadSize,
		Phase:         string(p.Phase),
	}
}

func (r playerRecord) toDomain() player.Profile {
	return player.Profile{
		ID:            r.ID,
		Name:          r.Name,
		Age:           r.Age,
		Position:      r.Position,
		MarketValue:   r.MarketValue,
		Appearances:   r.Appearances,
		Goals:         r.Goals,
		Assists:       r.Assists,
		MinutesPlayed: r.MinutesPlayed,
		YellowCards:   r.YellowCards,
		RedCards:      r.RedCards,
		CurrentValue:  r.CurrentValue,
		PeakValue:     r.PeakValue,
		SquadSize:     r.SquadSize,
		Phase:         player.Phase(r.Phase),
	}
}
