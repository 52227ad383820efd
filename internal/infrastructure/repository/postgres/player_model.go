package postgres

import (
	"time"

	"github.com/scoutlab/squadscope/internal/domain/player"
)

type playerTableModel struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Age           int       `db:"age"`
	Position      string    `db:"position"`
	MarketValue   float64   `db:"market_value"`
	Appearances   int       `db:"appearances"`
	Goals         int       `db:"goals"`
	Assists       int       `db:"assists"`
	MinutesPlayed int       `db:"minutes_played"`
	YellowCards   int       `db:"yellow_cards"`
	RedCards      int       `db:"red_cards"`
	CurrentValue  float64   `db:"current_value"`
	PeakValue     float64   `db:"peak_value"`
	SquadSize     int       `db:"squad_size"`
	Phase         string    `db:"phase"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func toPlayerTableModel(p player.Profile, now time.Time) playerTableModel {
	return playerTableModel{
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
		UpdatedAt:     now,
	}
}

func (m playerTableModel) toDomain() player.Profile {
	return player.Profile{
		ID:            m.ID,
		Name:          m.Name,
		Age:           m.Age,
		Position:      m.Position,
		MarketValue:   m.MarketValue,
		Appearances:   m.Appearances,
		Goals:         m.Goals,
		Assists:       m.Assists,
		MinutesPlayed: m.MinutesPlayed,
		YellowCards:   m.YellowCards,
		RedCards:      m.RedCards,
		CurrentValue:  m.CurrentValue,
		PeakValue:     m.PeakValue,
		SquadSize:     m.SquadSize,
		Phase:         player.Phase(m.Phase),
	}
}
