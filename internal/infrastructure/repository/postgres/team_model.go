package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/scoutlab/squadscope/internal/domain/roster"
)

type savedTeamTableModel struct {
	TeamName  string         `db:"team_name"`
	PlayerIDs pq.StringArray `db:"player_ids"`
	SavedAt   time.Time      `db:"saved_at"`
}

func toSavedTeamTableModel(t roster.SavedTeam) savedTeamTableModel {
	return savedTeamTableModel{
		TeamName:  t.TeamName,
		PlayerIDs: pq.StringArray(t.PlayerIDs),
		SavedAt:   t.SavedAt,
	}
}

func (m savedTeamTableModel) toDomain() roster.SavedTeam {
	return roster.SavedTeam{
		TeamName:  m.TeamName,
		PlayerIDs: append([]string(nil), m.PlayerIDs...),
		SavedAt:   m.SavedAt,
	}
}
