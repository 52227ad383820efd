package jsonfile

import (
	"time"

	"github.com/scoutlab/squadscope/internal/domain/roster"
)

type teamRecord struct {
	TeamName  string    `json:"teamName"`
	PlayerIDs []string  `json:"playerIds"`
	SavedAt   time.Time `json:"savedAt"`
}

func toTeamRecord(t roster.SavedTeam) teamRecord {
	return teamRecord{
		TeamName:  t.TeamName,
		PlayerIDs: append([]string(nil), t.PlayerIDs...),
		SavedAt:   t.SavedAt,
	}
}

func (r teamRecord) toDomain() roster.SavedTeam {
	return roster.SavedTeam{
		TeamName:  r.TeamName,
		PlayerIDs: append([]string(nil), r.PlayerIDs...),
		SavedAt:   r.SavedAt,
	}
}
