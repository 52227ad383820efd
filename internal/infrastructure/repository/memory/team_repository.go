package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/scoutlab/squadscope/internal/domain/roster"
)

type SavedTeamRepository struct {
	mu    sync.RWMutex
	teams map[string]roster.SavedTeam
}

func NewSavedTeamRepository() *SavedTeamRepository {
	return &SavedTeamRepository{teams: make(map[string]roster.SavedTeam)}
}

func (r *SavedTeamRepository) Upsert(_ context.Context, team roster.SavedTeam) error {
	if strings.TrimSpace(team.TeamName) == "" {
		return nil
	}

	r.mu.Lock()
	r.teams[team.TeamName] = cloneTeam(team)
	r.mu.Unlock()

	return nil
}

func (r *SavedTeamRepository) GetByName(_ context.Context, teamName string) (roster.SavedTeam, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamName]
	if !ok {
		return roster.SavedTeam{}, false, nil
	}

	return cloneTeam(item), true, nil
}

func (r *SavedTeamRepository) List(_ context.Context) ([]roster.SavedTeam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.SavedTeam, 0, len(r.teams))
	for _, item := range r.teams {
		out = append(out, cloneTeam(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamName < out[j].TeamName })

	return out, nil
}

func (r *SavedTeamRepository) Delete(_ context.Context, teamName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[teamName]; !ok {
		return false, nil
	}
	delete(r.teams, teamName)

	return true, nil
}

func cloneTeam(team roster.SavedTeam) roster.SavedTeam {
	out := team
	out.PlayerIDs = append([]string(nil), team.PlayerIDs...)

	return out
}
