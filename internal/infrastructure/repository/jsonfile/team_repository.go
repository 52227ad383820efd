package jsonfile

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/scoutlab/squadscope/internal/domain/roster"
)

type SavedTeamRepository struct {
	mu    sync.RWMutex
	path  string
	teams map[string]roster.SavedTeam
}

func NewSavedTeamRepository(path string) (*SavedTeamRepository, error) {
	var stored []teamRecord
	if err := load(path, &stored); err != nil {
		return nil, err
	}

	teams := make(map[string]roster.SavedTeam, len(stored))
	for _, item := range stored {
		if strings.TrimSpace(item.TeamName) == "" {
			continue
		}
		teams[item.TeamName] = item.toDomain()
	}

	return &SavedTeamRepository{path: path, teams: teams}, nil
}

func (r *SavedTeamRepository) Upsert(_ context.Context, team roster.SavedTeam) error {
	if strings.TrimSpace(team.TeamName) == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[team.TeamName] = team

	return save(r.path, r.recordsLocked())
}

func (r *SavedTeamRepository) GetByName(_ context.Context, teamName string) (roster.SavedTeam, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamName]

	return item, ok, nil
}

func (r *SavedTeamRepository) List(_ context.Context) ([]roster.SavedTeam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.SavedTeam, 0, len(r.teams))
	for _, item := range r.teams {
		out = append(out, item)
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

	return true, save(r.path, r.recordsLocked())
}

func (r *SavedTeamRepository) recordsLocked() []teamRecord {
	out := make([]teamRecord, 0, len(r.teams))
	for _, item := range r.teams {
		out = append(out, toTeamRecord(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamName < out[j].TeamName })

	return out
}
