package jsonfile

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/scoutlab/squadscope/internal/domain/player"
)

// PlayerRepository persists player profiles as a single JSON document on
// disk. Reads are served from memory; every write rewrites the file.
type PlayerRepository struct {
	mu      sync.RWMutex
	path    string
	players map[string]player.Profile
}

func NewPlayerRepository(path string) (*PlayerRepository, error) {
	var stored []playerRecord
	if err := load(path, &stored); err != nil {
		return nil, err
	}

	players := make(map[string]player.Profile, len(stored))
	for _, item := range stored {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		players[item.ID] = item.toDomain()
	}

	return &PlayerRepository{path: path, players: players}, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (player.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[id]

	return item, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, ids []string) ([]player.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Profile, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.players[id]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *PlayerRepository) All(_ context.Context) ([]player.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Profile, 0, len(r.players))
	for _, item := range r.players {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *PlayerRepository) Put(_ context.Context, profile player.Profile) error {
	if strings.TrimSpace(profile.ID) == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[profile.ID] = profile

	return save(r.path, r.recordsLocked())
}

func (r *PlayerRepository) recordsLocked() []playerRecord {
	out := make([]playerRecord, 0, len(r.players))
	for _, item := range r.players {
		out = append(out, toPlayerRecord(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}
