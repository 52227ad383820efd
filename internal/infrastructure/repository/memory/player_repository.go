package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/scoutlab/squadscope/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Profile
}

func NewPlayerRepository(profiles []player.Profile) *PlayerRepository {
	players := make(map[string]player.Profile, len(profiles))
	for _, item := range profiles {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		players[item.ID] = item
	}

	return &PlayerRepository{players: players}
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
	r.players[profile.ID] = profile
	r.mu.Unlock()

	return nil
}
