package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/scoutlab/squadscope/internal/domain/player"
	"github.com/scoutlab/squadscope/internal/domain/roster"
	basecache "github.com/scoutlab/squadscope/internal/platform/cache"
)

// PlayerRepository decorates a player store with a read-through TTL cache.
// Writes invalidate every player key: ingest batches touch many entries and
// the list/id key fan-out is not worth tracking per player.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Profile, bool, error) {
	key := "player:id:" + id
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Profile{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []string) ([]player.Profile, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	key := "player:ids:" + strings.Join(sorted, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return append([]player.Profile(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Profile)
	return append([]player.Profile(nil), items...), nil
}

func (r *PlayerRepository) All(ctx context.Context) ([]player.Profile, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:all", func(ctx context.Context) (any, error) {
		items, err := r.next.All(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Profile(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Profile)
	return append([]player.Profile(nil), items...), nil
}

func (r *PlayerRepository) Put(ctx context.Context, profile player.Profile) error {
	if err := r.next.Put(ctx, profile); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player:")
	return nil
}

type cachedPlayerByID struct {
	value  player.Profile
	exists bool
}

// SavedTeamRepository decorates the team store with a read-through TTL
// cache keyed by team name.
type SavedTeamRepository struct {
	next  roster.SavedTeamRepository
	cache *basecache.Store
}

func NewSavedTeamRepository(next roster.SavedTeamRepository, cache *basecache.Store) *SavedTeamRepository {
	return &SavedTeamRepository{next: next, cache: cache}
}

func (r *SavedTeamRepository) Upsert(ctx context.Context, team roster.SavedTeam) error {
	if err := r.next.Upsert(ctx, team); err != nil {
		return err
	}
	r.cache.Delete(ctx, teamByNameKey(team.TeamName))
	r.cache.Delete(ctx, "team:list")
	return nil
}

func (r *SavedTeamRepository) GetByName(ctx context.Context, teamName string) (roster.SavedTeam, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, teamByNameKey(teamName), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, teamName)
		if err != nil {
			return nil, err
		}
		return cachedTeamByName{value: cloneTeam(item), exists: exists}, nil
	})
	if err != nil {
		return roster.SavedTeam{}, false, err
	}

	cached, _ := v.(cachedTeamByName)
	return cloneTeam(cached.value), cached.exists, nil
}

func (r *SavedTeamRepository) List(ctx context.Context) ([]roster.SavedTeam, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]roster.SavedTeam, 0, len(items))
		for _, item := range items {
			out = append(out, cloneTeam(item))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]roster.SavedTeam)
	out := make([]roster.SavedTeam, 0, len(items))
	for _, item := range items {
		out = append(out, cloneTeam(item))
	}
	return out, nil
}

func (r *SavedTeamRepository) Delete(ctx context.Context, teamName string) (bool, error) {
	existed, err := r.next.Delete(ctx, teamName)
	if err != nil {
		return false, err
	}
	r.cache.Delete(ctx, teamByNameKey(teamName))
	r.cache.Delete(ctx, "team:list")
	return existed, nil
}

type cachedTeamByName struct {
	value  roster.SavedTeam
	exists bool
}

func cloneTeam(item roster.SavedTeam) roster.SavedTeam {
	out := item
	out.PlayerIDs = append([]string(nil), item.PlayerIDs...)
	return out
}

func teamByNameKey(teamName string) string {
	return "team:name:" + teamName
}
