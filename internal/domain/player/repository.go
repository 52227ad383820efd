package player

import "context"

// Repository describes player persistence needs from use cases. Callers
// inject the store; there is no process-wide player cache.
type Repository interface {
	GetByID(ctx context.Context, id string) (Profile, bool, error)
	GetByIDs(ctx context.Context, ids []string) ([]Profile, error)
	All(ctx context.Context) ([]Profile, error)
	Put(ctx context.Context, profile Profile) error
}
