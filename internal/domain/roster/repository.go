package roster

import "context"

// SavedTeamRepository persists named squad compositions. Upsert is
// create-or-replace; Delete reports whether the name existed so not-found
// can be surfaced distinctly from success.
type SavedTeamRepository interface {
	Upsert(ctx context.Context, team SavedTeam) error
	GetByName(ctx context.Context, teamName string) (SavedTeam, bool, error)
	List(ctx context.Context) ([]SavedTeam, error)
	Delete(ctx context.Context, teamName string) (bool, error)
}
