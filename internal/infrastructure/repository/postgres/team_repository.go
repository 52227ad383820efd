package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/scoutlab/squadscope/internal/domain/roster"
	qb "github.com/scoutlab/squadscope/internal/platform/querybuilder"
)

type SavedTeamRepository struct {
	db *sqlx.DB
}

var savedTeamSelectColumns = []string{
	"team_name",
	"player_ids",
	"saved_at",
}

func NewSavedTeamRepository(db *sqlx.DB) *SavedTeamRepository {
	return &SavedTeamRepository{db: db}
}

func (r *SavedTeamRepository) Upsert(ctx context.Context, team roster.SavedTeam) error {
	model := toSavedTeamTableModel(team)

	query, args, err := qb.InsertModel("saved_teams", model, `ON CONFLICT (team_name) DO UPDATE SET
		player_ids = EXCLUDED.player_ids,
		saved_at = EXCLUDED.saved_at`)
	if err != nil {
		return fmt.Errorf("build upsert saved team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert saved team: %w", err)
	}

	return nil
}

func (r *SavedTeamRepository) GetByName(ctx context.Context, teamName string) (roster.SavedTeam, bool, error) {
	query, args, err := qb.Select(savedTeamSelectColumns...).From("saved_teams").
		Where(qb.Eq("team_name", teamName)).
		ToSQL()
	if err != nil {
		return roster.SavedTeam{}, false, fmt.Errorf("build select saved team query: %w", err)
	}

	var row savedTeamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.SavedTeam{}, false, nil
		}
		return roster.SavedTeam{}, false, fmt.Errorf("select saved team: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SavedTeamRepository) List(ctx context.Context) ([]roster.SavedTeam, error) {
	query, args, err := qb.Select(savedTeamSelectColumns...).From("saved_teams").
		OrderBy("team_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select saved teams query: %w", err)
	}

	var rows []savedTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select saved teams: %w", err)
	}

	out := make([]roster.SavedTeam, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *SavedTeamRepository) Delete(ctx context.Context, teamName string) (bool, error) {
	query, args, err := qb.DeleteFrom("saved_teams").
		Where(qb.Eq("team_name", teamName)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete saved team query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete saved team: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read delete saved team result: %w", err)
	}

	return affected > 0, nil
}
