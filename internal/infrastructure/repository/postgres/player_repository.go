package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/scoutlab/squadscope/internal/domain/player"
	qb "github.com/scoutlab/squadscope/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

var playerSelectColumns = []string{
	"id",
	"name",
	"age",
	"position",
	"market_value",
	"appearances",
	"goals",
	"assists",
	"minutes_played",
	"yellow_cards",
	"red_cards",
	"current_value",
	"peak_value",
	"squad_size",
	"phase",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db, now: time.Now}
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Profile, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return player.Profile{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Profile{}, false, nil
		}
		return player.Profile{}, false, fmt.Errorf("select player: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []string) ([]player.Profile, error) {
	if len(ids) == 0 {
		return []player.Profile{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("id", stringSliceToAny(ids))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]player.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) All(ctx context.Context) ([]player.Profile, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select all players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select all players: %w", err)
	}

	out := make([]player.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) Put(ctx context.Context, profile player.Profile) error {
	model := toPlayerTableModel(profile, r.now().UTC())

	query, args, err := qb.InsertModel("players", model, `ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		age = EXCLUDED.age,
		position = EXCLUDED.position,
		market_value = EXCLUDED.market_value,
		appearances = EXCLUDED.appearances,
		goals = EXCLUDED.goals,
		assists = EXCLUDED.assists,
		minutes_played = EXCLUDED.minutes_played,
		yellow_cards = EXCLUDED.yellow_cards,
		red_cards = EXCLUDED.red_cards,
		current_value = EXCLUDED.current_value,
		peak_value = EXCLUDED.peak_value,
		squad_size = EXCLUDED.squad_size,
		phase = EXCLUDED.phase,
		updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}

	return nil
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
