package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/premier-league/internal/domain/player"
	qb "github.com/riskibarqy/premier-league/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = mustColumns(playerTableModel{})

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Record, error) {
	return r.selectPlayers(ctx, "list players")
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Record, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From(playerTable).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return player.Record{}, false, fmt.Errorf("build get player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Record{}, false, nil
		}
		return player.Record{}, false, fmt.Errorf("get player by id: %w", err)
	}

	return playerRecordFromRow(row), true, nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, team string) ([]player.Record, error) {
	return r.selectPlayers(ctx, "list players by team", qb.Eq("team", team))
}

func (r *PlayerRepository) SearchByName(ctx context.Context, text string) ([]player.Record, error) {
	return r.selectPlayers(ctx, "search players by name", qb.ContainsFold("player", text))
}

func (r *PlayerRepository) SearchByPosition(ctx context.Context, text string) ([]player.Record, error) {
	return r.selectPlayers(ctx, "search players by position", qb.ContainsFold("position", text))
}

func (r *PlayerRepository) SearchByNation(ctx context.Context, text string) ([]player.Record, error) {
	return r.selectPlayers(ctx, "search players by nation", qb.ContainsFold("nation", text))
}

func (r *PlayerRepository) ListByTeamAndPosition(ctx context.Context, team, position string) ([]player.Record, error) {
	return r.selectPlayers(ctx, "list players by team and position",
		qb.Eq("team", team),
		qb.Eq("position", position),
	)
}

func (r *PlayerRepository) Insert(ctx context.Context, record player.Record) (player.Record, error) {
	row := playerRowFromRecord(record)
	query, args, err := qb.InsertModel(playerTable, row, "id").Returning("id").ToSQL()
	if err != nil {
		return player.Record{}, fmt.Errorf("build insert player query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return player.Record{}, fmt.Errorf("insert player: %w", err)
	}

	row.ID = id
	return playerRecordFromRow(row), nil
}

func (r *PlayerRepository) Save(ctx context.Context, record player.Record) (player.Record, error) {
	row := playerRowFromRecord(record)
	query, args, err := qb.UpdateModel(playerTable, row, "id").
		Where(qb.Eq("id", row.ID)).
		ToSQL()
	if err != nil {
		return player.Record{}, fmt.Errorf("build save player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return player.Record{}, fmt.Errorf("save player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return player.Record{}, fmt.Errorf("rows affected save player: %w", err)
	}
	if affected == 0 {
		return player.Record{}, fmt.Errorf("save player id=%d: %w", row.ID, player.ErrNotFound)
	}

	return playerRecordFromRow(row), nil
}

func (r *PlayerRepository) DeleteByID(ctx context.Context, id int64) error {
	query, args, err := qb.DeleteFrom(playerTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx delete player: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx delete player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, op string, conditions ...qb.Condition) ([]player.Record, error) {
	query, args, err := qb.Select(playerSelectColumns...).From(playerTable).
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]player.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerRecordFromRow(row))
	}

	return out, nil
}

func mustColumns(model any) []string {
	cols, err := qb.Columns(model)
	if err != nil {
		panic(err)
	}
	return cols
}
