package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	qb "github.com/riskibarqy/premier-league/internal/platform/querybuilder"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// pqErrorCode returns the SQLSTATE of a lib/pq error, or "" for other errors.
func pqErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUndefinedTable reports whether err means player_data has not been
// migrated yet (SQLSTATE 42P01).
func IsUndefinedTable(err error) bool {
	return pqErrorCode(err) == "42P01"
}

func schemaCheckQuery() (string, []any, error) {
	return qb.Select("id").From(playerTable).Limit(1).ToSQL()
}

// CheckSchema verifies that player_data exists and is readable.
func (r *PlayerRepository) CheckSchema(ctx context.Context) error {
	query, args, err := schemaCheckQuery()
	if err != nil {
		return fmt.Errorf("build schema check query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if IsUndefinedTable(err) {
			return fmt.Errorf("table %s does not exist, run migrations first: %w", playerTable, err)
		}
		return fmt.Errorf("check %s schema: %w", playerTable, err)
	}
	return nil
}
