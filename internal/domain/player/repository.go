package player

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Save when the target row no longer exists.
var ErrNotFound = errors.New("player record not found")

// Repository describes player record persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id int64) (Record, bool, error)
	// ListByTeam matches team exactly (case-sensitive).
	ListByTeam(ctx context.Context, team string) ([]Record, error)
	// SearchByName, SearchByPosition and SearchByNation match a
	// case-insensitive substring of the respective field.
	SearchByName(ctx context.Context, text string) ([]Record, error)
	SearchByPosition(ctx context.Context, text string) ([]Record, error)
	SearchByNation(ctx context.Context, text string) ([]Record, error)
	// ListByTeamAndPosition matches both fields exactly.
	ListByTeamAndPosition(ctx context.Context, team, position string) ([]Record, error)
	Insert(ctx context.Context, record Record) (Record, error)
	Save(ctx context.Context, record Record) (Record, error)
	// DeleteByID is a no-op for unknown ids.
	DeleteByID(ctx context.Context, id int64) error
}
