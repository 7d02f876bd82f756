package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/premier-league/internal/domain/player"
)

type PlayerEventType string

const (
	PlayerCreated PlayerEventType = "player.created"
	PlayerUpdated PlayerEventType = "player.updated"
	PlayerDeleted PlayerEventType = "player.deleted"
)

// PlayerEvent describes a committed change to player_data. Record is nil for
// deletions.
type PlayerEvent struct {
	Type       PlayerEventType `json:"type"`
	PlayerID   int64           `json:"playerId"`
	Record     *player.Record  `json:"record,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// EventPublisher delivers player change events to downstream consumers.
type EventPublisher interface {
	PublishPlayerEvent(ctx context.Context, event PlayerEvent) error
}

type NopEventPublisher struct{}

func (NopEventPublisher) PublishPlayerEvent(context.Context, PlayerEvent) error {
	return nil
}
