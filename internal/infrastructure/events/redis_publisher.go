package events

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/premier-league/internal/usecase"
)

const DefaultStream = "premier-league.player.events"

// StreamAdder is the slice of the redis client the publisher needs.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStreamPublisher appends player change events to a Redis stream.
type RedisStreamPublisher struct {
	client StreamAdder
	stream string
	maxLen int64
}

func NewRedisStreamPublisher(client StreamAdder, stream string, maxLen int64) *RedisStreamPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisStreamPublisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

func (p *RedisStreamPublisher) PublishPlayerEvent(ctx context.Context, event usecase.PlayerEvent) error {
	payload, err := sonic.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal player event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"type":      string(event.Type),
			"player_id": strconv.FormatInt(event.PlayerID, 10),
			"payload":   string(payload),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("publish to stream %s: %w", p.stream, err)
	}

	return nil
}

// NewRedisClient parses a redis:// URL and returns a connected client.
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
