package events

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/premier-league/internal/domain/player"
	"github.com/riskibarqy/premier-league/internal/usecase"
)

type fakeStream struct {
	calls []*redis.XAddArgs
	err   error
}

func (f *fakeStream) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.calls = append(f.calls, a)
	cmd := redis.NewStringCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	cmd.SetVal("1700000000000-0")
	return cmd
}

func TestRedisStreamPublisher_PublishPlayerEvent(t *testing.T) {
	t.Parallel()

	stream := &fakeStream{}
	publisher := NewRedisStreamPublisher(stream, "", 1000)
	rec := player.Record{ID: 9, Player: player.Ptr("Bukayo Saka"), Goals: player.Ptr(16)}

	err := publisher.PublishPlayerEvent(context.Background(), usecase.PlayerEvent{
		Type:       usecase.PlayerUpdated,
		PlayerID:   9,
		Record:     &rec,
		OccurredAt: time.Date(2024, time.May, 19, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(stream.calls) != 1 {
		t.Fatalf("expected one XADD, got %d", len(stream.calls))
	}

	args := stream.calls[0]
	if args.Stream != DefaultStream {
		t.Fatalf("unexpected stream: %s", args.Stream)
	}
	if args.MaxLen != 1000 || !args.Approx {
		t.Fatalf("expected approximate trimming to 1000, got maxlen=%d approx=%v", args.MaxLen, args.Approx)
	}

	values, ok := args.Values.(map[string]any)
	if !ok {
		t.Fatalf("unexpected values type %T", args.Values)
	}
	if values["type"] != "player.updated" || values["player_id"] != "9" {
		t.Fatalf("unexpected values: %+v", values)
	}

	var decoded usecase.PlayerEvent
	if err := sonic.UnmarshalString(values["payload"].(string), &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.Record == nil || *decoded.Record.Goals != 16 {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestRedisStreamPublisher_NoTrimWhenMaxLenUnset(t *testing.T) {
	t.Parallel()

	stream := &fakeStream{}
	publisher := NewRedisStreamPublisher(stream, "custom", 0)
	if err := publisher.PublishPlayerEvent(context.Background(), usecase.PlayerEvent{Type: usecase.PlayerDeleted, PlayerID: 3}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if args := stream.calls[0]; args.Stream != "custom" || args.MaxLen != 0 || args.Approx {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestRedisStreamPublisher_WrapsRedisErrors(t *testing.T) {
	t.Parallel()

	redisErr := errors.New("READONLY You can't write against a read only replica")
	publisher := NewRedisStreamPublisher(&fakeStream{err: redisErr}, "players", 0)

	err := publisher.PublishPlayerEvent(context.Background(), usecase.PlayerEvent{Type: usecase.PlayerCreated, PlayerID: 1})
	if !errors.Is(err, redisErr) {
		t.Fatalf("expected wrapped redis error, got %v", err)
	}
	if !strings.Contains(err.Error(), "players") {
		t.Fatalf("expected stream name in error: %v", err)
	}
}

func TestNewRedisClient_RejectsBadURL(t *testing.T) {
	t.Parallel()

	if _, err := NewRedisClient(context.Background(), "http://not-redis"); err == nil {
		t.Fatalf("expected error for non redis url")
	}
}
