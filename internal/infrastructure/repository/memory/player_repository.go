package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/riskibarqy/premier-league/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	items  map[int64]player.Record
	orders []int64
	nextID int64
}

// NewPlayerRepository seeds the store with records. Records without an id get
// the next free one.
func NewPlayerRepository(records []player.Record) *PlayerRepository {
	r := &PlayerRepository{
		items:  make(map[int64]player.Record, len(records)),
		orders: make([]int64, 0, len(records)),
	}
	for _, rec := range records {
		if rec.ID <= 0 {
			r.nextID++
			rec.ID = r.nextID
		}
		if rec.ID > r.nextID {
			r.nextID = rec.ID
		}
		if _, exists := r.items[rec.ID]; !exists {
			r.orders = append(r.orders, rec.ID)
		}
		r.items[rec.ID] = rec.Clone()
	}
	slices.Sort(r.orders)

	return r
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Record, error) {
	return r.filter(func(player.Record) bool { return true }), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[id]
	if !ok {
		return player.Record{}, false, nil
	}

	return rec.Clone(), true, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, team string) ([]player.Record, error) {
	return r.filter(func(rec player.Record) bool {
		return equals(rec.Team, team)
	}), nil
}

func (r *PlayerRepository) SearchByName(_ context.Context, text string) ([]player.Record, error) {
	return r.filter(func(rec player.Record) bool {
		return containsFold(rec.Player, text)
	}), nil
}

func (r *PlayerRepository) SearchByPosition(_ context.Context, text string) ([]player.Record, error) {
	return r.filter(func(rec player.Record) bool {
		return containsFold(rec.Position, text)
	}), nil
}

func (r *PlayerRepository) SearchByNation(_ context.Context, text string) ([]player.Record, error) {
	return r.filter(func(rec player.Record) bool {
		return containsFold(rec.Nation, text)
	}), nil
}

func (r *PlayerRepository) ListByTeamAndPosition(_ context.Context, team, position string) ([]player.Record, error) {
	return r.filter(func(rec player.Record) bool {
		return equals(rec.Team, team) && equals(rec.Position, position)
	}), nil
}

func (r *PlayerRepository) Insert(_ context.Context, record player.Record) (player.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := record.Clone()
	stored.ID = r.nextID
	r.items[stored.ID] = stored
	r.orders = append(r.orders, stored.ID)

	return stored.Clone(), nil
}

func (r *PlayerRepository) Save(_ context.Context, record player.Record) (player.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[record.ID]; !ok {
		return player.Record{}, fmt.Errorf("save player id=%d: %w", record.ID, player.ErrNotFound)
	}
	r.items[record.ID] = record.Clone()

	return record.Clone(), nil
}

func (r *PlayerRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	r.orders = slices.DeleteFunc(r.orders, func(v int64) bool { return v == id })

	return nil
}

func (r *PlayerRepository) filter(match func(player.Record) bool) []player.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Record, 0)
	for _, id := range r.orders {
		rec := r.items[id]
		if match(rec) {
			out = append(out, rec.Clone())
		}
	}

	return out
}

func equals(field *string, want string) bool {
	return field != nil && *field == want
}

func containsFold(field *string, text string) bool {
	return field != nil && strings.Contains(strings.ToLower(*field), strings.ToLower(text))
}
