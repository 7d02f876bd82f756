package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/premier-league/internal/domain/player"
	"github.com/riskibarqy/premier-league/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/premier-league/internal/mocks/domain/player"
	"github.com/stretchr/testify/mock"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []PlayerEvent
	err    error
}

func (p *recordingPublisher) PublishPlayerEvent(_ context.Context, event PlayerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []PlayerEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PlayerEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func anyCtx() any {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func TestPlayerService_CreateAssignsFreshID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	events := &recordingPublisher{}
	service := NewPlayerService(memory.NewPlayerRepository(nil), events, nil)

	first, err := service.Create(ctx, player.Record{ID: 40, Player: player.Ptr("Bukayo Saka")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := service.Create(ctx, player.Record{Player: player.Ptr("Declan Rice")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == 40 || first.ID == second.ID {
		t.Fatalf("expected fresh distinct ids, got %d and %d", first.ID, second.ID)
	}

	got, ok, err := service.Get(ctx, first.ID)
	if err != nil || !ok {
		t.Fatalf("get created: ok=%v err=%v", ok, err)
	}
	if got.Player == nil || *got.Player != "Bukayo Saka" {
		t.Fatalf("unexpected stored record: %+v", got)
	}

	if kinds := events.types(); len(kinds) != 2 || kinds[0] != PlayerCreated {
		t.Fatalf("unexpected events: %v", kinds)
	}
}

func TestPlayerService_UpdateOverwritesEveryField(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	date := player.NewDate(mustTime(t, "2024-05-19"))
	repo := memory.NewPlayerRepository([]player.Record{{
		Player:             player.Ptr("Bukayo Saka"),
		Team:               player.Ptr("Arsenal"),
		Goals:              player.Ptr(16),
		PassCompletion:     player.Ptr(79.5),
		ProgressivePasses:  player.Ptr(120),
		Carries:            player.Ptr(900),
		ProgressiveCarries: player.Ptr(110),
		DribbleAttempts:    player.Ptr(140),
		SuccessfulDribbles: player.Ptr(60),
		Date:               &date,
	}})
	service := NewPlayerService(repo, nil, nil)

	updated, found, err := service.Update(ctx, player.Record{
		ID:      1,
		Player:  player.Ptr("Bukayo Saka"),
		Team:    player.Ptr("Arsenal"),
		Goals:   player.Ptr(17),
		Carries: player.Ptr(950),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !found {
		t.Fatalf("expected record to be found")
	}
	if updated.ID != 1 || *updated.Goals != 17 || *updated.Carries != 950 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	stored, _, _ := service.Get(ctx, 1)
	if stored.Date != nil || stored.PassCompletion != nil || stored.ProgressivePasses != nil ||
		stored.ProgressiveCarries != nil || stored.DribbleAttempts != nil || stored.SuccessfulDribbles != nil {
		t.Fatalf("expected omitted fields to be cleared: %+v", stored)
	}
	if *stored.Goals != 17 || *stored.Carries != 950 {
		t.Fatalf("expected new values to be stored: %+v", stored)
	}
}

func TestPlayerService_UpdateMissingRecordDoesNotWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playermock.NewRepository(t)
	events := &recordingPublisher{}
	service := NewPlayerService(repo, events, nil)

	repo.
		On("GetByID", anyCtx(), int64(404)).
		Return(player.Record{}, false, nil).
		Once()

	_, found, err := service.Update(ctx, player.Record{ID: 404, Goals: player.Ptr(1)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if found {
		t.Fatalf("expected not found")
	}
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	if len(events.types()) != 0 {
		t.Fatalf("expected no events for missing record")
	}
}

func TestPlayerService_UpdateMissingIDKeepsStoreUnchanged(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		seed []player.Record
		id   int64
	}{
		{"empty store", nil, 1},
		{"id past the last row", []player.Record{{Player: player.Ptr("Bukayo Saka")}, {Player: player.Ptr("Declan Rice")}}, 999},
		{"negative id", []player.Record{{Player: player.Ptr("Bukayo Saka")}}, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			service := NewPlayerService(memory.NewPlayerRepository(tc.seed), nil, nil)

			_, found, err := service.Update(ctx, player.Record{ID: tc.id, Player: player.Ptr("Ghost")})
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if found {
				t.Fatalf("expected id %d to be missing", tc.id)
			}

			all, err := service.ListAll(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(all) != len(tc.seed) {
				t.Fatalf("expected %d records after update, got %d", len(tc.seed), len(all))
			}
			for _, rec := range all {
				if rec.Player != nil && *rec.Player == "Ghost" {
					t.Fatalf("missing-id update must not create a record: %+v", rec)
				}
			}
		})
	}
}

func TestPlayerService_UpdateRowVanishedReportsNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo, nil, nil)

	repo.
		On("GetByID", anyCtx(), int64(7)).
		Return(player.Record{ID: 7}, true, nil).
		Once()
	repo.
		On("Save", anyCtx(), mock.MatchedBy(func(rec player.Record) bool { return rec.ID == 7 })).
		Return(player.Record{}, player.ErrNotFound).
		Once()

	_, found, err := service.Update(ctx, player.Record{ID: 7})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if found {
		t.Fatalf("expected not found when the row disappears before save")
	}
}

func TestPlayerService_PropagatesStorageErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storageErr := errors.New("connection reset")
	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo, nil, nil)

	repo.On("List", anyCtx()).Return(nil, storageErr).Once()
	repo.On("SearchByName", anyCtx(), "sa").Return(nil, storageErr).Once()
	repo.On("ListByTeamAndPosition", anyCtx(), "Arsenal", "FW").Return(nil, storageErr).Once()
	repo.On("Insert", anyCtx(), mock.Anything).Return(player.Record{}, storageErr).Once()
	repo.On("GetByID", anyCtx(), int64(3)).Return(player.Record{}, false, storageErr).Once()
	repo.On("DeleteByID", anyCtx(), int64(3)).Return(storageErr).Once()

	if _, err := service.ListAll(ctx); !errors.Is(err, storageErr) || !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("list all: expected storage error marked unavailable, got %v", err)
	}
	if _, err := service.SearchByName(ctx, "sa"); !errors.Is(err, storageErr) {
		t.Fatalf("search by name: expected storage error, got %v", err)
	}
	if _, err := service.ListByTeamAndPosition(ctx, "Arsenal", "FW"); !errors.Is(err, storageErr) {
		t.Fatalf("list by team and position: expected storage error, got %v", err)
	}
	if _, err := service.Create(ctx, player.Record{}); !errors.Is(err, storageErr) {
		t.Fatalf("create: expected storage error, got %v", err)
	}
	if _, _, err := service.Update(ctx, player.Record{ID: 3}); !errors.Is(err, storageErr) {
		t.Fatalf("update: expected storage error, got %v", err)
	}
	if err := service.Delete(ctx, 3); !errors.Is(err, storageErr) {
		t.Fatalf("delete: expected storage error, got %v", err)
	}
}

func TestPlayerService_DeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	events := &recordingPublisher{}
	service := NewPlayerService(memory.NewPlayerRepository([]player.Record{{Player: player.Ptr("Rodri")}}), events, nil)

	if err := service.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := service.Delete(ctx, 1); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, ok, _ := service.Get(ctx, 1); ok {
		t.Fatalf("expected record to be deleted")
	}
	if kinds := events.types(); len(kinds) != 2 || kinds[0] != PlayerDeleted {
		t.Fatalf("unexpected events: %v", kinds)
	}
}

func TestPlayerService_PublishFailureDoesNotFailWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	events := &recordingPublisher{err: errors.New("redis down")}
	service := NewPlayerService(memory.NewPlayerRepository(nil), events, nil)

	created, err := service.Create(ctx, player.Record{Player: player.Ptr("Cole Palmer")})
	if err != nil {
		t.Fatalf("create should succeed even when publishing fails: %v", err)
	}
	if _, ok, _ := service.Get(ctx, created.ID); !ok {
		t.Fatalf("expected record to be stored")
	}
}

func TestPlayerService_Queries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewPlayerService(memory.NewPlayerRepository([]player.Record{
		{Player: player.Ptr("Bukayo Saka"), Team: player.Ptr("Arsenal"), Position: player.Ptr("FW"), Nation: player.Ptr("eng ENG")},
		{Player: player.Ptr("Martin Ødegaard"), Team: player.Ptr("Arsenal"), Position: player.Ptr("FW,MF"), Nation: player.Ptr("no NOR")},
		{Player: player.Ptr("Phil Foden"), Team: player.Ptr("Manchester City"), Position: player.Ptr("FW,MF"), Nation: player.Ptr("eng ENG")},
	}), nil, nil)

	byTeamAndPos, err := service.ListByTeamAndPosition(ctx, "Arsenal", "FW")
	if err != nil {
		t.Fatalf("list by team and position: %v", err)
	}
	if len(byTeamAndPos) != 1 || *byTeamAndPos[0].Player != "Bukayo Saka" {
		t.Fatalf("expected exact position match only, got %+v", byTeamAndPos)
	}

	byNation, err := service.SearchByNation(ctx, "ENG")
	if err != nil {
		t.Fatalf("search by nation: %v", err)
	}
	if len(byNation) != 2 {
		t.Fatalf("expected 2 english players, got %d", len(byNation))
	}

	byPosition, err := service.SearchByPosition(ctx, "mf")
	if err != nil {
		t.Fatalf("search by position: %v", err)
	}
	if len(byPosition) != 2 {
		t.Fatalf("expected 2 midfield players, got %d", len(byPosition))
	}

	byTeam, err := service.ListByTeam(ctx, "Manchester City")
	if err != nil {
		t.Fatalf("list by team: %v", err)
	}
	if len(byTeam) != 1 {
		t.Fatalf("expected 1 city player, got %d", len(byTeam))
	}
}

func TestPlayerService_ConcurrentUpdatesNeverMixInputs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewPlayerService(memory.NewPlayerRepository([]player.Record{{Player: player.Ptr("Rodri")}}), nil, nil)

	inputs := []player.Record{
		{ID: 1, Player: player.Ptr("A"), Goals: player.Ptr(1), Assists: player.Ptr(1)},
		{ID: 1, Player: player.Ptr("B"), Goals: player.Ptr(2), Assists: player.Ptr(2)},
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, in := range inputs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, _, err := service.Update(ctx, in); err != nil {
					t.Errorf("update: %v", err)
				}
			}()
		}
	}
	wg.Wait()

	got, _, _ := service.Get(ctx, 1)
	if *got.Goals != *got.Assists {
		t.Fatalf("record mixes two inputs: %+v", got)
	}
	if (*got.Player == "A") != (*got.Goals == 1) {
		t.Fatalf("record mixes two inputs: %+v", got)
	}
}
