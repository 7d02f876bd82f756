package memory

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/riskibarqy/premier-league/internal/domain/player"
)

func seedPlayers() []player.Record {
	return []player.Record{
		{Player: player.Ptr("Bukayo Saka"), Team: player.Ptr("Arsenal"), Position: player.Ptr("FW"), Nation: player.Ptr("eng ENG")},
		{Player: player.Ptr("Declan Rice"), Team: player.Ptr("Arsenal"), Position: player.Ptr("MF"), Nation: player.Ptr("eng ENG")},
		{Player: player.Ptr("Mohamed Salah"), Team: player.Ptr("Liverpool"), Position: player.Ptr("FW"), Nation: player.Ptr("eg EGY")},
		{Player: player.Ptr("Rodri"), Team: player.Ptr("Manchester City"), Position: player.Ptr("MF,DF"), Nation: player.Ptr("es ESP")},
		{Team: player.Ptr("Arsenal")},
	}
}

func names(records []player.Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.DisplayName())
	}
	return out
}

func TestPlayerRepository_Queries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerRepository(seedPlayers())

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 || all[0].ID != 1 || all[4].ID != 5 {
		t.Fatalf("unexpected list: %+v", names(all))
	}

	cases := []struct {
		name string
		run  func() ([]player.Record, error)
		want int
	}{
		{"team exact", func() ([]player.Record, error) { return repo.ListByTeam(ctx, "Arsenal") }, 3},
		{"team is case sensitive", func() ([]player.Record, error) { return repo.ListByTeam(ctx, "arsenal") }, 0},
		{"name substring ignores case", func() ([]player.Record, error) { return repo.SearchByName(ctx, "SAK") }, 1},
		{"empty name matches every non-null", func() ([]player.Record, error) { return repo.SearchByName(ctx, "") }, 4},
		{"position substring", func() ([]player.Record, error) { return repo.SearchByPosition(ctx, "mf") }, 2},
		{"nation substring", func() ([]player.Record, error) { return repo.SearchByNation(ctx, "eng") }, 2},
		{"team and position", func() ([]player.Record, error) { return repo.ListByTeamAndPosition(ctx, "Arsenal", "FW") }, 1},
		{"team and position exact", func() ([]player.Record, error) { return repo.ListByTeamAndPosition(ctx, "Manchester City", "MF") }, 0},
	}
	for _, tc := range cases {
		got, err := tc.run()
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(got) != tc.want {
			t.Fatalf("%s: expected %d records, got %v", tc.name, tc.want, names(got))
		}
	}
}

func TestPlayerRepository_SearchByNameKeepsIDOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerRepository([]player.Record{
		{Player: player.Ptr("Lionel Messi")},
		{Player: player.Ptr("James Rodriguez")},
		{Player: player.Ptr("Sergio Ramos")},
	})

	cases := []struct {
		text string
		want []string
	}{
		{"mes", []string{"Lionel Messi", "James Rodriguez"}},
		{"MES", []string{"Lionel Messi", "James Rodriguez"}},
		{"ramos", []string{"Sergio Ramos"}},
		{"neymar", []string{}},
	}
	for _, tc := range cases {
		got, err := repo.SearchByName(ctx, tc.text)
		if err != nil {
			t.Fatalf("search %q: %v", tc.text, err)
		}
		if !slices.Equal(names(got), tc.want) {
			t.Fatalf("search %q: expected %v, got %v", tc.text, tc.want, names(got))
		}
	}
}

func TestPlayerRepository_InsertSaveDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerRepository(seedPlayers())

	created, err := repo.Insert(ctx, player.Record{ID: 99, Player: player.Ptr("Cole Palmer")})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID != 6 {
		t.Fatalf("expected store assigned id 6, got %d", created.ID)
	}

	*created.Player = "mutated"
	stored, ok, err := repo.GetByID(ctx, 6)
	if err != nil || !ok {
		t.Fatalf("get inserted: ok=%v err=%v", ok, err)
	}
	if *stored.Player != "Cole Palmer" {
		t.Fatalf("store shares memory with caller: %s", *stored.Player)
	}

	stored.Goals = player.Ptr(22)
	if _, err := repo.Save(ctx, stored); err != nil {
		t.Fatalf("save: %v", err)
	}
	reloaded, _, _ := repo.GetByID(ctx, 6)
	if reloaded.Goals == nil || *reloaded.Goals != 22 {
		t.Fatalf("expected saved goals, got %+v", reloaded.Goals)
	}

	if _, err := repo.Save(ctx, player.Record{ID: 404}); !errors.Is(err, player.ErrNotFound) {
		t.Fatalf("expected ErrNotFound saving unknown id, got %v", err)
	}

	if err := repo.DeleteByID(ctx, 6); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteByID(ctx, 6); err != nil {
		t.Fatalf("delete again should be a no-op: %v", err)
	}
	if _, ok, _ := repo.GetByID(ctx, 6); ok {
		t.Fatalf("expected record to be gone")
	}

	next, _ := repo.Insert(ctx, player.Record{})
	if next.ID != 7 {
		t.Fatalf("ids must not be reused, got %d", next.ID)
	}
}

func TestPlayerRepository_ConcurrentInsertAssignsUniqueIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerRepository(nil)

	const workers = 32
	ids := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := repo.Insert(ctx, player.Record{Player: player.Ptr("p")})
			if err != nil {
				t.Errorf("insert: %v", err)
				return
			}
			ids <- rec.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, workers)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}

	all, _ := repo.List(ctx)
	if len(all) != workers {
		t.Fatalf("expected %d records, got %d", workers, len(all))
	}
}

func TestSeedPlayers_LoadsWithIDs(t *testing.T) {
	repo := NewPlayerRepository(SeedPlayers())

	items, err := repo.ListByTeamAndPosition(context.Background(), "Arsenal", "GK")
	if err != nil {
		t.Fatalf("list seeded goalkeepers: %v", err)
	}
	if len(items) != 1 || items[0].ID == 0 || *items[0].Player != "David Raya" {
		t.Fatalf("unexpected seeded goalkeepers: %+v", items)
	}
}
