package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "player").
		From("player_data").
		Where(Eq("team", "Arsenal"), ContainsFold("position", "fw")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := `SELECT id, player FROM player_data WHERE team = $1 AND position ILIKE $2 ESCAPE '\' ORDER BY id LIMIT 10`
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Arsenal" || args[1] != "%fw%" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestContainsFold_EscapesWildcards(t *testing.T) {
	_, args, err := Select("id").From("player_data").Where(ContainsFold("player", `50%_o\k`)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if got, want := args[0], `%50\%\_o\\k%`; got != want {
		t.Fatalf("unexpected pattern: want %s got %s", want, got)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("player_data").
		Columns("player", "team").
		Values("Saka", "Arsenal").
		Returning("id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO player_data (player, team) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Saka" || args[1] != "Arsenal" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_ValueCountMismatch(t *testing.T) {
	if _, _, err := InsertInto("player_data").Columns("player", "team").Values("Saka").ToSQL(); err == nil {
		t.Fatalf("expected error for value count mismatch")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("player_data").
		Set("goals", 7).
		Set("assists", nil).
		Where(Eq("id", int64(1))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE player_data SET goals = $1, assists = $2 WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != 7 || args[1] != nil || args[2] != int64(1) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateAndDeleteRequireWhere(t *testing.T) {
	if _, _, err := Update("player_data").Set("goals", 1).ToSQL(); err == nil {
		t.Fatalf("expected error for update without where")
	}
	if _, _, err := DeleteFrom("player_data").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without where")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("player_data").Where(Eq("id", int64(4))).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM player_data WHERE id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != int64(4) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type sampleRow struct {
	ID       int64   `db:"id"`
	Player   *string `db:"player"`
	Goals    *int    `db:"goals"`
	internal string
	Skipped  string `db:"-"`
}

func TestModelBuilders(t *testing.T) {
	name := "Saka"
	row := sampleRow{ID: 3, Player: &name, internal: "x", Skipped: "y"}

	cols, err := Columns(row)
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	if len(cols) != 3 || cols[0] != "id" || cols[1] != "player" || cols[2] != "goals" {
		t.Fatalf("unexpected columns: %+v", cols)
	}

	query, args, err := InsertModel("player_data", &row, "id").Returning("id").ToSQL()
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}
	if query != "INSERT INTO player_data (player, goals) VALUES ($1, $2) RETURNING id" {
		t.Fatalf("unexpected insert query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected insert args: %+v", args)
	}

	query, args, err = UpdateModel("player_data", row, "id").Where(Eq("id", row.ID)).ToSQL()
	if err != nil {
		t.Fatalf("build update model query: %v", err)
	}
	if query != "UPDATE player_data SET player = $1, goals = $2 WHERE id = $3" {
		t.Fatalf("unexpected update query: %s", query)
	}
	if len(args) != 3 || args[2] != int64(3) {
		t.Fatalf("unexpected update args: %+v", args)
	}
}

func TestColumnsAndValues_RejectsNonStruct(t *testing.T) {
	if _, _, err := ColumnsAndValues(42); err == nil {
		t.Fatalf("expected error for non struct model")
	}
	var nilRow *sampleRow
	if _, _, err := ColumnsAndValues(nilRow); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
