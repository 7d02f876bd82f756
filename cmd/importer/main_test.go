package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/premier-league/internal/config"
	"github.com/riskibarqy/premier-league/internal/platform/logging"
)

const squadExport = `Player,#,Nation,Pos,Age,Min,Gls,Ast
Bukayo Saka,7,eng ENG,FW,22-254,"2,890",16,9
Leandro Trossard,19,be BEL,FW,29-139,abc,12,1
Ben White,4,eng ENG,DF,26-208,"2,987",4,4
`

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arsenal.csv")
	if err := os.WriteFile(path, []byte(squadExport), 0o600); err != nil {
		t.Fatalf("write export: %v", err)
	}
	return path
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"--file", " stats.csv ", "--team", "Arsenal", "--date", "2024-05-19", "--dry-run"}, io.Discard)
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if opts.file != "stats.csv" || opts.team != "Arsenal" || opts.date != "2024-05-19" || !opts.dryRun {
		t.Fatalf("unexpected options: %+v", opts)
	}

	if _, err := parseFlags(nil, io.Discard); err == nil {
		t.Fatalf("expected error without --file")
	}
	if _, err := parseFlags([]string{"--file", "x.csv", "--date", "19/05/2024"}, io.Discard); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}

func TestRun_ImportsIntoMemoryStore(t *testing.T) {
	cfg := config.Config{StorageDriver: config.StorageDriverMemory, ImportWorkers: 2}
	opts := options{file: writeExport(t), team: "Arsenal", date: "2024-05-19"}

	var out bytes.Buffer
	failed, err := run(context.Background(), cfg, logging.NewNop(), opts, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if failed != 1 {
		t.Fatalf("expected one failed row, got %d", failed)
	}

	var s summary
	if err := sonic.Unmarshal(out.Bytes(), &s); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out.String())
	}
	if s.Total != 3 || s.Inserted != 2 || s.Failed != 1 || s.DryRun {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if len(s.Errors) != 1 || !strings.Contains(s.Errors[0], "line 3") {
		t.Fatalf("expected line 3 error, got %v", s.Errors)
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	cfg := config.Config{StorageDriver: config.StorageDriverMemory}
	opts := options{file: writeExport(t), team: "Arsenal", dryRun: true}

	var out bytes.Buffer
	if _, err := run(context.Background(), cfg, logging.NewNop(), opts, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var s summary
	if err := sonic.Unmarshal(out.Bytes(), &s); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if !s.DryRun || s.Inserted != 0 || s.Total != 3 {
		t.Fatalf("unexpected dry run summary: %+v", s)
	}
}

func TestRun_DryRunSkipsStorage(t *testing.T) {
	cfg := config.Config{StorageDriver: config.StorageDriverPostgres, DBURL: "", EventsEnabled: true}
	opts := options{file: writeExport(t), team: "Arsenal", dryRun: true}

	var out bytes.Buffer
	failed, err := run(context.Background(), cfg, logging.NewNop(), opts, &out)
	if err != nil {
		t.Fatalf("dry run must not open storage: %v", err)
	}
	if failed != 1 {
		t.Fatalf("expected one rejected row, got %d", failed)
	}

	var s summary
	if err := sonic.Unmarshal(out.Bytes(), &s); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out.String())
	}
	if !s.DryRun || s.Total != 3 || s.Inserted != 0 || s.Failed != 1 {
		t.Fatalf("unexpected dry run summary: %+v", s)
	}
}

func TestRun_MissingFile(t *testing.T) {
	cfg := config.Config{StorageDriver: config.StorageDriverMemory}
	if _, err := run(context.Background(), cfg, logging.NewNop(), options{file: "does-not-exist.csv"}, io.Discard); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
