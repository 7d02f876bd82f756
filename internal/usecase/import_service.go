package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/premier-league/internal/domain/player"
	"github.com/riskibarqy/premier-league/internal/platform/logging"
)

const defaultImportWorkers = 4

// ImportRow is one parsed source line ready to be stored.
type ImportRow struct {
	Line   int
	Record player.Record
}

// ImportBatch is the outcome of decoding a source file: rows that parsed and
// errors for lines that did not.
type ImportBatch struct {
	Rows     []ImportRow
	Rejected []error
}

type ImportInput struct {
	Batch  ImportBatch
	DryRun bool
}

type ImportResult struct {
	Total      int
	Inserted   int
	Failed     int
	Errors     []error
	DurationMs int64
}

type ImportService struct {
	players *PlayerService
	workers int
	logger  *logging.Logger
}

// NewImportService builds an importer writing through players. players may be
// nil for a service that only performs dry runs.
func NewImportService(players *PlayerService, workers int, logger *logging.Logger) *ImportService {
	if workers <= 0 {
		workers = defaultImportWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ImportService{
		players: players,
		workers: workers,
		logger:  logger,
	}
}

// Import creates a record for every row in the batch. Row failures are
// collected in the result; only setup failures are returned as error.
func (s *ImportService) Import(ctx context.Context, input ImportInput) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Import")
	defer span.End()

	start := time.Now()
	rows := input.Batch.Rows
	result := ImportResult{
		Total:  len(rows) + len(input.Batch.Rejected),
		Failed: len(input.Batch.Rejected),
		Errors: append([]error(nil), input.Batch.Rejected...),
	}
	if input.DryRun || len(rows) == 0 {
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(rows)))
	if err != nil {
		return ImportResult{}, fmt.Errorf("create import worker pool: %w", err)
	}
	defer pool.Release()

	var (
		inserted atomic.Int32
		mu       sync.Mutex
		failures []lineError
		workers  sync.WaitGroup
	)
	fail := func(line int, err error) {
		mu.Lock()
		failures = append(failures, lineError{line: line, err: err})
		mu.Unlock()
	}

	for _, row := range rows {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if err := ctx.Err(); err != nil {
				fail(row.Line, crerr.Wrapf(err, "line %d", row.Line))
				return
			}
			if _, err := s.players.Create(ctx, row.Record); err != nil {
				fail(row.Line, crerr.Wrapf(err, "line %d: insert %s", row.Line, row.Record.DisplayName()))
				return
			}
			inserted.Add(1)
		}); err != nil {
			workers.Done()
			fail(row.Line, crerr.Wrapf(err, "line %d: submit to worker pool", row.Line))
		}
	}
	workers.Wait()

	sort.Slice(failures, func(i, j int) bool { return failures[i].line < failures[j].line })
	for _, f := range failures {
		result.Errors = append(result.Errors, f.err)
	}
	result.Inserted = int(inserted.Load())
	result.Failed += len(failures)
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "player import finished",
		"total", result.Total,
		"inserted", result.Inserted,
		"failed", result.Failed,
		"duration_ms", result.DurationMs,
	)

	return result, nil
}

// Err folds every row error into one, or nil when the import was clean.
func (r ImportResult) Err() error {
	var combined error
	for _, err := range r.Errors {
		combined = crerr.CombineErrors(combined, err)
	}
	return combined
}

type lineError struct {
	line int
	err  error
}
