package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/premier-league/internal/domain/player"
	"github.com/riskibarqy/premier-league/internal/platform/logging"
)

type PlayerService struct {
	playerRepo player.Repository
	events     EventPublisher
	logger     *logging.Logger
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, events EventPublisher, logger *logging.Logger) *PlayerService {
	if events == nil {
		events = NopEventPublisher{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		events:     events,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PlayerService) ListAll(ctx context.Context) ([]player.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListAll")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, storageError("list players", err)
	}

	return items, nil
}

func (s *PlayerService) Get(ctx context.Context, id int64) (player.Record, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	item, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Record{}, false, storageError(fmt.Sprintf("get player id=%d", id), err)
	}

	return item, exists, nil
}

func (s *PlayerService) SearchByName(ctx context.Context, text string) ([]player.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.SearchByName")
	defer span.End()

	items, err := s.playerRepo.SearchByName(ctx, text)
	if err != nil {
		return nil, storageError("search players by name", err)
	}

	return items, nil
}

func (s *PlayerService) ListByTeam(ctx context.Context, team string) ([]player.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListByTeam")
	defer span.End()

	items, err := s.playerRepo.ListByTeam(ctx, team)
	if err != nil {
		return nil, storageError("list players by team", err)
	}

	return items, nil
}

func (s *PlayerService) SearchByPosition(ctx context.Context, text string) ([]player.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.SearchByPosition")
	defer span.End()

	items, err := s.playerRepo.SearchByPosition(ctx, text)
	if err != nil {
		return nil, storageError("search players by position", err)
	}

	return items, nil
}

func (s *PlayerService) SearchByNation(ctx context.Context, text string) ([]player.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.SearchByNation")
	defer span.End()

	items, err := s.playerRepo.SearchByNation(ctx, text)
	if err != nil {
		return nil, storageError("search players by nation", err)
	}

	return items, nil
}

func (s *PlayerService) ListByTeamAndPosition(ctx context.Context, team, position string) ([]player.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListByTeamAndPosition")
	defer span.End()

	items, err := s.playerRepo.ListByTeamAndPosition(ctx, team, position)
	if err != nil {
		return nil, storageError("list players by team and position", err)
	}

	return items, nil
}

// Create stores rec as a new record. Any id on rec is ignored.
func (s *PlayerService) Create(ctx context.Context, rec player.Record) (player.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	rec.ID = 0
	created, err := s.playerRepo.Insert(ctx, rec)
	if err != nil {
		return player.Record{}, storageError("insert player", err)
	}

	s.publish(ctx, PlayerCreated, created.ID, &created)
	return created, nil
}

// Update replaces every field of the record identified by rec.ID with the
// values in rec, nulls included. It reports false when no such record exists.
func (s *PlayerService) Update(ctx context.Context, rec player.Record) (player.Record, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	stored, exists, err := s.playerRepo.GetByID(ctx, rec.ID)
	if err != nil {
		return player.Record{}, false, storageError(fmt.Sprintf("get player id=%d", rec.ID), err)
	}
	if !exists {
		return player.Record{}, false, nil
	}

	merged := rec.OverwriteOnto(stored)
	saved, err := s.playerRepo.Save(ctx, merged)
	if err != nil {
		if errors.Is(err, player.ErrNotFound) {
			return player.Record{}, false, nil
		}
		return player.Record{}, false, storageError(fmt.Sprintf("save player id=%d", merged.ID), err)
	}

	s.publish(ctx, PlayerUpdated, saved.ID, &saved)
	return saved, true, nil
}

// Delete removes the record with id. Unknown ids are not an error.
func (s *PlayerService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	if err := s.playerRepo.DeleteByID(ctx, id); err != nil {
		return storageError(fmt.Sprintf("delete player id=%d", id), err)
	}

	s.publish(ctx, PlayerDeleted, id, nil)
	return nil
}

func (s *PlayerService) publish(ctx context.Context, kind PlayerEventType, id int64, rec *player.Record) {
	event := PlayerEvent{
		Type:       kind,
		PlayerID:   id,
		OccurredAt: s.now().UTC(),
	}
	if rec != nil {
		snapshot := rec.Clone()
		event.Record = &snapshot
	}

	if err := s.events.PublishPlayerEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish player event failed",
			"event", string(kind),
			"player_id", id,
			"error", err,
		)
	}
}

// storageError marks a repository failure as ErrDependencyUnavailable while
// keeping the original cause reachable through errors.Is.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDependencyUnavailable, err)
}
