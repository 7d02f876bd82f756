package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/premier-league/internal/domain/player"
	"github.com/riskibarqy/premier-league/internal/usecase"
)

// ListPlayers serves every list and search query. team together with
// position is an exact match on both; otherwise the first present parameter
// of team, name, position and nation selects the query.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	values := r.URL.Query()
	q := playerQuery{
		Team:     values.Get("team"),
		Name:     values.Get("name"),
		Position: values.Get("position"),
		Nation:   values.Get("nation"),
	}
	if err := h.validateRequest(ctx, q); err != nil {
		writeError(ctx, w, err)
		return
	}

	var (
		items []player.Record
		err   error
	)
	switch {
	case q.Team != "" && q.Position != "":
		items, err = h.playerService.ListByTeamAndPosition(ctx, q.Team, q.Position)
	case q.Team != "":
		items, err = h.playerService.ListByTeam(ctx, q.Team)
	case q.Name != "":
		items, err = h.playerService.SearchByName(ctx, q.Name)
	case q.Position != "":
		items, err = h.playerService.SearchByPosition(ctx, q.Position)
	case q.Nation != "":
		items, err = h.playerService.SearchByNation(ctx, q.Nation)
	default:
		items, err = h.playerService.ListAll(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "query", r.URL.RawQuery, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	id, err := h.playerIDFromPath(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, exists, err := h.playerService.Get(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "get player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, fmt.Errorf("%w: player=%d", usecase.ErrNotFound, id))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req playerRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.playerService.Create(ctx, req.toRecord())
	if err != nil {
		h.logger.ErrorContext(ctx, "create player failed", "player", displayName(req.Player), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, created)
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	var req playerRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.ID == nil {
		writeError(ctx, w, fmt.Errorf("%w: id is required", usecase.ErrInvalidInput))
		return
	}

	updated, found, err := h.playerService.Update(ctx, req.toRecord())
	if err != nil {
		h.logger.ErrorContext(ctx, "update player failed", "player_id", *req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: player=%d", usecase.ErrNotFound, *req.ID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, updated)
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	id, err := h.playerIDFromPath(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.playerService.Delete(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "delete player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func displayName(name *string) string {
	if name == nil {
		return ""
	}
	return *name
}
