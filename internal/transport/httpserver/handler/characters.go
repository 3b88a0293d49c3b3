package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	characterdomain "investimon-go/internal/domain/character"
	"investimon-go/internal/transport/httpserver/middleware"
)

func (h *Handlers) ListCharacters(w http.ResponseWriter, r *http.Request) {
	characters, err := h.Characters.List(r.Context())
	if err != nil {
		h.log.InternalError("characters.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, characters)
}

func (h *Handlers) CollectCharacter(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	characterID := strings.TrimSpace(chi.URLParam(r, "id"))
	if characterID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	entry, err := h.Characters.Collect(r.Context(), caller.ID, characterID)
	if err != nil {
		switch {
		case errors.Is(err, characterdomain.ErrCharacterNotFound):
			h.log.BusinessError("characters.collect: character not found", err, "user_id", caller.ID, "character_id", characterID)
			writeError(w, http.StatusNotFound, "character_not_found", "character not found")
		case errors.Is(err, characterdomain.ErrAlreadyCollected):
			h.log.BusinessError("characters.collect: already collected", err, "user_id", caller.ID, "character_id", characterID)
			writeError(w, http.StatusConflict, "already_collected", "character already collected")
		default:
			h.log.InternalError("characters.collect: collect failed", err, "user_id", caller.ID, "character_id", characterID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}
