package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	challengedomain "investimon-go/internal/domain/challenge"
	"investimon-go/internal/transport/httpserver/middleware"
)

func (h *Handlers) ListChallenges(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	challenges, err := h.Challenges.List(r.Context(), caller.ID)
	if err != nil {
		h.log.InternalError("challenges.list: list failed", err, "user_id", caller.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, challenges)
}

func (h *Handlers) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	challengeID := strings.TrimSpace(chi.URLParam(r, "id"))
	if challengeID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	reward, err := h.Challenges.Complete(r.Context(), caller.ID, challengeID)
	if err != nil {
		switch {
		case errors.Is(err, challengedomain.ErrChallengeNotFound):
			h.log.BusinessError("challenges.complete: challenge not found", err, "user_id", caller.ID, "challenge_id", challengeID)
			writeError(w, http.StatusNotFound, "challenge_not_found", "challenge not found")
		case errors.Is(err, challengedomain.ErrChallengeInactive):
			h.log.BusinessError("challenges.complete: challenge inactive", err, "user_id", caller.ID, "challenge_id", challengeID)
			writeError(w, http.StatusConflict, "challenge_inactive", "challenge is not active")
		case errors.Is(err, challengedomain.ErrAlreadyCompleted):
			h.log.BusinessError("challenges.complete: already completed", err, "user_id", caller.ID, "challenge_id", challengeID)
			writeError(w, http.StatusConflict, "already_completed", "challenge already completed")
		default:
			h.log.InternalError("challenges.complete: complete failed", err, "user_id", caller.ID, "challenge_id", challengeID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, reward)
}
