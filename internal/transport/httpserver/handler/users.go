package handler

import (
	"errors"
	"net/http"
	"strings"

	userdomain "investimon-go/internal/domain/user"
	"investimon-go/internal/transport/httpserver/middleware"
)

type updateProfileRequest struct {
	Name string `json:"name"`
	Age  *int   `json:"age"`
}

type statsResponse struct {
	Balance             int64 `json:"balance"`
	Experience          int   `json:"experience"`
	Level               int   `json:"level"`
	CompletedChallenges int64 `json:"completedChallenges"`
	CollectedCharacters int64 `json:"collectedCharacters"`
}

func (h *Handlers) UserStats(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	account, err := h.Users.GetByID(r.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			h.log.BusinessError("users.stats: user not found", err, "user_id", caller.ID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("users.stats: get user failed", err, "user_id", caller.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	completed, err := h.Challenges.CompletedCount(r.Context(), caller.ID)
	if err != nil {
		h.log.InternalError("users.stats: completed count failed", err, "user_id", caller.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	collected, err := h.Characters.CollectionCount(r.Context(), caller.ID)
	if err != nil {
		h.log.InternalError("users.stats: collection count failed", err, "user_id", caller.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Balance:             account.Balance,
		Experience:          account.Experience,
		Level:               account.Level,
		CompletedChallenges: completed,
		CollectedCharacters: collected,
	})
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	account, err := h.Users.UpdateProfile(r.Context(), caller.ID, req.Name, req.Age)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			h.log.BusinessError("users.update_profile: user not found", err, "user_id", caller.ID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("users.update_profile: update failed", err, "user_id", caller.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, account)
}
