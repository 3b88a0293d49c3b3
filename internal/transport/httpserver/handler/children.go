package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	linkingdomain "investimon-go/internal/domain/linking"
	userdomain "investimon-go/internal/domain/user"
	"investimon-go/internal/transport/httpserver/middleware"
)

type createChildRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      *int   `json:"age"`
}

func (h *Handlers) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req createChildRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "invalid_request", "valid email is required")
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "invalid_request", "password must be at least 6 characters")
		return
	}
	if req.Age == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "age is required")
		return
	}

	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	child, err := h.Linking.CreateChildAccount(r.Context(), caller.ID, linkingdomain.ChildInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		switch {
		case errors.Is(err, linkingdomain.ErrUserNotFound):
			h.log.BusinessError("children.create: parent not found", err, "parent_id", caller.ID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		case errors.Is(err, userdomain.ErrEmailTaken):
			h.log.BusinessError("children.create: email taken", err, "parent_id", caller.ID, "email", req.Email)
			writeError(w, http.StatusConflict, "email_taken", "email already registered")
		default:
			h.log.InternalError("children.create: create failed", err, "parent_id", caller.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, child)
}

func (h *Handlers) ListChildren(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	children, err := h.Linking.ChildrenAccounts(r.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, linkingdomain.ErrUserNotFound) {
			h.log.BusinessError("children.list: parent not found", err, "parent_id", caller.ID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("children.list: list failed", err, "parent_id", caller.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, children)
}

func (h *Handlers) UnlinkChild(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	childID := strings.TrimSpace(chi.URLParam(r, "child_id"))
	if childID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "child_id is required")
		return
	}

	if err := h.Linking.UnlinkChild(r.Context(), caller.ID, childID); err != nil {
		h.log.InternalError("children.unlink: unlink failed", err, "parent_id", caller.ID, "child_id", childID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
