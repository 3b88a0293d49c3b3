package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
	linkingdomain "investimon-go/internal/domain/linking"
	"investimon-go/internal/transport/httpserver/middleware"
)

type redeemInviteRequest struct {
	Code string `json:"code"`
}

func (h *Handlers) CreateInvite(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	invite, err := h.Linking.CreateInviteCode(r.Context(), caller.ID)
	if err != nil {
		switch {
		case errors.Is(err, linkingdomain.ErrUserNotFound):
			h.log.BusinessError("invites.create: user not found", err, "user_id", caller.ID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		case errors.Is(err, linkingdomain.ErrNotGuardian):
			h.log.BusinessError("invites.create: not a guardian", err, "user_id", caller.ID)
			writeError(w, http.StatusForbidden, "not_guardian", "only parents and teachers can create invites")
		default:
			h.log.InternalError("invites.create: create failed", err, "user_id", caller.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, invite)
}

// InviteQR renders the invite code as a PNG so guardians can share it
// out of band.
func (h *Handlers) InviteQR(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
	if code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code is required")
		return
	}

	invite, err := h.Linking.InviteByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, linkingdomain.ErrInviteNotFound) {
			h.log.BusinessError("invites.qr: invite not found", err, "code", code)
			writeError(w, http.StatusNotFound, "invite_not_found", "invalid invite code")
			return
		}
		h.log.InternalError("invites.qr: get invite failed", err, "code", code)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	png, err := qrcode.Encode(invite.Code, qrcode.Medium, 256)
	if err != nil {
		h.log.InternalError("invites.qr: encode failed", err, "code", code)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handlers) RedeemInvite(w http.ResponseWriter, r *http.Request) {
	var req redeemInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code is required")
		return
	}

	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Linking.LinkChildToParent(r.Context(), caller.ID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, linkingdomain.ErrInviteNotFound):
			h.log.BusinessError("invites.redeem: invite not found", err, "user_id", caller.ID, "code", req.Code)
			writeError(w, http.StatusNotFound, "invite_not_found", "invalid invite code")
		case errors.Is(err, linkingdomain.ErrInviteUsed):
			h.log.BusinessError("invites.redeem: invite already used", err, "user_id", caller.ID, "code", req.Code)
			writeError(w, http.StatusConflict, "invite_used", "invite code already used")
		case errors.Is(err, linkingdomain.ErrInviteExpired):
			h.log.BusinessError("invites.redeem: invite expired", err, "user_id", caller.ID, "code", req.Code)
			writeError(w, http.StatusGone, "invite_expired", "invite code expired")
		case errors.Is(err, linkingdomain.ErrUserNotFound):
			h.log.BusinessError("invites.redeem: user not found", err, "user_id", caller.ID, "code", req.Code)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		default:
			h.log.InternalError("invites.redeem: redeem failed", err, "user_id", caller.ID, "code", req.Code)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
