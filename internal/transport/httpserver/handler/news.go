package handler

import (
	"net/http"
	"strconv"
)

func (h *Handlers) NewsFeed(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	items, err := h.News.Latest(r.Context(), limit)
	if err != nil {
		h.log.InternalError("news.feed: list failed", err, "limit", limit)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}
