package handlers

import (
	"net/http"
	"strconv"

	"worklog/notify"
)

type AuditHandler struct {
	dispatcher *notify.Dispatcher
}

func NewAuditHandler(dispatcher *notify.Dispatcher) *AuditHandler {
	return &AuditHandler{dispatcher: dispatcher}
}

func (h *AuditHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	entries, err := h.dispatcher.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load audit log")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
