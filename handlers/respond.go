package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"worklog/timesheet"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeOperationError maps workflow errors onto HTTP statuses: validation
// rejections are 422, lock conflicts 409, unknown records 404, anything
// else a backend failure.
func writeOperationError(w http.ResponseWriter, err error) {
	switch {
	case timesheet.IsValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, timesheet.ErrMonthLocked), errors.Is(err, timesheet.ErrAlreadySubmitted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, timesheet.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
