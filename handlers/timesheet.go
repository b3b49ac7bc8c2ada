package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"worklog/middleware"
	"worklog/months"
	"worklog/timesheet"

	"github.com/go-chi/chi/v5"
)

// TimesheetHandler exposes the monthly hours view-model and its five
// operations: select month, select year, navigate, save/delete record,
// submit.
type TimesheetHandler struct {
	sessions *timesheet.SessionManager
}

func NewTimesheetHandler(sessions *timesheet.SessionManager) *TimesheetHandler {
	return &TimesheetHandler{sessions: sessions}
}

func (h *TimesheetHandler) session(w http.ResponseWriter, r *http.Request) (*timesheet.Session, bool) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	sess, err := h.sessions.Session(user)
	if err != nil {
		// The previous in-memory state is preserved; report and keep going.
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return sess, true
}

func (h *TimesheetHandler) View(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

type selectYearRequest struct {
	Year int `json:"year"`
}

func (h *TimesheetHandler) SelectYear(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req selectYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Year < 2000 || req.Year > 2100 {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	if err := sess.SelectYear(req.Year); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

type selectMonthRequest struct {
	Month string `json:"month"`
}

func (h *TimesheetHandler) SelectMonth(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req selectMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	key, err := months.ParseKey(req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month key")
		return
	}
	if err := sess.SelectMonth(key); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

type navigateRequest struct {
	Direction string `json:"direction"`
}

func (h *TimesheetHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var direction int
	switch req.Direction {
	case "next":
		direction = 1
	case "prev":
		direction = -1
	default:
		writeError(w, http.StatusBadRequest, "direction must be next or prev")
		return
	}
	if err := sess.Navigate(direction); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

func (h *TimesheetHandler) SaveRecord(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var in timesheet.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := sess.SaveRecord(in); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

func (h *TimesheetHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}
	if err := sess.DeleteRecord(uint(id)); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

type submitRequest struct {
	HREmail string `json:"hr_email"`
}

func (h *TimesheetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := sess.Submit(req.HREmail); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}
