package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"worklog/middleware"
	"worklog/models"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// EmployeeHandler serves the HR directory: clients read their active
// employees for the record form's picker, admins provision entries.
type EmployeeHandler struct {
	db *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var employees []models.Employee
	err := h.db.
		Where("client_id = ? AND active = ?", user.ID, true).
		Order("full_name asc").
		Find(&employees).Error
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load employees")
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

type createEmployeeRequest struct {
	ClientID    uint   `json:"client_id"`
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ClientID == 0 || req.FullName == "" {
		writeError(w, http.StatusUnprocessableEntity, "client_id and full_name are required")
		return
	}

	employee := models.Employee{
		ClientID:    req.ClientID,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
		Active:      true,
	}
	if err := h.db.Create(&employee).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create employee")
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

// Deactivate marks the employee as terminated. Directory entries are never
// hard-deleted; work-hours rows may still reference them.
func (h *EmployeeHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}
	employee.Active = false
	if err := h.db.Save(&employee).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update employee")
		return
	}
	writeJSON(w, http.StatusOK, employee)
}
