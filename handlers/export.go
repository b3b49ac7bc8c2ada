package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"worklog/middleware"
	"worklog/months"
	"worklog/timesheet"
)

// ExportHandler produces the flattened row-per-employee CSV of one month's
// records. Peripheral utility; it goes straight to the service, not through
// the session.
type ExportHandler struct {
	svc *timesheet.Service
}

func NewExportHandler(svc *timesheet.Service) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	key, err := months.ParseKey(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}

	records, err := h.svc.Records(user.ID, key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	filename := fmt.Sprintf("work_hours_%s.csv", key)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"Employee", "Company", "Gross Salary", "Absence Days", "Medical Leave", "Notes"})

	for _, record := range records {
		medicalLeave := ""
		if record.MedicalLeaveDate != nil {
			medicalLeave = record.MedicalLeaveDate.Format("2006-01-02")
		}
		writer.Write([]string{
			record.EmployeeName,
			record.CompanyName,
			record.GrossSalary.StringFixed(2),
			fmt.Sprintf("%d", record.AbsenceDays),
			medicalLeave,
			record.Notes,
		})
	}
}
