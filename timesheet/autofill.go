package timesheet

import (
	"worklog/models"
	"worklog/months"

	"github.com/sirupsen/logrus"
)

// AutoFill seeds an empty month from the immediately preceding one. It
// re-checks its own trigger conditions so a caller can invoke it blindly
// after every load: a month with any records, a locked month, or an empty
// previous month all make it a no-op. Returns the number of seeded rows.
//
// Identity and salary fields carry forward; absence days and medical leave
// start fresh (the store's previous-month projection already reset them).
// The batch insert is atomic: a failure seeds nothing.
func (s *Service) AutoFill(client *models.User, key months.Key) (int, error) {
	current, err := s.store.Records(client.ID, key)
	if err != nil {
		return 0, err
	}
	if len(current) > 0 {
		return 0, nil
	}

	submitted, err := s.store.HasSubmission(client.ID, key)
	if err != nil {
		return 0, err
	}
	if submitted {
		return 0, nil
	}

	previous, err := s.store.PreviousMonth(client.ID, key)
	if err != nil {
		return 0, err
	}
	if len(previous) == 0 {
		return 0, nil
	}

	seeds := make([]models.WorkHoursRecord, 0, len(previous))
	for _, p := range previous {
		seeds = append(seeds, models.WorkHoursRecord{
			ClientID:     client.ID,
			MonthYear:    key.String(),
			EmployeeID:   p.EmployeeID,
			EmployeeName: p.EmployeeName,
			CompanyName:  p.CompanyName,
			GrossSalary:  p.GrossSalary,
			Notes:        p.Notes,
		})
	}
	if err := s.store.SeedRecords(seeds); err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"client_id": client.ID,
		"month":     key.String(),
		"rows":      len(seeds),
	}).Info("auto-filled month from previous month")
	return len(seeds), nil
}
