package timesheet

import (
	"errors"
	"time"

	"worklog/models"
	"worklog/months"

	"gorm.io/gorm"
)

// Store is the accessor for the two core tables: work-hours line items and
// monthly submission records. It is deliberately gate-free; the future-month
// and lock rules live in Service, not here.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Records loads the month's line items, ordered by employee name ascending.
func (s *Store) Records(clientID uint, key months.Key) ([]models.WorkHoursRecord, error) {
	var records []models.WorkHoursRecord
	err := s.db.
		Where("client_id = ? AND month_year = ?", clientID, key.String()).
		Order("employee_name asc").
		Find(&records).Error
	return records, err
}

// PreviousMonth loads the prior month's rows with the month-specific fields
// already reset: absence days and medical leave never carry forward, only
// identity and salary do.
func (s *Store) PreviousMonth(clientID uint, key months.Key) ([]models.WorkHoursRecord, error) {
	records, err := s.Records(clientID, key.Prev())
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].AbsenceDays = 0
		records[i].MedicalLeaveDate = nil
	}
	return records, nil
}

func (s *Store) CreateRecord(record *models.WorkHoursRecord) error {
	return s.db.Create(record).Error
}

func (s *Store) FindRecord(clientID uint, id uint) (*models.WorkHoursRecord, error) {
	var record models.WorkHoursRecord
	err := s.db.Where("client_id = ?", clientID).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Store) SaveRecord(record *models.WorkHoursRecord) error {
	return s.db.Save(record).Error
}

func (s *Store) DeleteRecord(record *models.WorkHoursRecord) error {
	return s.db.Delete(record).Error
}

// SeedRecords inserts a carry-forward batch atomically. Either the whole
// month is seeded or none of it is.
func (s *Store) SeedRecords(records []models.WorkHoursRecord) error {
	if len(records) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Submissions lists the client's submission records, most recent month first.
func (s *Store) Submissions(clientID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.
		Where("client_id = ?", clientID).
		Order("month_year desc").
		Find(&submissions).Error
	return submissions, err
}

func (s *Store) HasSubmission(clientID uint, key months.Key) (bool, error) {
	var count int64
	err := s.db.Model(&models.Submission{}).
		Where("client_id = ? AND month_year = ?", clientID, key.String()).
		Count(&count).Error
	return count > 0, err
}

// CreateSubmission appends a submission record. The composite unique index
// on (client_id, month_year) turns a double submit into ErrAlreadySubmitted
// even when two sessions raced past the existence check.
func (s *Store) CreateSubmission(clientID uint, key months.Key, hrEmail string, at time.Time) (*models.Submission, error) {
	submission := models.Submission{
		ClientID:    clientID,
		MonthYear:   key.String(),
		HREmail:     hrEmail,
		Locked:      true,
		SubmittedAt: at,
	}
	if err := s.db.Create(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubmitted
		}
		return nil, err
	}
	return &submission, nil
}
