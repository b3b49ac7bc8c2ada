package timesheet

import (
	"errors"
	"fmt"
	"time"

	"worklog/models"
	"worklog/months"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Notifier is the external notification collaborator: it delivers the
// "monthly report submitted" message and records the audit trail entry.
type Notifier interface {
	MonthSubmitted(client *models.User, key months.Key, recipient string) error
}

// Service carries the validated operations of the work-hours workflow.
// Unlike the raw Store, every write here is gated by the future-month rule
// and by the month's lock state.
type Service struct {
	store    *Store
	notifier Notifier
	log      *logrus.Logger
	now      func() time.Time
	validate *validator.Validate

	// defaultPayrollEmail is the service-wide fallback recipient when
	// neither the submission nor the tenant configures one.
	defaultPayrollEmail string
}

func NewService(store *Store, notifier Notifier, log *logrus.Logger, defaultPayrollEmail string) *Service {
	return &Service{
		store:               store,
		notifier:            notifier,
		log:                 log,
		now:                 time.Now,
		validate:            validator.New(),
		defaultPayrollEmail: defaultPayrollEmail,
	}
}

// SetClock pins the current time; tests use it to control what counts as a
// future month.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Records(clientID uint, key months.Key) ([]models.WorkHoursRecord, error) {
	return s.store.Records(clientID, key)
}

func (s *Service) Submissions(clientID uint) ([]models.Submission, error) {
	return s.store.Submissions(clientID)
}

func (s *Service) IsSubmitted(clientID uint, key months.Key) (bool, error) {
	return s.store.HasSubmission(clientID, key)
}

// RecordInput is the form payload for creating or updating a line item.
// A zero ID means insert.
type RecordInput struct {
	ID               uint            `json:"id"`
	EmployeeID       *uint           `json:"employee_id"`
	EmployeeName     string          `json:"employee_name" validate:"required"`
	CompanyName      string          `json:"company_name"`
	GrossSalary      decimal.Decimal `json:"gross_salary"`
	AbsenceDays      int             `json:"absence_days" validate:"gte=0"`
	MedicalLeaveDate *time.Time      `json:"medical_leave_date"`
	Notes            string          `json:"notes" validate:"max=500"`
}

func (s *Service) validateInput(in *RecordInput) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if !in.GrossSalary.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: gross salary must be greater than zero", ErrInvalidRecord)
	}
	return nil
}

// guardWrite applies the shared write preconditions: no month strictly
// after the real current month, no month that has been submitted.
func (s *Service) guardWrite(clientID uint, key months.Key) error {
	if key.After(months.KeyFor(s.now())) {
		return ErrFutureMonth
	}
	submitted, err := s.store.HasSubmission(clientID, key)
	if err != nil {
		return err
	}
	if submitted {
		return ErrMonthLocked
	}
	return nil
}

// SaveRecord inserts or updates one line item in the given month's bucket.
func (s *Service) SaveRecord(client *models.User, key months.Key, in RecordInput) (*models.WorkHoursRecord, error) {
	if err := s.guardWrite(client.ID, key); err != nil {
		return nil, err
	}
	if err := s.validateInput(&in); err != nil {
		return nil, err
	}

	if in.ID != 0 {
		record, err := s.store.FindRecord(client.ID, in.ID)
		if err != nil {
			return nil, err
		}
		if record.MonthYear != key.String() {
			return nil, ErrNotFound
		}
		record.EmployeeID = in.EmployeeID
		record.EmployeeName = in.EmployeeName
		record.CompanyName = in.CompanyName
		record.GrossSalary = in.GrossSalary
		record.AbsenceDays = in.AbsenceDays
		record.MedicalLeaveDate = in.MedicalLeaveDate
		record.Notes = in.Notes
		if err := s.store.SaveRecord(record); err != nil {
			return nil, err
		}
		return record, nil
	}

	record := models.WorkHoursRecord{
		ClientID:         client.ID,
		MonthYear:        key.String(),
		EmployeeID:       in.EmployeeID,
		EmployeeName:     in.EmployeeName,
		CompanyName:      in.CompanyName,
		GrossSalary:      in.GrossSalary,
		AbsenceDays:      in.AbsenceDays,
		MedicalLeaveDate: in.MedicalLeaveDate,
		Notes:            in.Notes,
	}
	if err := s.store.CreateRecord(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteRecord removes one line item from the given month's bucket.
func (s *Service) DeleteRecord(client *models.User, key months.Key, id uint) error {
	if err := s.guardWrite(client.ID, key); err != nil {
		return err
	}
	record, err := s.store.FindRecord(client.ID, id)
	if err != nil {
		return err
	}
	if record.MonthYear != key.String() {
		return ErrNotFound
	}
	return s.store.DeleteRecord(record)
}

// Submit freezes the month: it appends the submission record and fires the
// notification side effect. The submission is durable once the record is
// written; a notification failure is logged, never rolled back. There is no
// inverse operation.
func (s *Service) Submit(client *models.User, key months.Key, hrEmail string) (*models.Submission, error) {
	if key.After(months.KeyFor(s.now())) {
		return nil, ErrFutureMonth
	}

	submission, err := s.store.CreateSubmission(client.ID, key, hrEmail, s.now())
	if err != nil {
		return nil, err
	}

	recipient := s.resolveRecipient(client, hrEmail)
	if err := s.notifier.MonthSubmitted(client, key, recipient); err != nil {
		s.log.WithFields(logrus.Fields{
			"client_id": client.ID,
			"month":     key.String(),
			"recipient": recipient,
		}).WithError(err).Warn("submission notification failed")
	}

	return submission, nil
}

// resolveRecipient picks the single source of truth for the payroll
// contact: an explicit address on the submission wins, then the tenant's
// configured payroll email, then the service-wide default.
func (s *Service) resolveRecipient(client *models.User, hrEmail string) string {
	if hrEmail != "" {
		return hrEmail
	}
	if client.PayrollEmail != "" {
		return client.PayrollEmail
	}
	return s.defaultPayrollEmail
}

// IsValidationError reports whether the error is a pre-write rejection
// rather than a backend failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrFutureMonth) || errors.Is(err, ErrInvalidRecord)
}
