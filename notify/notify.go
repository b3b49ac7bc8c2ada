package notify

import (
	"fmt"
	"net/smtp"
	"time"

	"worklog/models"
	"worklog/months"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Mailer delivers a single message. net/smtp backs the real one; tests
// swap in a recorder.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	Addr string
	From string
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body)
	return smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg))
}

// Dispatcher is the notification collaborator: it emails the payroll
// contact and appends the audit trail entry. The audit row is written
// first; a mail failure still leaves the trail intact.
type Dispatcher struct {
	db     *gorm.DB
	mailer Mailer
	log    *logrus.Logger
}

func NewDispatcher(db *gorm.DB, mailer Mailer, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{db: db, mailer: mailer, log: log}
}

func (d *Dispatcher) MonthSubmitted(client *models.User, key months.Key, recipient string) error {
	entry := models.AuditLog{
		ID:        uuid.NewString(),
		ActorID:   client.ID,
		Action:    models.AuditActionSubmitMonth,
		Category:  models.AuditCategoryPayroll,
		Severity:  models.AuditSeverityInfo,
		MonthYear: key.String(),
		Details:   fmt.Sprintf("monthly report %s submitted by %s", key, client.Username),
		CreatedAt: time.Now(),
	}
	if err := d.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log: %w", err)
	}

	d.log.WithFields(logrus.Fields{
		"actor_id": client.ID,
		"action":   entry.Action,
		"month":    key.String(),
		"to":       recipient,
	}).Info("monthly report submitted")

	subject := fmt.Sprintf("Monthly report %s submitted", key)
	body := fmt.Sprintf(
		"The monthly working hours report for %s has been submitted by %s and is now locked.",
		key, client.CompanyName,
	)
	if err := d.mailer.Send(recipient, subject, body); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// Recent returns the newest audit entries, for the admin trail view.
func (d *Dispatcher) Recent(limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := d.db.Order("created_at desc").Limit(limit).Find(&entries).Error
	return entries, err
}
