package notify

import (
	"io"
	"testing"

	"worklog/database"
	"worklog/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return f.err
}

func setupDispatcher(t *testing.T) (*Dispatcher, *fakeMailer, *gorm.DB) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	log := logrus.New()
	log.SetOutput(io.Discard)

	mailer := &fakeMailer{}
	return NewDispatcher(db, mailer, log), mailer, db
}

func testClient() *models.User {
	return &models.User{ID: 7, Username: "acme", CompanyName: "Acme SRL", Role: models.RoleClient}
}

func TestMonthSubmittedWritesAuditAndMails(t *testing.T) {
	dispatcher, mailer, db := setupDispatcher(t)

	err := dispatcher.MonthSubmitted(testClient(), "2025-10", "hr@acme.test")
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "hr@acme.test", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Subject, "2025-10")
	assert.Contains(t, mailer.sent[0].Body, "Acme SRL")

	var entries []models.AuditLog
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.EqualValues(t, 7, entries[0].ActorID)
	assert.Equal(t, models.AuditActionSubmitMonth, entries[0].Action)
	assert.Equal(t, models.AuditCategoryPayroll, entries[0].Category)
	assert.Equal(t, models.AuditSeverityInfo, entries[0].Severity)
	assert.Equal(t, "2025-10", entries[0].MonthYear)
}

func TestMailFailureStillLeavesAuditTrail(t *testing.T) {
	dispatcher, mailer, db := setupDispatcher(t)
	mailer.err = assert.AnError

	err := dispatcher.MonthSubmitted(testClient(), "2025-10", "hr@acme.test")
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	dispatcher, _, _ := setupDispatcher(t)
	require.NoError(t, dispatcher.MonthSubmitted(testClient(), "2025-09", "hr@acme.test"))
	require.NoError(t, dispatcher.MonthSubmitted(testClient(), "2025-10", "hr@acme.test"))

	entries, err := dispatcher.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
