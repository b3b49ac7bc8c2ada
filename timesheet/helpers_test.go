package timesheet

import (
	"io"
	"testing"
	"time"

	"worklog/database"
	"worklog/models"
	"worklog/months"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testNow pins the real-world clock: all tests run "in" October 2025.
var testNow = time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type notifierCall struct {
	ClientID  uint
	Key       months.Key
	Recipient string
}

type fakeNotifier struct {
	calls []notifierCall
	err   error
}

func (f *fakeNotifier) MonthSubmitted(client *models.User, key months.Key, recipient string) error {
	f.calls = append(f.calls, notifierCall{ClientID: client.ID, Key: key, Recipient: recipient})
	return f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService(t *testing.T) (*Service, *gorm.DB, *fakeNotifier) {
	t.Helper()
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewService(NewStore(db), notifier, quietLogger(), "payroll@default.test")
	svc.SetClock(func() time.Time { return testNow })
	return svc, db, notifier
}

func seedClient(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		CompanyName:  username + " SRL",
		PasswordHash: "x",
		Role:         models.RoleClient,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedRecord(t *testing.T, db *gorm.DB, clientID uint, key months.Key, name string, salary float64) *models.WorkHoursRecord {
	t.Helper()
	record := models.WorkHoursRecord{
		ClientID:     clientID,
		MonthYear:    key.String(),
		EmployeeName: name,
		GrossSalary:  decimal.NewFromFloat(salary),
	}
	require.NoError(t, db.Create(&record).Error)
	return &record
}
