package timesheet

import (
	"testing"
	"time"

	"worklog/models"
	"worklog/months"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *Service, *models.User) {
	t.Helper()
	svc, db, _ := newTestService(t)
	client := seedClient(t, db, "acme")
	manager := NewSessionManager(svc)
	sess, err := manager.Session(client)
	require.NoError(t, err)
	return sess, svc, client
}

func TestSessionInitialViewSelectsCurrentMonth(t *testing.T) {
	sess, _, _ := newTestSession(t)

	view := sess.View()
	assert.Equal(t, months.Key("2025-10"), view.SelectedMonth)
	assert.Equal(t, 2025, view.SelectedYear)
	assert.Equal(t, []int{2025, 2024, 2023, 2022, 2021}, view.Years)
	assert.Len(t, view.Months, 12)
	assert.False(t, view.Loading)
	assert.False(t, view.Submitted)
	assert.Empty(t, view.Records)
}

func TestSessionManagerReusesSessionPerClient(t *testing.T) {
	svc, db, _ := newTestService(t)
	client := seedClient(t, db, "acme")
	manager := NewSessionManager(svc)

	first, err := manager.Session(client)
	require.NoError(t, err)
	second, err := manager.Session(client)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestSessionAutoFillsOnSelection(t *testing.T) {
	// A submitted September with three employee rows; selecting October
	// populates it with exactly three rows, absence and leave reset.
	svc, db, _ := newTestService(t)
	client := seedClient(t, db, "acme")
	leave := time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC)
	for _, name := range []string{"Ana Pop", "Dan Ilie", "Maria Radu"} {
		record := seedRecord(t, db, client.ID, "2025-09", name, 4000)
		record.AbsenceDays = 2
		record.MedicalLeaveDate = &leave
		require.NoError(t, db.Save(record).Error)
	}
	_, err := svc.Submit(client, "2025-09", "")
	require.NoError(t, err)

	manager := NewSessionManager(svc)
	sess, err := manager.Session(client)
	require.NoError(t, err)
	require.NoError(t, sess.SelectMonth("2025-10"))

	view := sess.View()
	assert.Equal(t, months.Key("2025-10"), view.SelectedMonth)
	require.Len(t, view.Records, 3)
	for _, r := range view.Records {
		assert.Zero(t, r.AbsenceDays)
		assert.Nil(t, r.MedicalLeaveDate)
		assert.Equal(t, "2025-10", r.MonthYear)
	}
}

func TestSessionDoesNotAutoFillSubmittedMonth(t *testing.T) {
	svc, db, _ := newTestService(t)
	client := seedClient(t, db, "acme")
	seedRecord(t, db, client.ID, "2025-08", "Ana Pop", 4000)
	_, err := svc.Submit(client, "2025-09", "")
	require.NoError(t, err)

	manager := NewSessionManager(svc)
	sess, err := manager.Session(client)
	require.NoError(t, err)
	require.NoError(t, sess.SelectMonth("2025-09"))

	view := sess.View()
	assert.True(t, view.Submitted)
	assert.Empty(t, view.Records)
}

func TestSessionSubmitLocksAndMovesSelection(t *testing.T) {
	sess, svc, client := newTestSession(t)
	require.NoError(t, sess.SaveRecord(validInput("Ana Pop")))

	require.NoError(t, sess.Submit("hr@acme.test"))

	// October is locked; the selection falls back to the latest pending
	// month and its records are loaded.
	view := sess.View()
	assert.Equal(t, months.Key("2025-09"), view.SelectedMonth)

	submitted, err := svc.IsSubmitted(client.ID, "2025-10")
	require.NoError(t, err)
	assert.True(t, submitted)

	// Re-selecting the submitted current month bounces straight back:
	// the view never rests on it again.
	require.NoError(t, sess.SelectMonth("2025-10"))
	assert.Equal(t, months.Key("2025-09"), sess.View().SelectedMonth)
}

func TestSessionWritesBlockedAfterSubmit(t *testing.T) {
	sess, _, _ := newTestSession(t)
	require.NoError(t, sess.SelectMonth("2025-08"))
	require.NoError(t, sess.SaveRecord(validInput("Ana Pop")))

	require.NoError(t, sess.Submit(""))

	// A submitted past month keeps the selection, but every mutation
	// against it is rejected.
	view := sess.View()
	assert.Equal(t, months.Key("2025-08"), view.SelectedMonth)
	assert.True(t, view.Submitted)

	recordID := view.Records[0].ID
	assert.ErrorIs(t, sess.SaveRecord(validInput("Dan Ilie")), ErrMonthLocked)
	assert.ErrorIs(t, sess.DeleteRecord(recordID), ErrMonthLocked)
}

func TestSessionSubmitFutureMonthRejected(t *testing.T) {
	sess, svc, client := newTestSession(t)

	// The processor refuses to rest on a future month, so force the
	// operation directly: it must reject before any write.
	_, err := svc.Submit(client, "2031-06", "")
	assert.ErrorIs(t, err, ErrFutureMonth)

	require.NoError(t, sess.Refresh())
	assert.False(t, sess.View().Submitted)
}

func TestSessionNavigateForwardNoOp(t *testing.T) {
	sess, _, _ := newTestSession(t)

	require.NoError(t, sess.Navigate(1))
	assert.Equal(t, months.Key("2025-10"), sess.View().SelectedMonth)

	require.NoError(t, sess.Navigate(-1))
	assert.Equal(t, months.Key("2025-09"), sess.View().SelectedMonth)
}

func TestSessionSelectYearScenario(t *testing.T) {
	sess, _, _ := newTestSession(t)
	require.NoError(t, sess.SelectMonth("2025-06"))

	require.NoError(t, sess.SelectYear(2023))
	view := sess.View()
	assert.Equal(t, months.Key("2023-06"), view.SelectedMonth)
	assert.Equal(t, 2023, view.SelectedYear)
}

func TestSessionLoadFailureKeepsPreviousRecords(t *testing.T) {
	sess, _, _ := newTestSession(t)
	require.NoError(t, sess.SaveRecord(validInput("Ana Pop")))
	require.Len(t, sess.View().Records, 1)

	svcDB := sess.svc.store.db
	require.NoError(t, svcDB.Migrator().DropTable(&models.WorkHoursRecord{}))

	err := sess.Refresh()
	assert.Error(t, err)

	view := sess.View()
	assert.False(t, view.Loading)
	require.Len(t, view.Records, 1)
	assert.Equal(t, "Ana Pop", view.Records[0].EmployeeName)
}

func TestSessionStaleLoadIsDiscarded(t *testing.T) {
	sess, _, _ := newTestSession(t)
	require.NoError(t, sess.SaveRecord(validInput("Ana Pop")))
	require.Len(t, sess.View().Records, 1)

	// A load starts for October, then the user navigates away before the
	// response lands. The late result must not overwrite anything.
	gen, key := sess.beginLoad()
	require.NoError(t, sess.Navigate(-1))

	result := sess.applyLoad(gen, key, nil, nil)
	assert.Equal(t, loadStale, result)

	view := sess.View()
	assert.Equal(t, months.Key("2025-09"), view.SelectedMonth)
}
