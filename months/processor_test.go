package months

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestProcessor(now time.Time) *Processor {
	return NewProcessor(func() time.Time { return now })
}

func TestProcessorDefaultsToCurrentMonth(t *testing.T) {
	p := newTestProcessor(date(2025, time.October, 15))
	assert.Equal(t, Key("2025-10"), p.Selected())
	assert.Equal(t, 2025, p.Year())
}

func TestSelectMonthFutureIsNoOp(t *testing.T) {
	p := newTestProcessor(date(2025, time.October, 15))
	p.SelectMonth(Key("2025-11"))
	assert.Equal(t, Key("2025-10"), p.Selected())

	p.SelectMonth(Key("2025-06"))
	assert.Equal(t, Key("2025-06"), p.Selected())
}

func TestSelectYearKeepsMonthOfYearWhenPast(t *testing.T) {
	// Year selector moved from 2025 to 2023 while June was selected:
	// June 2023 is not future, so the month-of-year sticks.
	p := newTestProcessor(date(2025, time.October, 15))
	p.SelectMonth(Key("2025-06"))

	p.SelectYear(2023)
	assert.Equal(t, Key("2023-06"), p.Selected())
	assert.Equal(t, 2023, p.Year())
}

func TestSelectYearClampsToCurrentMonthInPresentYear(t *testing.T) {
	p := newTestProcessor(date(2025, time.October, 15))
	p.SelectMonth(Key("2024-12"))

	// December 2025 would be in the future; present year clamps to the
	// current month.
	p.SelectYear(2025)
	assert.Equal(t, Key("2025-10"), p.Selected())
}

func TestNavigateForwardFromCurrentMonthIsNoOp(t *testing.T) {
	p := newTestProcessor(date(2025, time.October, 15))
	p.Navigate(1)
	assert.Equal(t, Key("2025-10"), p.Selected())
}

func TestNavigateCrossesYearBoundary(t *testing.T) {
	p := newTestProcessor(date(2025, time.October, 15))
	p.SelectMonth(Key("2025-01"))

	p.Navigate(-1)
	assert.Equal(t, Key("2024-12"), p.Selected())
	assert.Equal(t, 2024, p.Year())

	p.Navigate(1)
	assert.Equal(t, Key("2025-01"), p.Selected())
	assert.Equal(t, 2025, p.Year())
}

func TestSubmittedCurrentMonthMovesSelectionToLatestPending(t *testing.T) {
	p := newTestProcessor(date(2025, time.October, 15))
	p.SetSubmissions([]Key{"2025-10"})

	assert.Equal(t, Key("2025-09"), p.Selected())
	assert.True(t, p.Submitted(Key("2025-10")))
}

func TestSubmittedPastMonthLeavesSelectionAlone(t *testing.T) {
	p := newTestProcessor(date(2025, time.October, 15))
	p.SelectMonth(Key("2025-06"))
	p.SetSubmissions([]Key{"2025-06"})

	assert.Equal(t, Key("2025-06"), p.Selected())
}

func TestSubmittedCurrentMonthSkipsOtherSubmittedMonths(t *testing.T) {
	p := newTestProcessor(date(2025, time.October, 15))
	p.SetSubmissions([]Key{"2025-10", "2025-09", "2025-08"})

	assert.Equal(t, Key("2025-07"), p.Selected())
}

func TestAllNonFutureMonthsSubmittedKeepsSelection(t *testing.T) {
	now := date(2025, time.February, 10)
	p := newTestProcessor(now)
	p.SetSubmissions([]Key{"2025-01", "2025-02"})

	// No pending non-future month exists; the latest non-future one wins.
	assert.Equal(t, Key("2025-02"), p.Selected())
}
