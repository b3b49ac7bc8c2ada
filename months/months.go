package months

import (
	"fmt"
	"time"
)

// Key is the canonical "YYYY-MM" identifier for a calendar month bucket.
// Keys compare chronologically as plain strings.
type Key string

func KeyFor(t time.Time) Key {
	return Key(t.Format("2006-01"))
}

func KeyOf(year int, month time.Month) Key {
	return Key(fmt.Sprintf("%04d-%02d", year, month))
}

func ParseKey(s string) (Key, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return "", fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return KeyFor(t), nil
}

// Time returns the first-of-month instant in UTC.
func (k Key) Time() time.Time {
	t, _ := time.Parse("2006-01", string(k))
	return t
}

func (k Key) Year() int {
	return k.Time().Year()
}

func (k Key) Month() time.Month {
	return k.Time().Month()
}

func (k Key) Prev() Key {
	return KeyFor(k.Time().AddDate(0, -1, 0))
}

func (k Key) Next() Key {
	return KeyFor(k.Time().AddDate(0, 1, 0))
}

func (k Key) After(other Key) bool {
	return string(k) > string(other)
}

func (k Key) String() string {
	return string(k)
}

type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusPending   Status = "pending"
)

// Month is the annotated view entity for a single calendar month. It is
// derived, never persisted, and regenerated whenever submissions or the
// selected year change.
type Month struct {
	Date           time.Time `json:"date"`
	Key            Key       `json:"key"`
	Status         Status    `json:"status"`
	IsCurrentMonth bool      `json:"is_current_month"`
	IsFutureMonth  bool      `json:"is_future_month"`
}

// YearSpan is how far back the console lets a client browse.
const YearSpan = 5

// Years returns the last YearSpan calendar years, current year first.
func Years(now time.Time) []int {
	years := make([]int, YearSpan)
	for i := 0; i < YearSpan; i++ {
		years[i] = now.Year() - i
	}
	return years
}

// MonthsOfYear annotates every month of the given year against the real
// current month and the set of submitted keys.
func MonthsOfYear(year int, now time.Time, submitted map[Key]bool) []Month {
	current := KeyFor(now)
	out := make([]Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		key := KeyOf(year, m)
		status := StatusPending
		if submitted[key] {
			status = StatusSubmitted
		}
		out = append(out, Month{
			Date:           key.Time(),
			Key:            key,
			Status:         status,
			IsCurrentMonth: key == current,
			IsFutureMonth:  key.After(current),
		})
	}
	return out
}
