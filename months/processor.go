package months

import "time"

// Processor owns the currently selected month/year and regenerates the
// annotated month list whenever the submission set or the selection changes.
// The clock is injected so tests can pin the current month.
type Processor struct {
	now       func() time.Time
	submitted map[Key]bool
	year      int
	selected  Key
}

func NewProcessor(now func() time.Time) *Processor {
	if now == nil {
		now = time.Now
	}
	current := KeyFor(now())
	return &Processor{
		now:       now,
		submitted: map[Key]bool{},
		year:      current.Year(),
		selected:  current,
	}
}

// SetSubmissions replaces the known submission set and re-derives the
// selection (a submit on the current month moves the selection off it).
func (p *Processor) SetSubmissions(keys []Key) {
	p.submitted = make(map[Key]bool, len(keys))
	for _, k := range keys {
		p.submitted[k] = true
	}
	p.correctSelection()
}

func (p *Processor) Selected() Key {
	return p.selected
}

func (p *Processor) Year() int {
	return p.year
}

func (p *Processor) Years() []int {
	return Years(p.now())
}

// Months returns the annotated list for the selected year.
func (p *Processor) Months() []Month {
	return MonthsOfYear(p.year, p.now(), p.submitted)
}

func (p *Processor) Submitted(k Key) bool {
	return p.submitted[k]
}

// SelectMonth moves the selection to the given month. Selecting a future
// month is a no-op, mirroring forward navigation.
func (p *Processor) SelectMonth(k Key) {
	if k.After(KeyFor(p.now())) {
		return
	}
	p.selected = k
	p.year = k.Year()
}

// SelectYear keeps the month-of-year where possible; when that month would
// be in the future for the requested year, it falls back to the latest
// non-future month of that year (December for past years, the current
// month for the present one).
func (p *Processor) SelectYear(year int) {
	p.year = year
	current := KeyFor(p.now())
	candidate := KeyOf(year, p.selected.Month())
	if candidate.After(current) {
		if year < current.Year() {
			candidate = KeyOf(year, time.December)
		} else {
			candidate = current
		}
	}
	p.selected = candidate
	p.correctSelection()
}

// Navigate moves the selection by one calendar month. Forward navigation
// that would land on a future month leaves the selection unchanged.
func (p *Processor) Navigate(direction int) {
	var candidate Key
	if direction >= 0 {
		candidate = p.selected.Next()
		if candidate.After(KeyFor(p.now())) {
			return
		}
	} else {
		candidate = p.selected.Prev()
	}
	p.selected = candidate
	p.year = candidate.Year()
}

// correctSelection reassigns the selection when it rests on a month the UI
// must not stay on: a future month, or the real current month right after
// it was submitted. The replacement is the most recent non-future month of
// the selected year, preferring one that is still pending; if the year has
// no non-future month at all the selection is left as-is.
func (p *Processor) correctSelection() {
	current := KeyFor(p.now())
	submittedCurrent := p.selected == current && p.submitted[p.selected]
	if !submittedCurrent && !p.selected.After(current) {
		return
	}

	list := MonthsOfYear(p.year, p.now(), p.submitted)
	var latest, latestPending *Month
	for i := range list {
		m := list[i]
		if m.IsFutureMonth {
			continue
		}
		latest = &list[i]
		if m.Status == StatusPending {
			latestPending = &list[i]
		}
	}
	switch {
	case submittedCurrent && latestPending != nil:
		p.selected = latestPending.Key
	case latest != nil:
		p.selected = latest.Key
	}
}
