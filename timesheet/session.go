package timesheet

import (
	"sync"

	"worklog/models"
	"worklog/months"
)

type LoadState string

const (
	LoadIdle    LoadState = "idle"
	LoadLoading LoadState = "loading"
	LoadReady   LoadState = "ready"
)

// Session is the per-client view-model behind the monthly hours screen. It
// owns the month processor, the cached record set and the load state, and
// runs the auto-fill engine after each completed load.
//
// Each load carries a generation number; a result whose generation no
// longer matches is dropped, so a slow response can never overwrite the
// state of a month the client has already navigated away from.
type Session struct {
	mu      sync.Mutex
	svc     *Service
	client  *models.User
	proc    *months.Processor
	records []models.WorkHoursRecord
	state   LoadState
	gen     uint64
}

func newSession(svc *Service, client *models.User) *Session {
	return &Session{
		svc:    svc,
		client: client,
		proc:   months.NewProcessor(svc.now),
		state:  LoadIdle,
	}
}

// View is the snapshot handed to the UI layer.
type View struct {
	SelectedMonth months.Key               `json:"selected_month"`
	SelectedYear  int                      `json:"selected_year"`
	Years         []int                    `json:"years"`
	Months        []months.Month           `json:"months"`
	Records       []models.WorkHoursRecord `json:"records"`
	Loading       bool                     `json:"loading"`
	Submitted     bool                     `json:"submitted"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]models.WorkHoursRecord, len(s.records))
	copy(records, s.records)
	selected := s.proc.Selected()
	return View{
		SelectedMonth: selected,
		SelectedYear:  s.proc.Year(),
		Years:         s.proc.Years(),
		Months:        s.proc.Months(),
		Records:       records,
		Loading:       s.state == LoadLoading,
		Submitted:     s.proc.Submitted(selected),
	}
}

// Refresh re-derives the whole view: submissions, the selected month's
// records, the selection correction, and the auto-fill pass. A read failure
// keeps the previously loaded records in place.
func (s *Session) Refresh() error {
	// Selection correction and auto-fill each force one more load; two
	// extra passes is the most a single refresh can legitimately need.
	for i := 0; i < 4; i++ {
		again, err := s.refreshOnce()
		if err != nil || !again {
			return err
		}
	}
	return nil
}

type loadResult int

const (
	loadApplied loadResult = iota
	loadStale
	loadMoved
)

func (s *Session) refreshOnce() (bool, error) {
	gen, key := s.beginLoad()

	submissions, err := s.svc.Submissions(s.client.ID)
	if err != nil {
		s.finishLoad(gen)
		return false, err
	}
	records, err := s.svc.Records(s.client.ID, key)
	if err != nil {
		s.finishLoad(gen)
		return false, err
	}

	keys := make([]months.Key, 0, len(submissions))
	for _, sub := range submissions {
		if k, perr := months.ParseKey(sub.MonthYear); perr == nil {
			keys = append(keys, k)
		}
	}

	switch s.applyLoad(gen, key, records, keys) {
	case loadStale:
		return false, nil
	case loadMoved:
		// Correction moved the selection; the loaded records belong to
		// the old month.
		return true, nil
	}

	// Auto-fill runs only once the month's own load has finished.
	s.mu.Lock()
	submitted := s.proc.Submitted(key)
	s.mu.Unlock()
	if len(records) == 0 && !submitted {
		seeded, err := s.svc.AutoFill(s.client, key)
		if err != nil {
			return false, err
		}
		if seeded > 0 {
			return true, nil
		}
	}
	return false, nil
}

// beginLoad opens a load generation for the currently selected month.
func (s *Session) beginLoad() (uint64, months.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = LoadLoading
	return s.gen, s.proc.Selected()
}

// applyLoad installs a completed load, unless a newer load superseded it
// or the selection correction moved away from the loaded month.
func (s *Session) applyLoad(gen uint64, key months.Key, records []models.WorkHoursRecord, submitted []months.Key) loadResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return loadStale
	}
	s.proc.SetSubmissions(submitted)
	if s.proc.Selected() != key {
		return loadMoved
	}
	s.records = records
	s.state = LoadReady
	return loadApplied
}

func (s *Session) finishLoad(gen uint64) {
	s.mu.Lock()
	if gen == s.gen {
		s.state = LoadReady
	}
	s.mu.Unlock()
}

func (s *Session) SelectMonth(key months.Key) error {
	s.mu.Lock()
	s.proc.SelectMonth(key)
	s.mu.Unlock()
	return s.Refresh()
}

func (s *Session) SelectYear(year int) error {
	s.mu.Lock()
	s.proc.SelectYear(year)
	s.mu.Unlock()
	return s.Refresh()
}

func (s *Session) Navigate(direction int) error {
	s.mu.Lock()
	s.proc.Navigate(direction)
	s.mu.Unlock()
	return s.Refresh()
}

func (s *Session) Selected() months.Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proc.Selected()
}

func (s *Session) SaveRecord(in RecordInput) error {
	if _, err := s.svc.SaveRecord(s.client, s.Selected(), in); err != nil {
		return err
	}
	return s.Refresh()
}

func (s *Session) DeleteRecord(id uint) error {
	if err := s.svc.DeleteRecord(s.client, s.Selected(), id); err != nil {
		return err
	}
	return s.Refresh()
}

func (s *Session) Submit(hrEmail string) error {
	if _, err := s.svc.Submit(s.client, s.Selected(), hrEmail); err != nil {
		return err
	}
	return s.Refresh()
}

// SessionManager hands out one session per authenticated client. Identity
// is threaded in explicitly; nothing here reads ambient state.
type SessionManager struct {
	mu       sync.Mutex
	svc      *Service
	sessions map[uint]*Session
}

func NewSessionManager(svc *Service) *SessionManager {
	return &SessionManager{
		svc:      svc,
		sessions: make(map[uint]*Session),
	}
}

// Session returns the client's session, creating and loading it on first
// access. A failed initial load still yields a usable (empty) session; the
// error is surfaced for the caller to report.
func (m *SessionManager) Session(client *models.User) (*Session, error) {
	m.mu.Lock()
	sess, ok := m.sessions[client.ID]
	if !ok {
		sess = newSession(m.svc, client)
		m.sessions[client.ID] = sess
	}
	m.mu.Unlock()

	if !ok {
		if err := sess.Refresh(); err != nil {
			return sess, err
		}
	}
	return sess, nil
}
