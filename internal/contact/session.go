package contact

import (
	"errors"
	"sync"
	"time"
)

// Status of a visitor's form.
type Status int

const (
	Idle Status = iota
	Sending
	Sent
)

func (s Status) String() string {
	switch s {
	case Sending:
		return "sending"
	case Sent:
		return "sent"
	default:
		return "idle"
	}
}

var (
	// ErrBusy is returned when a transmission is already in flight.
	ErrBusy = errors.New("transmission in progress")
	// ErrAlreadySent is returned when the form has not been reset since
	// the last transmission.
	ErrAlreadySent = errors.New("transmission already received")
)

type sessionState struct {
	status  Status
	updated time.Time
}

// Sessions tracks the form status per visitor session. Idle sessions are
// not stored; finished ones expire after ttl. At most limit sessions are
// held: when full, the oldest finished one is forgotten to make room.
type Sessions struct {
	mu    sync.Mutex
	state map[string]sessionState
	ttl   time.Duration
	limit int
	now   func() time.Time
}

func NewSessions(ttl time.Duration, limit int) *Sessions {
	return &Sessions{
		state: make(map[string]sessionState),
		ttl:   ttl,
		limit: limit,
		now:   time.Now,
	}
}

// Status returns the current status of a session.
func (s *Sessions) Status(id string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(id)
}

func (s *Sessions) lookup(id string) Status {
	st, ok := s.state[id]
	if !ok {
		return Idle
	}
	if st.status == Sent && s.now().Sub(st.updated) > s.ttl {
		delete(s.state, id)
		return Idle
	}
	return st.status
}

// Begin moves an idle session to sending.
func (s *Sessions) Begin(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expire()
	switch s.lookup(id) {
	case Sending:
		return ErrBusy
	case Sent:
		return ErrAlreadySent
	}
	if len(s.state) >= s.limit && !s.evictOldest() {
		return ErrBusy
	}
	s.state[id] = sessionState{status: Sending, updated: s.now()}
	return nil
}

// Finish records the outcome of a transmission started with Begin: sent
// on success, back to idle on failure.
func (s *Sessions) Finish(id string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.state[id] = sessionState{status: Sent, updated: s.now()}
		return
	}
	delete(s.state, id)
}

// Reset returns a session to idle.
func (s *Sessions) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state, id)
}

// Len reports how many non-idle sessions are tracked.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state)
}

// expire drops finished sessions past their ttl. Callers hold mu.
func (s *Sessions) expire() {
	now := s.now()
	for id, st := range s.state {
		if st.status == Sent && now.Sub(st.updated) > s.ttl {
			delete(s.state, id)
		}
	}
}

// evictOldest drops the least recently finished session and reports
// whether one was found. In-flight sessions are never dropped. Callers
// hold mu.
func (s *Sessions) evictOldest() bool {
	var (
		oldest string
		at     time.Time
		found  bool
	)
	for id, st := range s.state {
		if st.status != Sent {
			continue
		}
		if !found || st.updated.Before(at) {
			oldest, at, found = id, st.updated, true
		}
	}
	if found {
		delete(s.state, oldest)
	}
	return found
}
