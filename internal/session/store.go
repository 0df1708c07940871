package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTimeout is used when a Store is built without an idle timeout.
const DefaultIdleTimeout = 24 * time.Hour

// Store holds active sessions keyed by token. It is safe for concurrent use.
// Sessions untouched for longer than the idle timeout are forgotten.
type Store struct {
	mu        sync.Mutex
	sessions  map[string]entry
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type entry struct {
	sess     Session
	lastSeen time.Time
}

// NewStore returns an empty Store. A non-positive idleTimeout selects
// DefaultIdleTimeout.
func NewStore(idleTimeout time.Duration) *Store {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Store{
		sessions: make(map[string]entry),
		idle:     idleTimeout,
		now:      time.Now,
	}
}

// IdleTimeout reports how long an untouched session is kept.
func (s *Store) IdleTimeout() time.Duration {
	return s.idle
}

// Get returns a copy of the session stored under token and marks it as seen.
func (s *Store) Get(token string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.liveLocked(token, s.now())
	if !ok {
		return nil, false
	}
	c := e.sess.clone()
	return &c, true
}

// Save stores a copy of sess, assigning a fresh token when it has none.
func (s *Store) Save(sess *Session) error {
	if sess.Token == "" {
		token, err := newToken()
		if err != nil {
			return err
		}
		sess.Token = token
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	s.sessions[sess.Token] = entry{sess: sess.clone(), lastSeen: now}
	return nil
}

// Update applies fn to the session stored under token and saves the result
// while holding the store lock, so concurrent updates to one session are
// never lost. An unknown or expired token starts a new session with a new
// token. fn must not keep the pointer it is given.
func (s *Store) Update(token string, fn func(*Session)) (*Session, error) {
	return s.update(token, false, fn)
}

// Renew is Update, except the session always moves to a new token and the
// old token stops working.
func (s *Store) Renew(token string, fn func(*Session)) (*Session, error) {
	return s.update(token, true, fn)
}

func (s *Store) update(token string, renew bool, fn func(*Session)) (*Session, error) {
	fresh, err := newToken()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)

	var sess Session
	e, ok := s.liveLocked(token, now)
	if ok {
		sess = e.sess.clone()
	}
	fn(&sess)

	if ok && !renew {
		sess.Token = token
	} else {
		delete(s.sessions, token)
		sess.Token = fresh
	}
	s.sessions[sess.Token] = entry{sess: sess.clone(), lastSeen: now}

	out := sess.clone()
	return &out, nil
}

// Delete removes the session stored under token.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Len reports the number of stored sessions, expired ones included until the
// next sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// liveLocked returns the unexpired entry for token and refreshes its
// lastSeen. Expired entries are dropped.
func (s *Store) liveLocked(token string, now time.Time) (entry, bool) {
	if token == "" {
		return entry{}, false
	}
	e, ok := s.sessions[token]
	if !ok {
		return entry{}, false
	}
	if now.Sub(e.lastSeen) > s.idle {
		delete(s.sessions, token)
		return entry{}, false
	}
	e.lastSeen = now
	s.sessions[token] = e
	return e, true
}

// sweepLocked drops every expired session, at most once per minute (or per
// idle timeout, when that is shorter).
func (s *Store) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < min(s.idle, time.Minute) {
		return
	}
	s.lastSweep = now
	for token, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.idle {
			delete(s.sessions, token)
		}
	}
}

func newToken() (string, error) {
	token, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return token.String(), nil
}
