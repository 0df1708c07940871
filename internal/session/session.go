// Package session keeps per-visitor party state on the server and ties it to
// a signed browser cookie.
package session

// Session is the state remembered for one visitor.
type Session struct {
	Token string

	// RSVP unlocks the party address and the games list.
	RSVP bool
	// Name is the guest name given on the RSVP form.
	Name string
	// Flashes are one-time notices shown on the next page render.
	Flashes []string
}

// AddFlash queues msg for the next page render.
func (s *Session) AddFlash(msg string) {
	s.Flashes = append(s.Flashes, msg)
}

// PopFlashes returns and clears the queued notices.
func (s *Session) PopFlashes() []string {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

func (s Session) clone() Session {
	if s.Flashes != nil {
		s.Flashes = append([]string(nil), s.Flashes...)
	}
	return s
}
