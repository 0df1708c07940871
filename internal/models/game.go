package models

import "time"

// Game is a party game listed for guests who have RSVP'd.
type Game struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}
