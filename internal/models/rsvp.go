package models

import "time"

// RSVP is one reply submitted through the homepage form.
type RSVP struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}
