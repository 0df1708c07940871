package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/magicunicorn/party/internal/models"
)

// CreateRSVP records a guest reply and returns it with its ID and timestamp.
func CreateRSVP(ctx context.Context, db *sqlx.DB, rsvp *models.RSVP) (*models.RSVP, error) {
	var id int64
	query := db.Rebind("INSERT INTO rsvps (name, email) VALUES (?, ?) RETURNING id")
	if err := db.QueryRowxContext(ctx, query, rsvp.Name, rsvp.Email).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert rsvp: %w", err)
	}
	return GetRSVPByID(ctx, db, id)
}

// GetRSVPByID retrieves a reply by its ID. A missing reply yields sql.ErrNoRows.
func GetRSVPByID(ctx context.Context, db *sqlx.DB, id int64) (*models.RSVP, error) {
	rsvp := &models.RSVP{}
	query := db.Rebind("SELECT id, name, email, created_at FROM rsvps WHERE id = ?")
	if err := db.GetContext(ctx, rsvp, query, id); err != nil {
		return nil, fmt.Errorf("get rsvp %d: %w", id, err)
	}
	return rsvp, nil
}

// GetAllRSVPs retrieves every reply, oldest first.
func GetAllRSVPs(ctx context.Context, db *sqlx.DB) ([]*models.RSVP, error) {
	var rsvps []*models.RSVP
	err := db.SelectContext(ctx, &rsvps, `
		SELECT id, name, email, created_at
		FROM rsvps
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	return rsvps, nil
}

// CountRSVPs returns the number of replies received.
func CountRSVPs(ctx context.Context, db *sqlx.DB) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM rsvps"); err != nil {
		return 0, fmt.Errorf("count rsvps: %w", err)
	}
	return n, nil
}
