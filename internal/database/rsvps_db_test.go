package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/magicunicorn/party/internal/models"
)

func TestCreateRSVPAndList(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	count, err := CountRSVPs(ctx, db)
	if err != nil {
		t.Fatalf("CountRSVPs() error = %v", err)
	}
	if count != 0 {
		t.Fatalf("CountRSVPs() on fresh schema = %d, want 0", count)
	}

	jane, err := CreateRSVP(ctx, db, &models.RSVP{Name: "Jane", Email: "jane@jane.com"})
	if err != nil {
		t.Fatalf("CreateRSVP() error = %v", err)
	}
	if jane.ID == 0 {
		t.Errorf("CreateRSVP() returned RSVP with ID 0")
	}
	if jane.CreatedAt.IsZero() {
		t.Errorf("CreateRSVP() CreatedAt is zero")
	}

	if _, err := CreateRSVP(ctx, db, &models.RSVP{Name: "Balloonicorn", Email: "balloonicorn@example.com"}); err != nil {
		t.Fatalf("CreateRSVP() second error = %v", err)
	}

	rsvps, err := GetAllRSVPs(ctx, db)
	if err != nil {
		t.Fatalf("GetAllRSVPs() error = %v", err)
	}
	if len(rsvps) != 2 {
		t.Fatalf("GetAllRSVPs() len = %d, want 2", len(rsvps))
	}
	if rsvps[0].Name != "Jane" || rsvps[0].Email != "jane@jane.com" {
		t.Errorf("GetAllRSVPs()[0] = %+v, want Jane first", rsvps[0])
	}

	count, err = CountRSVPs(ctx, db)
	if err != nil {
		t.Fatalf("CountRSVPs() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountRSVPs() = %d, want 2", count)
	}

	if _, err := GetRSVPByID(ctx, db, 4242); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetRSVPByID() for missing ID error = %v, want %v", err, sql.ErrNoRows)
	}
}
