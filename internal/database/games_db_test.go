package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/magicunicorn/party/internal/models"
)

func TestCreateGameAndGetGame(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	game := &models.Game{
		Name:        "Test Game Adventure",
		Description: "A fun game for testing.",
	}

	t.Run("Create and Get Game", func(t *testing.T) {
		createdGame, err := CreateGame(ctx, db, game)
		if err != nil {
			t.Fatalf("CreateGame() error = %v", err)
		}
		if createdGame.ID == 0 {
			t.Errorf("CreateGame() returned game with ID 0")
		}
		if createdGame.Name != game.Name {
			t.Errorf("CreateGame() name = %v, want %v", createdGame.Name, game.Name)
		}
		if createdGame.CreatedAt.IsZero() {
			t.Errorf("CreateGame() CreatedAt is zero")
		}

		retrievedGame, err := GetGameByID(ctx, db, createdGame.ID)
		if err != nil {
			t.Fatalf("GetGameByID() error = %v", err)
		}
		if retrievedGame.Description != game.Description {
			t.Errorf("GetGameByID() description = %v, want %v", retrievedGame.Description, game.Description)
		}
	})

	t.Run("Duplicate name is rejected", func(t *testing.T) {
		if _, err := CreateGame(ctx, db, game); err == nil {
			t.Errorf("CreateGame() with duplicate name expected error")
		}
	})

	t.Run("Get non-existent game", func(t *testing.T) {
		_, err := GetGameByID(ctx, db, 99999)
		if !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("GetGameByID() for non-existent ID error = %v, want %v", err, sql.ErrNoRows)
		}
		_, err = GetGameByName(ctx, db, "tiddlywinks")
		if !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("GetGameByName() for non-existent name error = %v, want %v", err, sql.ErrNoRows)
		}
	})
}

func TestGetAllGames(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	games, err := GetAllGames(ctx, db)
	if err != nil {
		t.Fatalf("GetAllGames() error = %v", err)
	}
	if len(games) == 0 {
		t.Fatalf("GetAllGames() returned no games after ExampleData")
	}

	for i := 1; i < len(games); i++ {
		if games[i-1].Name > games[i].Name {
			t.Errorf("GetAllGames() not ordered by name: %q before %q", games[i-1].Name, games[i].Name)
		}
	}

	var found bool
	for _, g := range games {
		if g.Name == "blackjack" {
			found = true
			if !strings.Contains(g.Description, "card game") {
				t.Errorf("blackjack description = %q, want it to contain %q", g.Description, "card game")
			}
		}
	}
	if !found {
		t.Errorf("GetAllGames() did not include blackjack")
	}
}

func TestExampleDataIsIdempotent(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	before, err := GetAllGames(ctx, db)
	if err != nil {
		t.Fatalf("GetAllGames() error = %v", err)
	}

	// setupTestDB already seeded once.
	if err := ExampleData(ctx, db); err != nil {
		t.Fatalf("second ExampleData() error = %v", err)
	}

	after, err := GetAllGames(ctx, db)
	if err != nil {
		t.Fatalf("GetAllGames() error = %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("games after reseed = %d, want %d", len(after), len(before))
	}

	var blackjacks int
	if err := db.Get(&blackjacks, "SELECT COUNT(*) FROM games WHERE name = 'blackjack'"); err != nil {
		t.Fatalf("count blackjack: %v", err)
	}
	if blackjacks != 1 {
		t.Errorf("blackjack rows = %d, want 1", blackjacks)
	}
}

func TestLoadFixtures(t *testing.T) {
	t.Run("embedded fixtures", func(t *testing.T) {
		fixtures, err := loadFixtures(exampleDataYAML)
		if err != nil {
			t.Fatalf("loadFixtures() error = %v", err)
		}
		if len(fixtures.Games) == 0 {
			t.Fatal("loadFixtures() returned no games")
		}
	})

	t.Run("game without name", func(t *testing.T) {
		_, err := loadFixtures([]byte("games:\n  - description: nameless\n"))
		if err == nil {
			t.Fatal("loadFixtures() expected error for game without name")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		if _, err := loadFixtures([]byte("games: [")); err == nil {
			t.Fatal("loadFixtures() expected error for malformed yaml")
		}
	})
}
