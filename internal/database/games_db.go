package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/magicunicorn/party/internal/models"
)

const gameColumns = "id, name, description, created_at"

// CreateGame inserts a new game into the games table.
func CreateGame(ctx context.Context, db *sqlx.DB, game *models.Game) (*models.Game, error) {
	var id int64
	query := db.Rebind("INSERT INTO games (name, description) VALUES (?, ?) RETURNING id")
	if err := db.QueryRowxContext(ctx, query, game.Name, game.Description).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert game %q: %w", game.Name, err)
	}

	// Read the row back so created_at carries the database default.
	return GetGameByID(ctx, db, id)
}

// GetGameByID retrieves a game by its ID. A missing game yields sql.ErrNoRows.
func GetGameByID(ctx context.Context, db *sqlx.DB, id int64) (*models.Game, error) {
	game := &models.Game{}
	query := db.Rebind("SELECT " + gameColumns + " FROM games WHERE id = ?")
	if err := db.GetContext(ctx, game, query, id); err != nil {
		return nil, fmt.Errorf("get game %d: %w", id, err)
	}
	return game, nil
}

// GetGameByName retrieves a game by its unique name. A missing game yields sql.ErrNoRows.
func GetGameByName(ctx context.Context, db *sqlx.DB, name string) (*models.Game, error) {
	game := &models.Game{}
	query := db.Rebind("SELECT " + gameColumns + " FROM games WHERE name = ?")
	if err := db.GetContext(ctx, game, query, name); err != nil {
		return nil, fmt.Errorf("get game %q: %w", name, err)
	}
	return game, nil
}

// GetAllGames retrieves all games ordered by name.
func GetAllGames(ctx context.Context, db *sqlx.DB) ([]*models.Game, error) {
	var games []*models.Game
	if err := db.SelectContext(ctx, &games, "SELECT "+gameColumns+" FROM games ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// insertGameIfMissing inserts game unless a game with the same name exists.
// It reports whether a row was written.
func insertGameIfMissing(ctx context.Context, db *sqlx.DB, game models.Game) (bool, error) {
	query := db.Rebind("INSERT INTO games (name, description) VALUES (?, ?) ON CONFLICT (name) DO NOTHING")
	res, err := db.ExecContext(ctx, query, game.Name, game.Description)
	if err != nil {
		return false, fmt.Errorf("insert game %q: %w", game.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
