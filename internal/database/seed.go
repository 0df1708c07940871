package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"

	"github.com/magicunicorn/party/internal/models"
)

//go:embed fixtures/example_data.yaml
var exampleDataYAML []byte

type fixtureSet struct {
	Games []fixtureGame `yaml:"games"`
}

type fixtureGame struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ExampleData seeds the store with the fixture games. Games that already
// exist by name are left alone, so seeding twice is harmless.
func ExampleData(ctx context.Context, db *sqlx.DB) error {
	fixtures, err := loadFixtures(exampleDataYAML)
	if err != nil {
		return err
	}

	inserted := 0
	for _, g := range fixtures.Games {
		ok, err := insertGameIfMissing(ctx, db, models.Game{Name: g.Name, Description: g.Description})
		if err != nil {
			return fmt.Errorf("seed example data: %w", err)
		}
		if ok {
			inserted++
		}
	}
	slog.DebugContext(ctx, "seeded example data", "games", len(fixtures.Games), "inserted", inserted)
	return nil
}

func loadFixtures(raw []byte) (*fixtureSet, error) {
	var fixtures fixtureSet
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return nil, fmt.Errorf("parse example data: %w", err)
	}
	for i, g := range fixtures.Games {
		if g.Name == "" {
			return nil, fmt.Errorf("parse example data: game %d has no name", i)
		}
	}
	return &fixtures, nil
}
