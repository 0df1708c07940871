// Package cli provides the party command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/magicunicorn/party/internal/config"
	"github.com/magicunicorn/party/internal/database"
	"github.com/magicunicorn/party/internal/observability"
)

// Exit codes returned by Execute.
const (
	ExitSuccess = 0
	ExitError   = 1
)

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd *cobra.Command
	cfg     *config.Config
	logger  *slog.Logger

	// Global flags
	configPath string
}

// New creates a new CLI instance.
func New() *CLI {
	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the CLI with a background context.
func (c *CLI) Execute() int {
	return c.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI. Cancelling ctx stops a running server.
func (c *CLI) ExecuteContext(ctx context.Context) int {
	if err := c.rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(c.rootCmd.ErrOrStderr(), "party: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "party",
		Short: "Party invitation site",
		Long: `party serves the party invitation site: guests RSVP on the homepage,
then get the address and the list of games.

Settings come from party.yaml (or --config) and PARTY_* environment
variables, e.g. PARTY_DATABASE_DSN=postgresql:///party.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./party.yaml)")

	cmd.AddCommand(c.newServeCmd())
	cmd.AddCommand(c.newInitDBCmd())
	cmd.AddCommand(c.newDropDBCmd())
	cmd.AddCommand(c.newSeedCmd())
	cmd.AddCommand(c.newGuestsCmd())

	return cmd
}

func (c *CLI) initConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	logger, err := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	c.logger = logger
	slog.SetDefault(logger)
	return nil
}

// openDB opens the configured database. The caller must Close it.
func (c *CLI) openDB() (*sqlx.DB, error) {
	driver := database.DetectDriver(c.cfg.Database.Driver, c.cfg.Database.DSN)
	db, err := database.Open(driver, c.cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("database opened", "driver", driver)
	return db, nil
}
