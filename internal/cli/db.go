package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/magicunicorn/party/internal/database"
)

func (c *CLI) newInitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the tables and load the example games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				if err := database.CreateAll(ctx, db); err != nil {
					return err
				}
				if err := database.ExampleData(ctx, db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Database initialized.")
				return nil
			})
		},
	}
}

func (c *CLI) newDropDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dropdb",
		Short: "Drop every party table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				if err := database.DropAll(ctx, db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Database dropped.")
				return nil
			})
		},
	}
}

func (c *CLI) newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the example games into an existing database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				if err := database.ExampleData(ctx, db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Example data loaded.")
				return nil
			})
		},
	}
}

func (c *CLI) newGuestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guests",
		Short: "List everyone who has RSVP'd",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDB(cmd.Context(), func(ctx context.Context, db *sqlx.DB) error {
				rsvps, err := database.GetAllRSVPs(ctx, db)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(rsvps) == 0 {
					fmt.Fprintln(out, "No RSVPs yet.")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tEMAIL\tRSVP'D AT")
				for _, r := range rsvps {
					fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Email, r.CreatedAt.Format("2006-01-02 15:04"))
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(out, "\n%d guest(s)\n", len(rsvps))
				return nil
			})
		},
	}
}

func (c *CLI) withDB(ctx context.Context, fn func(context.Context, *sqlx.DB) error) error {
	db, err := c.openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(ctx, db)
}
