package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/magicunicorn/party/internal/database"
	"github.com/magicunicorn/party/internal/handlers"
	"github.com/magicunicorn/party/internal/observability"
	"github.com/magicunicorn/party/internal/session"
	"github.com/magicunicorn/party/web"
)

func (c *CLI) newServeCmd() *cobra.Command {
	var addr string
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the party web server",
		Long: `Run the party web server. The tables are created if missing;
--seed also loads the example games.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), seed)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&seed, "seed", false, "load the example games before serving")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, seed bool) error {
	shutdownTracing, err := observability.SetupTracing(ctx, c.cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			c.logger.Warn("tracing shutdown", "err", err)
		}
	}()

	db, err := c.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.CreateAll(ctx, db); err != nil {
		return err
	}
	if seed {
		if err := database.ExampleData(ctx, db); err != nil {
			return err
		}
	}

	templatesFS, err := fs.Sub(web.FS, "templates")
	if err != nil {
		return err
	}
	if err := handlers.LoadTemplates(templatesFS); err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	staticFS, err := fs.Sub(web.FS, "static")
	if err != nil {
		return err
	}

	signer, err := session.NewSigner(c.cfg.Session.Secret)
	if err != nil {
		return err
	}
	if c.cfg.Session.Secret == "" {
		c.logger.Warn("session.secret is empty; sessions will not survive a restart")
	}
	sessions := session.NewManager(session.NewStore(c.cfg.Session.IdleTimeout), signer, c.cfg.Session.CookieName)

	var handler http.Handler = handlers.NewRouter(db, sessions, staticFS)
	handler = observability.LogRequests(c.logger, handler)
	handler = observability.Trace(handler)

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  c.cfg.Server.ReadTimeout,
		WriteTimeout: c.cfg.Server.WriteTimeout,
	}

	ln, err := net.Listen("tcp", c.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", c.cfg.Server.Addr, err)
	}
	c.logger.Info("party server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
