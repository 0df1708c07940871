// Command party runs the party invitation site and its database chores.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/magicunicorn/party/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.New().ExecuteContext(ctx)
	stop()
	os.Exit(code)
}
