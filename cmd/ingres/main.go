// Package main is the entry point for the ingres CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/alexbrainman/odbc" // ODBC driver used to reach Ingres

	"github.com/satishbabariya/ingres-go/cmd/ingres/commands"
	"github.com/satishbabariya/ingres-go/internal/ui"
)

func main() {
	if err := run(); err != nil {
		ui.PrintError("%v", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return commands.NewRootCommand().ExecuteContext(ctx)
}
