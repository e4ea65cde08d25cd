// Package main is the entry point for the tdbuild generation tool.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/tdbuild/cmd/tdbuild/commands"
	"go.trai.ch/tdbuild/internal/app"
	"go.trai.ch/tdbuild/internal/core/domain"
	_ "go.trai.ch/tdbuild/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.Components)) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// Apply options
	for _, opt := range opts {
		opt(components)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetConfigHook(components.SetManifestPath)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrGenerationFailed) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
