package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"gomwu/internal/config"
	"gomwu/internal/container"
)

// main runs the stock comparison: data.xlsx, Group/Value columns, Control
// against Treatment. Change it through MWU_* variables or a .env file, or use
// cmd/mwu for flags.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	// Load application configuration (reads .env when present)
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	err = run(ctx, appConfig, os.Stdout)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run owns the container so that Shutdown has happened by the time main
// decides the exit code.
func run(ctx context.Context, appConfig *config.Config, out io.Writer) error {
	// Create dependency injection container
	appContainer, err := container.New(appConfig, out)
	if err != nil {
		log.Printf("Failed to create application container: %v", err)
		return err
	}
	defer appContainer.Shutdown(ctx)

	if _, err := appContainer.AnalysisService.Run(ctx, appConfig); err != nil {
		appContainer.Logger.Error("analysis failed: %v", err)
		return err
	}
	return nil
}
