package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hireova/screening-desk/internal/api"
	"github.com/hireova/screening-desk/internal/auth"
	"github.com/hireova/screening-desk/internal/config"
	"github.com/hireova/screening-desk/internal/evaluate"
	"github.com/hireova/screening-desk/internal/gui"
	"github.com/hireova/screening-desk/internal/logger"
	"github.com/hireova/screening-desk/internal/mis"
	"github.com/hireova/screening-desk/internal/preview"
	"github.com/hireova/screening-desk/internal/session"
)

func main() {
	// Optional .env next to the binary, mainly for development overrides.
	_ = godotenv.Load()

	resetLink := flag.String("reset-token", "",
		"password reset link or token from a reset email")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	log := logger.With("main")

	stateDir, err := config.Dir()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot resolve config directory")
	}
	sessions := session.NewStore(stateDir)
	sessions.Restore()

	client := api.NewClient(api.Config{
		BaseURL: cfg.ServiceURL,
		Tokens:  sessions,
	})

	workflow := auth.NewWorkflow(client, sessions)
	batch := evaluate.NewController(client)
	summary := mis.NewAggregator(client)
	previews := preview.NewController(client)

	// Logging out must not leave another recruiter's data on screen or a
	// preview file on disk.
	workflow.OnLogout(func() {
		batch.Reset()
		summary.Reset()
		previews.Close()
	})

	log.Info().Str("service_url", cfg.ServiceURL).Msg("starting screening desk")

	app := gui.NewApp(cfg, sessions, workflow, batch, summary, previews,
		auth.ExtractRecoveryToken(*resetLink))
	app.Run()
}
