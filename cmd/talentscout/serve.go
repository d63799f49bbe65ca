package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omchoksi/talentscout/internal/config"
	"github.com/omchoksi/talentscout/internal/conversation"
	"github.com/omchoksi/talentscout/internal/db"
	"github.com/omchoksi/talentscout/internal/logger"
	"github.com/omchoksi/talentscout/internal/phrasing"
	"github.com/omchoksi/talentscout/internal/question"
	"github.com/omchoksi/talentscout/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the candidate chat endpoint and the recruiter candidate-review endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	phraser, closePhraser, err := buildPhraser(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closePhraser()

	machine := conversation.NewMachine(question.NewSelector())
	runner := conversation.NewRunner(machine, database, database, phraser, log)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	srv, err := server.New(server.Options{
		Port:     cfg.Port,
		Chat:     runner,
		Sessions: database,
		Profiles: database,
		JWT:      server.NewJWTService(jwtConfig),
		Log:      log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// buildPhraser picks the phrasing backend. Without an API key the server runs
// on scripted fallback text, which covers every turn.
func buildPhraser(ctx context.Context, cfg *config.Config, log *zap.Logger) (conversation.PhrasingGenerator, func(), error) {
	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, using scripted phrasing only")
		return phrasing.Static{}, func() {}, nil
	}

	gemini, err := phrasing.NewGemini(ctx, cfg.GeminiAPIKey, cfg.AIModel, cfg.Temperature, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return gemini, func() { _ = gemini.Close() }, nil
}
