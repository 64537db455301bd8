package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"sehatsaathi/backend/internal/analysis"
	"sehatsaathi/backend/internal/api"
	"sehatsaathi/backend/internal/config"
	"sehatsaathi/backend/internal/database"
	"sehatsaathi/backend/internal/migrations"
	"sehatsaathi/backend/internal/seed"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.LoadMedicines(db, "assets/medicines.csv")
	seed.LoadDoctors(db)

	var gen analysis.Generator
	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY not set, symptom analysis will return fallback results")
	} else {
		client, err := analysis.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error().Err(err).Msg("gemini client unavailable, symptom analysis will return fallback results")
		} else {
			defer client.Close()
			gen = client
		}
	}
	analyzer := analysis.NewService(gen, cfg.AITimeout, logger)

	handler := api.New(db, cfg.Secret, analyzer, logger)

	logger.Info().Str("port", cfg.HTTPPort).Msg("Sehat Saathi server starting")
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
