package main

import (
	"os"

	"newsguard/internal/bot"
	"newsguard/internal/config"
	"newsguard/internal/database"
	"newsguard/internal/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.TelegramBotToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN is required")
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	b, err := bot.New(cfg.TelegramBotToken, store.NewArticles(db), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	b.Run()
}
