package main

import (
	"os"

	"potbot/internal/bot"
	"potbot/internal/config"
	"potbot/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {

	// Settings and logger
	settings, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load settings")
	}
	zerolog.SetGlobalLevel(settings.Level())
	if !settings.LogJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Game configuration
	configStore := store.New(settings.ConfigPath)
	if err := configStore.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	// Token
	token, err := settings.ReadToken()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not read the token")
	}

	// Games history
	database, err := bot.CreateDatabaseBot(settings.HistoryPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not open games history")
	}
	defer database.Close()

	// Create bot
	b, err := bot.CreateBot(token, configStore, database, settings.HistoryKeep, settings.Housekeeping)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create discord bot")
	}

	// Run bot
	if err := b.Run(); err != nil {
		log.Error().Err(err).Msg("Bot stopped")
	}
}
