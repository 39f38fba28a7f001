package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var ErrNoToken = errors.New("no discord token supplied")

// Settings of the process itself. The game configuration lives in the TOML
// file pointed to by ConfigPath.
type Settings struct {
	ConfigPath   string        `env:"POT_CONFIG" envDefault:"config.toml"`
	TokenPath    string        `env:"POT_TOKEN_FILE" envDefault:"token"`
	Token        string        `env:"DISCORD_TOKEN"`
	HistoryPath  string        `env:"POT_HISTORY" envDefault:"history.db"`
	HistoryKeep  int           `env:"POT_HISTORY_KEEP" envDefault:"100"`
	Housekeeping time.Duration `env:"POT_HOUSEKEEPING" envDefault:"1h"`
	LogLevel     string        `env:"POT_LOG_LEVEL" envDefault:"info"`
	LogJSON      bool          `env:"POT_LOG_JSON" envDefault:"false"`
}

// Load reads a .env file if there is one, then the environment
func Load() (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("load .env: %w", err)
	}
	var settings Settings
	if err := env.Parse(&settings); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return settings, nil
}

func (s Settings) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(s.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// ReadToken prefers the token from the environment and falls back to the token file
func (s Settings) ReadToken() (string, error) {
	if token := strings.TrimSpace(s.Token); token != "" {
		return token, nil
	}
	data, err := os.ReadFile(s.TokenPath)
	if err != nil {
		return "", fmt.Errorf("could not read token file %s: %w", s.TokenPath, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
