package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

const DefaultPrefix = "!"

var ErrNotInitialized = errors.New("config not initialized")

// Config is the whole state of the game: who plays, with which countries,
// in how many teams and for how many points.
type Config struct {
	Prefix           string   `toml:"prefix"`
	BroadcastChannel uint64   `toml:"roll_channel"`
	MinPoints        uint16   `toml:"min_points"`
	MaxPoints        uint16   `toml:"max_points"`
	Teams            uint8    `toml:"teams"`
	Players          []string `toml:"players"`
	Countries        []string `toml:"countries"`
	SpreadRemainder  bool     `toml:"spread_remainder,omitempty"`
}

// Clone returns a deep copy, so the caller can mutate the slices freely
func (c Config) Clone() Config {
	c.Players = slices.Clone(c.Players)
	c.Countries = slices.Clone(c.Countries)
	return c
}

// CommandPrefix returns the configured prefix or the default one
func (c Config) CommandPrefix() string {
	if c.Prefix == "" {
		return DefaultPrefix
	}
	return c.Prefix
}

// Store owns the one configuration snapshot of the process and its copy on disk.
// All access goes through a single mutex.
type Store struct {
	mu   sync.Mutex
	path string
	conf *Config
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot from disk, replacing whatever was in memory
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var conf Config
	if _, err := toml.DecodeFile(s.path, &conf); err != nil {
		return fmt.Errorf("could not load config %s: %w", s.path, err)
	}
	s.conf = &conf
	log.Debug().Str("path", s.path).Int("players", len(conf.Players)).Int("countries", len(conf.Countries)).Msg("Config loaded")
	return nil
}

// Read returns a copy of the current snapshot
func (s *Store) Read() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conf == nil {
		return Config{}, ErrNotInitialized
	}
	return s.conf.Clone(), nil
}

// Replace swaps the snapshot and writes it to disk.
// The swap happens first: if the write fails, memory is ahead of the file.
func (s *Store) Replace(conf Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.replace(conf.Clone())
}

// Update runs a read-modify-write under the lock, so two commands touching
// different fields cannot clobber each other. If fn fails nothing changes.
func (s *Store) Update(fn func(conf *Config) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conf == nil {
		return ErrNotInitialized
	}
	conf := s.conf.Clone()
	if err := fn(&conf); err != nil {
		return err
	}
	return s.replace(conf)
}

func (s *Store) replace(conf Config) error {
	s.conf = &conf

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(conf); err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	if err := writeFile(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("could not write config %s: %w", s.path, err)
	}
	log.Debug().Str("path", s.path).Msg("Config written")
	return nil
}

// writeFile writes through a temporary file in the same directory and renames
// it over the target, so readers never see a half written file
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
