package bot

import (
	"encoding/json"
	"fmt"
	"time"

	"potbot/internal/teams"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

var gamesBucket = []byte("games")

// A game that was played, as it was announced
type Game struct {
	ID       uuid.UUID `json:"id"`
	PlayedAt time.Time `json:"played_at"`
	teams.Assignment
}

// DatabaseBot keeps the history of games. Keys are version 7 uuids,
// so the byte order of the bucket is the order the games were played in.
type DatabaseBot struct {
	db *bolt.DB
}

func CreateDatabaseBot(dbFilename string) (*DatabaseBot, error) {
	db, err := bolt.Open(dbFilename, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("could not open database %s: %w", dbFilename, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(gamesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create games bucket: %w", err)
	}
	return &DatabaseBot{db: db}, nil
}

func (database *DatabaseBot) Close() error {
	return database.db.Close()
}

func (database *DatabaseBot) AddGame(assignment teams.Assignment, playedAt time.Time) (Game, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Game{}, err
	}
	game := Game{ID: id, PlayedAt: playedAt, Assignment: assignment}
	value, err := json.Marshal(game)
	if err != nil {
		return Game{}, err
	}
	err = database.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(gamesBucket).Put(id[:], value)
	})
	if err != nil {
		return Game{}, fmt.Errorf("could not store game %s: %w", id, err)
	}
	log.Debug().Str("game", id.String()).Msg("Game stored")
	return game, nil
}

// GetGames returns up to limit games, the most recent first
func (database *DatabaseBot) GetGames(limit int) ([]Game, error) {
	games := []Game{}
	err := database.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(gamesBucket).Cursor()
		for key, value := c.Last(); key != nil && len(games) < limit; key, value = c.Prev() {
			var game Game
			if err := json.Unmarshal(value, &game); err != nil {
				return fmt.Errorf("could not decode game %x: %w", key, err)
			}
			games = append(games, game)
		}
		return nil
	})
	return games, err
}

// Prune deletes everything but the keep most recent games and
// returns how many were deleted
func (database *DatabaseBot) Prune(keep int) (int, error) {
	deleted := 0
	err := database.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(gamesBucket)
		var stale [][]byte
		seen := 0
		c := b.Cursor()
		for key, _ := c.Last(); key != nil; key, _ = c.Prev() {
			seen++
			if seen > keep {
				stale = append(stale, append([]byte(nil), key...))
			}
		}
		for _, key := range stale {
			if err := b.Delete(key); err != nil {
				return err
			}
		}
		deleted = len(stale)
		return nil
	})
	return deleted, err
}
