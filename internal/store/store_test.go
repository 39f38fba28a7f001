package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const sampleConfig = `
prefix = "!"
roll_channel = 1093012312312312312
min_points = 100
max_points = 250
teams = 2
players = ["111", "222", "333"]
countries = ["France", "Spain", "Italy", "Poland"]
`

type StoreSuite struct {
	suite.Suite
	path  string
	store *Store
}

func (suite *StoreSuite) SetupTest() {
	suite.path = filepath.Join(suite.T().TempDir(), "config.toml")
	suite.Require().NoError(os.WriteFile(suite.path, []byte(sampleConfig), 0o600))
	suite.store = New(suite.path)
	suite.Require().NoError(suite.store.Load())
}

func (suite *StoreSuite) TestLoad() {
	conf, err := suite.store.Read()
	suite.Require().NoError(err)
	suite.Equal(Config{
		Prefix:           "!",
		BroadcastChannel: 1093012312312312312,
		MinPoints:        100,
		MaxPoints:        250,
		Teams:            2,
		Players:          []string{"111", "222", "333"},
		Countries:        []string{"France", "Spain", "Italy", "Poland"},
	}, conf, "should decode every field")
}

func (suite *StoreSuite) TestReadReturnsCopy() {
	conf, err := suite.store.Read()
	suite.Require().NoError(err)
	conf.Players[0] = "mutated"
	conf.Countries = append(conf.Countries, "Chile")

	again, err := suite.store.Read()
	suite.Require().NoError(err)
	suite.Equal("111", again.Players[0], "mutating a snapshot must not leak into the store")
	suite.Len(again.Countries, 4)
}

func (suite *StoreSuite) TestReplaceRoundTrip() {
	conf, err := suite.store.Read()
	suite.Require().NoError(err)
	conf.Players = append(conf.Players, "444")
	conf.Teams = 3
	conf.SpreadRemainder = true
	suite.Require().NoError(suite.store.Replace(conf))

	reloaded := New(suite.path)
	suite.Require().NoError(reloaded.Load())
	got, err := reloaded.Read()
	suite.Require().NoError(err)
	suite.Equal(conf, got, "reloading should give back what was written")
}

func (suite *StoreSuite) TestUpdateAbortsOnError() {
	boom := errors.New("boom")
	err := suite.store.Update(func(conf *Config) error {
		conf.Players = nil
		return boom
	})
	suite.ErrorIs(err, boom)

	conf, err := suite.store.Read()
	suite.Require().NoError(err)
	suite.Len(conf.Players, 3, "failed update should not touch the snapshot")
}

func (suite *StoreSuite) TestConcurrentUpdatesKeepEveryChange() {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := suite.store.Update(func(conf *Config) error {
				conf.Players = append(conf.Players, fmt.Sprintf("p%d", i))
				return nil
			})
			suite.NoError(err)
		}(i)
	}
	wg.Wait()

	conf, err := suite.store.Read()
	suite.Require().NoError(err)
	suite.Len(conf.Players, 23, "no join should be lost")
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func TestReadBeforeLoad(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "config.toml"))
	_, err := s.Read()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, s.Update(func(*Config) error { return nil }), ErrNotInitialized)
}

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, s.Load())
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("teams = \"two\"\nplayers = ["), 0o600))
	assert.Error(t, New(path).Load())
}

func TestCommandPrefix(t *testing.T) {
	assert.Equal(t, "!", Config{}.CommandPrefix())
	assert.Equal(t, "?", Config{Prefix: "?"}.CommandPrefix())
}
