package teams

import (
	"errors"
	"math/rand/v2"
	"slices"
)

var (
	ErrNotEnoughPlayers   = errors.New("not enough players")
	ErrNotEnoughCountries = errors.New("not enough countries")
	ErrNoTeams            = errors.New("team count must be at least 1")
	ErrPointRange         = errors.New("min points is greater than max points")
)

// A player paired with the country they will play
type Pair struct {
	Player  string `json:"player"`
	Country string `json:"country"`
}

type Input struct {
	Players         []string
	Countries       []string
	Teams           uint8
	MinPoints       uint16
	MaxPoints       uint16
	SpreadRemainder bool
}

type Assignment struct {
	Teams    [][]Pair `json:"teams"`
	Leftover []Pair   `json:"leftover,omitempty"`
	Points   int      `json:"points"`
}

// Check reports why a game cannot start with this input, if it cannot
func Check(in Input) error {
	if len(in.Players) < 2 {
		return ErrNotEnoughPlayers
	}
	if len(in.Countries) == 0 || len(in.Countries) < len(in.Players) {
		return ErrNotEnoughCountries
	}
	if in.Teams == 0 {
		return ErrNoTeams
	}
	if in.MinPoints > in.MaxPoints {
		return ErrPointRange
	}
	return nil
}

// Assign shuffles players and countries independently, pairs them by position
// and splits the pairs into teams of players/teams each.
//
// When the division leaves exactly one player, that pair is returned as the
// leftover. A bigger remainder is dropped, unless SpreadRemainder is set, in
// which case the remaining pairs are dealt to the teams one by one.
func Assign(rng *rand.Rand, in Input) (Assignment, error) {
	if err := Check(in); err != nil {
		return Assignment{}, err
	}

	players := slices.Clone(in.Players)
	countries := slices.Clone(in.Countries)
	rng.Shuffle(len(players), func(i, j int) { players[i], players[j] = players[j], players[i] })
	rng.Shuffle(len(countries), func(i, j int) { countries[i], countries[j] = countries[j], countries[i] })

	teamCount := int(in.Teams)
	perTeam := len(players) / teamCount
	remainder := len(players) % teamCount

	var assignment Assignment
	next := 0
	for range teamCount {
		team := make([]Pair, 0, perTeam+1)
		for range perTeam {
			team = append(team, Pair{players[next], countries[next]})
			next++
		}
		assignment.Teams = append(assignment.Teams, team)
	}

	switch {
	case in.SpreadRemainder:
		for i := range remainder {
			assignment.Teams[i] = append(assignment.Teams[i], Pair{players[next], countries[next]})
			next++
		}
	case remainder == 1:
		assignment.Leftover = []Pair{{players[next], countries[next]}}
	}

	assignment.Points = DrawPoints(rng, in.MinPoints, in.MaxPoints)
	return assignment, nil
}

// DrawPoints picks a value in [min, max] and rounds it to the nearest ten
func DrawPoints(rng *rand.Rand, min, max uint16) int {
	v := int(min) + rng.IntN(int(max)-int(min)+1)
	return RoundPoints(v)
}

// RoundPoints rounds half up to a multiple of ten: 15 -> 20, 14 -> 10
func RoundPoints(v int) int {
	return (v + 5) / 10 * 10
}
