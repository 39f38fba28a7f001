// Package roster holds the mutations and argument parsing behind the
// join, leave, remove, points and teams commands.
package roster

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrPointsFormat = errors.New("expected two numbers between 0 and 65535")
	ErrTeamsFormat  = errors.New("expected a number between 0 and 255")
)

// Join appends the player at the end of the roster.
// It reports false, and leaves the roster alone, if the player is already in.
func Join(players []string, id string) ([]string, bool) {
	if slices.Contains(players, id) {
		return players, false
	}
	return append(players, id), true
}

// Remove drops every occurrence of id. Removing someone who is not there is fine.
func Remove(players []string, id string) []string {
	return slices.DeleteFunc(players, func(player string) bool { return player == id })
}

// MentionID turns "<@123>" or "<@!123>" into "123". Plain ids pass through.
func MentionID(arg string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '@', '!':
			return -1
		}
		return r
	}, strings.TrimSpace(arg))
}

// ParsePoints reads "<min> <max>". Both are required; their order is not checked.
func ParsePoints(arg string) (uint16, uint16, error) {
	words := strings.Fields(arg)
	if len(words) < 2 {
		return 0, 0, ErrPointsFormat
	}
	min, err := strconv.ParseUint(words[0], 10, 16)
	if err != nil {
		return 0, 0, ErrPointsFormat
	}
	max, err := strconv.ParseUint(words[1], 10, 16)
	if err != nil {
		return 0, 0, ErrPointsFormat
	}
	return uint16(min), uint16(max), nil
}

// ParseTeams reads the number of teams. Zero is accepted here and rejected
// when a game starts.
func ParseTeams(arg string) (uint8, error) {
	teams, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 8)
	if err != nil {
		return 0, ErrTeamsFormat
	}
	return uint8(teams), nil
}
