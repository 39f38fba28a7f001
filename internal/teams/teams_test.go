package teams

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func names(prefix string, n int) []string {
	result := make([]string, n)
	for i := range result {
		result[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return result
}

func assigned(a Assignment) []Pair {
	var pairs []Pair
	for _, team := range a.Teams {
		pairs = append(pairs, team...)
	}
	return append(pairs, a.Leftover...)
}

func TestAssignFourPlayersTwoTeams(t *testing.T) {
	in := Input{
		Players:   []string{"A", "B", "C", "D"},
		Countries: []string{"X", "Y", "Z", "W"},
		Teams:     2,
		MinPoints: 100,
		MaxPoints: 200,
	}
	for seed := range uint64(50) {
		a, err := Assign(newRand(seed), in)
		require.NoError(t, err)
		require.Len(t, a.Teams, 2)
		assert.Len(t, a.Teams[0], 2)
		assert.Len(t, a.Teams[1], 2)
		assert.Empty(t, a.Leftover)

		var players, countries []string
		for _, pair := range assigned(a) {
			players = append(players, pair.Player)
			countries = append(countries, pair.Country)
		}
		assert.ElementsMatch(t, in.Players, players, "every player used once")
		assert.ElementsMatch(t, in.Countries, countries, "every country used once")
	}
}

func TestAssignThreePlayersTwoTeams(t *testing.T) {
	in := Input{
		Players:   []string{"A", "B", "C"},
		Countries: []string{"X", "Y", "Z"},
		Teams:     2,
	}
	a, err := Assign(newRand(1), in)
	require.NoError(t, err)
	require.Len(t, a.Teams, 2)
	assert.Len(t, a.Teams[0], 1)
	assert.Len(t, a.Teams[1], 1)
	require.Len(t, a.Leftover, 1, "the odd player is reported separately")
	assert.Len(t, assigned(a), 3)
}

func TestAssignPartitionSizes(t *testing.T) {
	for p := 2; p <= 12; p++ {
		for tc := 1; tc <= 5; tc++ {
			in := Input{
				Players:   names("p", p),
				Countries: names("c", p+2),
				Teams:     uint8(tc),
			}
			a, err := Assign(newRand(uint64(p*10+tc)), in)
			require.NoError(t, err)

			require.Len(t, a.Teams, tc)
			for _, team := range a.Teams {
				assert.Len(t, team, p/tc, "p=%d t=%d", p, tc)
			}
			if p%tc == 1 {
				assert.Len(t, a.Leftover, 1, "p=%d t=%d", p, tc)
			} else {
				assert.Empty(t, a.Leftover, "p=%d t=%d", p, tc)
			}
			// A remainder of two or more is not part of the output
			assert.Len(t, assigned(a), tc*(p/tc)+len(a.Leftover), "p=%d t=%d", p, tc)
		}
	}
}

func TestAssignSpreadRemainder(t *testing.T) {
	in := Input{
		Players:         names("p", 11),
		Countries:       names("c", 11),
		Teams:           4,
		SpreadRemainder: true,
	}
	a, err := Assign(newRand(7), in)
	require.NoError(t, err)

	sizes := make([]int, 0, len(a.Teams))
	for _, team := range a.Teams {
		sizes = append(sizes, len(team))
	}
	assert.Equal(t, []int{3, 3, 3, 2}, sizes)
	assert.Empty(t, a.Leftover)
	assert.Len(t, assigned(a), 11, "nobody is dropped")
}

func TestAssignDoesNotTouchInput(t *testing.T) {
	players := []string{"A", "B", "C", "D", "E"}
	countries := []string{"V", "W", "X", "Y", "Z"}
	_, err := Assign(newRand(3), Input{Players: players, Countries: countries, Teams: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, players)
	assert.Equal(t, []string{"V", "W", "X", "Y", "Z"}, countries)
}

func TestAssignPreconditions(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		err  error
	}{
		{"no players", Input{Countries: []string{"X"}, Teams: 1}, ErrNotEnoughPlayers},
		{"one player", Input{Players: []string{"A"}, Countries: []string{"X", "Y"}, Teams: 1}, ErrNotEnoughPlayers},
		{"no countries", Input{Players: []string{"A", "B"}, Teams: 1}, ErrNotEnoughCountries},
		{"fewer countries", Input{Players: []string{"A", "B", "C"}, Countries: []string{"X", "Y"}, Teams: 1}, ErrNotEnoughCountries},
		{"zero teams", Input{Players: []string{"A", "B"}, Countries: []string{"X", "Y"}}, ErrNoTeams},
		{"inverted range", Input{Players: []string{"A", "B"}, Countries: []string{"X", "Y"}, Teams: 1, MinPoints: 20, MaxPoints: 10}, ErrPointRange},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, err := Assign(newRand(1), test.in)
			assert.ErrorIs(t, err, test.err)
			assert.Empty(t, a.Teams)
		})
	}
}

func TestRoundPoints(t *testing.T) {
	cases := map[int]int{0: 0, 4: 0, 5: 10, 14: 10, 15: 20, 25: 30, 99: 100, 120: 120, 65535: 65540}
	for in, want := range cases {
		assert.Equal(t, want, RoundPoints(in), "round %d", in)
	}
	for v := range 1000 {
		assert.Equal(t, (v+5)/10*10, RoundPoints(v))
	}
}

func TestDrawPoints(t *testing.T) {
	rng := newRand(11)
	for range 100 {
		assert.Equal(t, 10, DrawPoints(rng, 12, 12))
	}
	seen := map[int]bool{}
	for range 500 {
		points := DrawPoints(rng, 100, 140)
		assert.GreaterOrEqual(t, points, 100)
		assert.LessOrEqual(t, points, 140)
		assert.Zero(t, points%10)
		seen[points] = true
	}
	assert.Len(t, seen, 5, "every multiple of ten in range should come up")
}

func TestAssignShufflesPairs(t *testing.T) {
	in := Input{Players: names("p", 8), Countries: names("c", 8), Teams: 2}
	first, err := Assign(newRand(1), in)
	require.NoError(t, err)

	differs := false
	for seed := uint64(2); seed < 20 && !differs; seed++ {
		other, err := Assign(newRand(seed), in)
		require.NoError(t, err)
		differs = !slices.Equal(assigned(first), assigned(other))
	}
	assert.True(t, differs, "different seeds should give different assignments")
}
