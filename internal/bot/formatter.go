package bot

import (
	"errors"
	"fmt"
	"strings"

	"potbot/internal/store"
	"potbot/internal/teams"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// Use "teal" color for the bot
const color int = 0x008080

func mention(id string) string {
	return fmt.Sprintf("<@%s>", id)
}

func InputNotValid(errorMessage string) []Response {
	return []Response{ResponseString{fmt.Sprintf("Input not valid: \n> %s", errorMessage)}}
}

func HelpMessage(prefix string, table commandTable) []Response {

	embed := discordgo.MessageEmbed{Title: "Commands available", Color: color}
	for _, c := range table {
		name := fmt.Sprintf("`%s%s`", prefix, c.usage)
		if len(c.aliases) > 0 {
			name += fmt.Sprintf(" (also `%s`)", strings.Join(c.aliases, "`, `"))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  c.help,
			Inline: false,
		})
	}
	return []Response{ResponseEmbed{embed}}
}

func AlreadyJoined(prefix string) []Response {
	return []Response{ResponseString{fmt.Sprintf("Already joined! `%slv` to leave", prefix)}}
}

func Joined(prefix string) []Response {
	return []Response{ResponseString{fmt.Sprintf("Joined! `%slv` to leave", prefix)}}
}

func Left() []Response {
	return []Response{ResponseString{"Left, cya!"}}
}

func Removed(player string) []Response {
	return []Response{ResponseString{fmt.Sprintf("Removed %s from the game", mention(player))}}
}

func PointsUpdated(min, max uint16) []Response {
	return []Response{ResponseString{fmt.Sprintf("Points updated! min: %d max: %d", min, max)}}
}

func TeamsUpdated(count uint8) []Response {
	return []Response{ResponseString{fmt.Sprintf("Teams updated! Now playing with %d", count)}}
}

func InvalidPoints(prefix string) string {
	return fmt.Sprintf("Invalid Format!\ntry: `%spoints <min> <max>`", prefix)
}

func InvalidTeams(prefix string) string {
	return fmt.Sprintf("Invalid Format!\ntry: `%steams <int>`", prefix)
}

func InvalidRoll(prefix string) string {
	return fmt.Sprintf("That is not a roll, try something like `%sr 2d6+3`", prefix)
}

// GameRejected explains why a game could not start
func GameRejected(err error, prefix string) string {
	switch {
	case errors.Is(err, teams.ErrNotEnoughPlayers), errors.Is(err, teams.ErrNotEnoughCountries):
		return "Not Enough Players or Countries!"
	case errors.Is(err, teams.ErrNoTeams):
		return fmt.Sprintf("Need at least one team, try `%steams <int>`", prefix)
	case errors.Is(err, teams.ErrPointRange):
		return fmt.Sprintf("The min points are above the max points, try `%spoints <min> <max>`", prefix)
	default:
		return "Could not start the game"
	}
}

func GameAnnounced(channelid string) []Response {
	return []Response{ResponseString{fmt.Sprintf("Doin the thing! Teams are out in <#%s>", channelid)}}
}

func PlayerList(conf store.Config) []Response {

	if len(conf.Players) == 0 {
		return []Response{ResponseString{"No players!"}}
	}

	var b strings.Builder
	b.WriteString("Players:\n")
	for i, player := range conf.Players {
		fmt.Fprintf(&b, "%d. %s\n", i+1, mention(player))
	}
	fmt.Fprintf(&b, "\nPoints:\nmin: %d\nmax: %d\n", conf.MinPoints, conf.MaxPoints)
	fmt.Fprintf(&b, "\nTeams: %d", conf.Teams)
	return []Response{ResponseString{b.String()}}
}

func pairLines(pairs []teams.Pair) string {
	if len(pairs) == 0 {
		return "Nobody"
	}
	lines := make([]string, len(pairs))
	for i, pair := range pairs {
		lines[i] = fmt.Sprintf("%s - %s", mention(pair.Player), pair.Country)
	}
	return strings.Join(lines, "\n")
}

// TeamsMessage is the announcement sent to the broadcast channel
func TeamsMessage(assignment teams.Assignment, gameid uuid.UUID) []Response {

	embed := discordgo.MessageEmbed{Title: "Bolt!", Color: color}
	for index, team := range assignment.Teams {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("**Team %d**", index+1),
			Value: pairLines(team),
		})
	}
	if len(assignment.Leftover) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "**Leftover**",
			Value: pairLines(assignment.Leftover),
		})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "**Points per Team**",
		Value: fmt.Sprint(assignment.Points),
	})
	if gameid != uuid.Nil {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Game %s", gameid)}
	}
	return []Response{ResponseEmbed{embed}}
}

func HistoryMessage(games []Game) []Response {

	if len(games) == 0 {
		return []Response{ResponseString{"No games played yet"}}
	}

	embed := discordgo.MessageEmbed{Title: "Last games", Color: color}
	for _, game := range games {
		var value strings.Builder
		for index, team := range game.Teams {
			names := make([]string, len(team))
			for i, pair := range team {
				names[i] = fmt.Sprintf("%s (%s)", mention(pair.Player), pair.Country)
			}
			fmt.Fprintf(&value, "Team %d: %s\n", index+1, strings.Join(names, ", "))
		}
		if len(game.Leftover) > 0 {
			fmt.Fprintf(&value, "Leftover: %s (%s)\n", mention(game.Leftover[0].Player), game.Leftover[0].Country)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s, %d points", game.PlayedAt.UTC().Format("2006-01-02 15:04"), game.Points),
			Value: value.String(),
		})
	}
	return []Response{ResponseEmbed{embed}}
}
