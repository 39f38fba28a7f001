package bot

import (
	"errors"
	"strconv"

	"potbot/internal/convert"
	"potbot/internal/dice"
	"potbot/internal/roster"
	"potbot/internal/store"
	"potbot/internal/teams"

	"github.com/rs/zerolog/log"
)

const historyLength = 5

var errAlreadyJoined = errors.New("already joined")

func (bot *Bot) startGame(request Request) ([]Response, error) {

	conf, err := bot.store.Read()
	if err != nil {
		return nil, err
	}

	assignment, err := teams.Assign(bot.newRand(), teams.Input{
		Players:         conf.Players,
		Countries:       conf.Countries,
		Teams:           conf.Teams,
		MinPoints:       conf.MinPoints,
		MaxPoints:       conf.MaxPoints,
		SpreadRemainder: conf.SpreadRemainder,
	})
	if err != nil {
		return nil, failure{GameRejected(err, request.prefix), err}
	}

	// The game goes out even if it cannot be archived
	game, err := bot.database.AddGame(assignment, bot.now())
	if err != nil {
		log.Error().Err(err).Msg("Could not archive game")
	}

	broadcast := request.channelID
	if conf.BroadcastChannel != 0 {
		broadcast = strconv.FormatUint(conf.BroadcastChannel, 10)
	}
	log.Info().Str("game", game.ID.String()).Int("teams", len(assignment.Teams)).Int("points", assignment.Points).Str("channel", broadcast).Msg("Announcing game")
	sendResponses(request.messenger, broadcast, TeamsMessage(assignment, game.ID))

	if broadcast == request.channelID {
		return nil, nil
	}
	return GameAnnounced(broadcast), nil
}

func (bot *Bot) join(request Request) ([]Response, error) {
	err := bot.store.Update(func(conf *store.Config) error {
		players, joined := roster.Join(conf.Players, request.authorID)
		if !joined {
			return errAlreadyJoined
		}
		conf.Players = players
		return nil
	})
	if errors.Is(err, errAlreadyJoined) {
		return AlreadyJoined(request.prefix), nil
	}
	if err != nil {
		return nil, err
	}
	return Joined(request.prefix), nil
}

func (bot *Bot) leave(request Request) ([]Response, error) {
	if err := bot.removePlayer(request.authorID); err != nil {
		return nil, err
	}
	return Left(), nil
}

func (bot *Bot) remove(request Request) ([]Response, error) {
	player := roster.MentionID(request.argument)
	if err := bot.removePlayer(player); err != nil {
		return nil, err
	}
	return Removed(player), nil
}

func (bot *Bot) removePlayer(player string) error {
	return bot.store.Update(func(conf *store.Config) error {
		conf.Players = roster.Remove(conf.Players, player)
		return nil
	})
}

func (bot *Bot) points(request Request) ([]Response, error) {
	min, max, err := roster.ParsePoints(request.argument)
	if err != nil {
		return nil, failure{InvalidPoints(request.prefix), err}
	}
	err = bot.store.Update(func(conf *store.Config) error {
		conf.MinPoints = min
		conf.MaxPoints = max
		return nil
	})
	if err != nil {
		return nil, err
	}
	return PointsUpdated(min, max), nil
}

func (bot *Bot) teams(request Request) ([]Response, error) {
	count, err := roster.ParseTeams(request.argument)
	if err != nil {
		return nil, failure{InvalidTeams(request.prefix), err}
	}
	err = bot.store.Update(func(conf *store.Config) error {
		conf.Teams = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return TeamsUpdated(count), nil
}

func (bot *Bot) list(request Request) ([]Response, error) {
	conf, err := bot.store.Read()
	if err != nil {
		return nil, err
	}
	return PlayerList(conf), nil
}

func (bot *Bot) roll(request Request) ([]Response, error) {
	result, err := dice.Roll(request.argument)
	if err != nil {
		return nil, failure{InvalidRoll(request.prefix), err}
	}
	return []Response{ResponseString{result.String()}}, nil
}

func (bot *Bot) convert(request Request) ([]Response, error) {
	result, err := convert.Convert(request.argument)
	if err != nil {
		return nil, failure{err.Error(), err}
	}
	return []Response{ResponseString{result.String()}}, nil
}

func (bot *Bot) history(request Request) ([]Response, error) {
	games, err := bot.database.GetGames(historyLength)
	if err != nil {
		return nil, err
	}
	return HistoryMessage(games), nil
}

func (bot *Bot) help(request Request) ([]Response, error) {
	return HelpMessage(request.prefix, bot.commands), nil
}
