package bot

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"potbot/internal/common"
	"potbot/internal/store"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// What a command handler gets to work with
type Request struct {
	messenger Messenger
	authorID  string
	channelID string
	argument  string
	prefix    string
}

// failure is a command error the invoker should see.
// Any other error from a handler is only logged.
type failure struct {
	message string
	cause   error
}

func (f failure) Error() string {
	if f.cause == nil {
		return f.message
	}
	return fmt.Sprintf("%s: %v", f.message, f.cause)
}

func (f failure) Unwrap() error {
	return f.cause
}

type Bot struct {
	token        string
	store        *store.Store
	database     *DatabaseBot
	commands     commandTable
	housekeeping *common.TimedExecutor
	historyKeep  int
	newRand      func() *rand.Rand
	now          func() time.Time
}

func CreateBot(token string, config *store.Store, database *DatabaseBot, historyKeep int, housekeepingTimeout time.Duration) (*Bot, error) {

	if config == nil || database == nil {
		return nil, errors.New("bot needs a config store and a database")
	}

	bot := &Bot{
		token:       token,
		store:       config,
		database:    database,
		commands:    newCommandTable(),
		historyKeep: historyKeep,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		now: time.Now,
	}
	// Housekeeping for the games database
	bot.housekeeping = common.NewTimedExecutor(housekeepingTimeout, bot.pruneHistory)

	return bot, nil
}

func (bot *Bot) Run() error {
	// Create session
	discord, err := discordgo.New("Bot " + bot.token)
	if err != nil {
		return fmt.Errorf("could not create discord session: %w", err)
	}
	discord.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	// Event handlers
	discord.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info().Str("user", s.State.User.Username).Msg("Logged in")
	})
	discord.AddHandler(bot.Receive)

	// Open session
	if err := discord.Open(); err != nil {
		return fmt.Errorf("could not open discord session: %w", err)
	}
	defer discord.Close()

	// keep bot running untill there is an os interruption (ctrl + C)
	log.Info().Msg("Bot is running, press Ctrl+C to exit")
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info().Msg("Shutting down")
	return nil
}

func (bot *Bot) Receive(discord *discordgo.Session, message *discordgo.MessageCreate) {

	if message.Author == nil {
		return
	}
	// Reject my own messages
	if discord.State != nil && discord.State.User != nil && message.Author.ID == discord.State.User.ID {
		return
	}

	bot.housekeeping.Execute()
	bot.handle(discord, message.Author.ID, message.ChannelID, message.Content)
}

// handle parses one message and runs the matching command.
// No error goes further than this: they end up as a reply or in the log.
func (bot *Bot) handle(messenger Messenger, authorID string, channelID string, content string) {

	conf, err := bot.store.Read()
	if err != nil {
		log.Error().Err(err).Msg("Could not read config")
		return
	}
	prefix := conf.CommandPrefix()

	parseResult := bot.commands.Parse(prefix, content)
	switch parseResult.parseid {
	case PARSEID_NO_BOT_PREFIX:
		return
	case PARSEID_NO_COMMAND, PARSEID_COMMAND_NOT_RECOGNISED:
		log.Debug().Str("content", content).Msg(parseResult.errorMessage)
		return
	case PARSEID_OK:
		c := parseResult.command
		logger := log.With().Str("command", c.name).Str("author", authorID).Str("channel", channelID).Logger()
		logger.Debug().Str("argument", parseResult.argument).Msg("Command understood")

		request := Request{
			messenger: messenger,
			authorID:  authorID,
			channelID: channelID,
			argument:  parseResult.argument,
			prefix:    prefix,
		}
		responses, err := c.handler(bot, request)
		var f failure
		switch {
		case err == nil:
		case errors.As(err, &f):
			logger.Info().Err(err).Msg("Command rejected")
			responses = append(responses, ResponseString{f.message})
		default:
			logger.Error().Err(err).Msg("Command failed")
		}
		sendResponses(messenger, channelID, responses)
	default:
		// The command is invalid input, so it contains an error message
		log.Debug().Str("content", content).Str("reason", parseResult.errorMessage).Msg("Wrong input")
		sendResponses(messenger, channelID, InputNotValid(parseResult.errorMessage))
	}
}

func (bot *Bot) pruneHistory() {
	if bot.historyKeep <= 0 {
		return
	}
	deleted, err := bot.database.Prune(bot.historyKeep)
	if err != nil {
		log.Error().Err(err).Msg("Could not prune games history")
		return
	}
	if deleted > 0 {
		log.Info().Int("deleted", deleted).Msg("Pruned games history")
	}
}
