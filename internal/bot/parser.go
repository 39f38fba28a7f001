package bot

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

const (
	PARSEID_OK                     = iota
	PARSEID_NO_BOT_PREFIX          = iota
	PARSEID_NO_COMMAND             = iota
	PARSEID_COMMAND_NOT_RECOGNISED = iota
	PARSEID_NO_INPUT               = iota
	PARSEID_UNEXPECTED_INPUT       = iota
)

var errorMessages map[int]string = map[int]string{
	PARSEID_NO_COMMAND:             "No command provided",
	PARSEID_COMMAND_NOT_RECOGNISED: "Command `%s` not recognised",
	PARSEID_NO_INPUT:               "Command `%s` requires an argument, try `%s`",
	PARSEID_UNEXPECTED_INPUT:       "Command `%s` takes no argument, try `%s`",
}

type arity int

const (
	argNone arity = iota
	argRequired
)

type handler func(bot *Bot, request Request) ([]Response, error)

type command struct {
	name    string
	aliases []string
	usage   string // without the prefix
	help    string
	arity   arity
	handler handler
}

type commandTable []*command

func newCommandTable() commandTable {
	return commandTable{
		{name: "bolt", usage: "bolt", help: "Shuffle the players into teams, give everyone a country and draw the points", arity: argNone, handler: (*Bot).startGame},
		{name: "join", usage: "join", help: "Join the next game", arity: argNone, handler: (*Bot).join},
		{name: "lv", aliases: []string{"leave"}, usage: "lv", help: "Leave the next game", arity: argNone, handler: (*Bot).leave},
		{name: "rm", aliases: []string{"remove"}, usage: "rm <@player>", help: "Remove a player from the next game", arity: argRequired, handler: (*Bot).remove},
		{name: "ls", aliases: []string{"list"}, usage: "ls", help: "List the players and the points range", arity: argNone, handler: (*Bot).list},
		{name: "points", usage: "points <min> <max>", help: "Set the range the points are drawn from", arity: argRequired, handler: (*Bot).points},
		{name: "teams", usage: "teams <int>", help: "Set the number of teams", arity: argRequired, handler: (*Bot).teams},
		{name: "r", aliases: []string{"roll"}, usage: "r <dice>", help: "Roll some dice, e.g. `2d6+3`", arity: argRequired, handler: (*Bot).roll},
		{name: "conv", aliases: []string{"convert"}, usage: "conv <value> <unit> > <unit>", help: "Convert between units, e.g. `10 km > mi`", arity: argRequired, handler: (*Bot).convert},
		{name: "history", usage: "history", help: "Show the last games", arity: argNone, handler: (*Bot).history},
		{name: "help", usage: "help", help: "Print the usage of the different commands", arity: argNone, handler: (*Bot).help},
	}
}

func (table commandTable) lookup(name string) (*command, bool) {
	for _, c := range table {
		if c.name == name {
			return c, true
		}
		for _, alias := range c.aliases {
			if alias == name {
				return c, true
			}
		}
	}
	return nil, false
}

type ParseResult struct {
	command      *command
	parseid      int
	errorMessage string
	argument     string
}

// Parse splits "<prefix><command> <argument>" and matches the command against the table.
// Everything after the command word is handed over as a single argument.
func (table commandTable) Parse(prefix string, message string) ParseResult {

	message = strings.TrimSpace(message)

	// The message has to start with the bot prefix
	if prefix == "" || !strings.HasPrefix(message, prefix) {
		log.Trace().Msg("Reject message not intended for the bot")
		return ParseResult{parseid: PARSEID_NO_BOT_PREFIX}
	}
	rest := message[len(prefix):]

	// Get the command if present
	commandString, argument := rest, ""
	if index := strings.IndexFunc(rest, unicode.IsSpace); index != -1 {
		commandString, argument = rest[:index], strings.TrimSpace(rest[index:])
	}
	if commandString == "" {
		parseid := PARSEID_NO_COMMAND
		return ParseResult{parseid: parseid, errorMessage: errorMessages[parseid]}
	}

	// Match the command
	c, ok := table.lookup(strings.ToLower(commandString))
	if !ok {
		parseid := PARSEID_COMMAND_NOT_RECOGNISED
		return ParseResult{parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString)}
	}

	switch {
	case c.arity == argRequired && argument == "":
		parseid := PARSEID_NO_INPUT
		return ParseResult{command: c, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString, prefix+c.usage)}
	case c.arity == argNone && argument != "":
		parseid := PARSEID_UNEXPECTED_INPUT
		return ParseResult{command: c, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString, prefix+c.usage)}
	}
	return ParseResult{command: c, parseid: PARSEID_OK, argument: argument}
}
