package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Messenger is the part of the discord session the bot writes to
type Messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type ResponseString struct {
	string
}
type ResponseEmbed struct {
	discordgo.MessageEmbed
}

type Response interface {
	Send(channelid string, messenger Messenger)
}

// Delivery failures are only logged, never retried
func (response ResponseString) Send(channelid string, messenger Messenger) {
	if _, err := messenger.ChannelMessageSend(channelid, response.string); err != nil {
		log.Error().Err(err).Str("channel", channelid).Msg("Could not send message")
	}
}

func (response ResponseEmbed) Send(channelid string, messenger Messenger) {
	if _, err := messenger.ChannelMessageSendEmbed(channelid, &response.MessageEmbed); err != nil {
		log.Error().Err(err).Str("channel", channelid).Msg("Could not send embed")
	}
}

func sendResponses(messenger Messenger, channelid string, responses []Response) {
	for _, response := range responses {
		response.Send(channelid, messenger)
	}
}
