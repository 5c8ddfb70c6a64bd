package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// EmbedColor is the accent color used by all bot embeds.
const EmbedColor = 0xC79C6E

// Response is one message the bot sends back to the originating channel.
type Response interface {
	Send(session *discordgo.Session, channelID string) error
}

// Text is a plain text response.
type Text string

// Send posts the text to the channel.
func (r Text) Send(session *discordgo.Session, channelID string) error {
	_, err := session.ChannelMessageSend(channelID, string(r))
	return err
}

// Textf builds a formatted text response.
func Textf(format string, args ...any) Text {
	return Text(fmt.Sprintf(format, args...))
}

// Errorf builds a user-facing error response.
func Errorf(format string, args ...any) Text {
	return Text("Cannot do that: " + fmt.Sprintf(format, args...))
}

// Embed is a rich embed response.
type Embed struct {
	discordgo.MessageEmbed
}

// Send posts the embed to the channel.
func (r Embed) Send(session *discordgo.Session, channelID string) error {
	_, err := session.ChannelMessageSendEmbed(channelID, &r.MessageEmbed)
	return err
}
