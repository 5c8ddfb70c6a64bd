package dkp

import (
	"context"
	"fmt"
	"strings"

	"guild-ledger/core/bot"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Commands exposes the DKP standings over the bot command surface.
type Commands struct {
	service *Service
	logger  *zap.Logger
}

// NewCommands creates the DKP command handlers.
func NewCommands(service *Service, logger *zap.Logger) *Commands {
	return &Commands{service: service, logger: logger}
}

// Register binds the DKP commands to the router.
func (c *Commands) Register(router *bot.Router) {
	router.Register("dkp",
		"dkp",
		"Show the guild's DKP standings",
		c.standings)
	router.Register("dkpreset",
		"dkpreset confirm",
		"Flip all records out of DKP, starting a fresh season",
		c.reset)
}

func (c *Commands) standings(ctx context.Context, cmd bot.Command) []bot.Response {
	standings, err := c.service.Standings(ctx, cmd.GuildID)
	if err != nil {
		c.logger.Error("Standings failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not compute the standings")}
	}
	if len(standings) == 0 {
		return []bot.Response{bot.Text("No characters registered yet")}
	}

	var sb strings.Builder
	for _, standing := range standings {
		name := standing.CharacterName
		if standing.Main {
			name += " (main)"
		}
		fmt.Fprintf(&sb, "%s: %d\n", name, standing.Score)
	}
	embed := discordgo.MessageEmbed{
		Title:       "DKP standings",
		Description: sb.String(),
		Color:       bot.EmbedColor,
	}
	return []bot.Response{bot.Embed{MessageEmbed: embed}}
}

func (c *Commands) reset(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) == 0 || !strings.EqualFold(cmd.Args[0], "confirm") {
		return []bot.Response{bot.Text("This clears every DKP balance in the guild. Run `dkpreset confirm` to proceed.")}
	}

	if err := c.service.Reset(ctx, cmd.GuildID); err != nil {
		c.logger.Error("DKP reset failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not apply the reset")}
	}
	return []bot.Response{bot.Text("DKP reset applied, a fresh season begins")}
}
