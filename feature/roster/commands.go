package roster

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"guild-ledger/core/bot"
	"guild-ledger/feature/attendance"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Commands exposes event import over the bot command surface.
type Commands struct {
	service     *Service
	attendances *attendance.Service
	logger      *zap.Logger
}

// NewCommands creates the roster command handlers.
func NewCommands(service *Service, attendances *attendance.Service, logger *zap.Logger) *Commands {
	return &Commands{service: service, attendances: attendances, logger: logger}
}

// Register binds the roster commands to the router.
func (c *Commands) Register(router *bot.Router) {
	router.Register("roster",
		"roster <event-id> <raid> <size>",
		"Import a raid-helper event and record attendance",
		c.importEvent)
}

func (c *Commands) importEvent(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) < 3 {
		return []bot.Response{bot.Errorf("usage: roster <event-id> <raid> <size>")}
	}
	eventID := cmd.Args[0]

	raid, err := c.attendances.FindRaid(ctx, cmd.Args[1])
	if err != nil {
		if errors.Is(err, attendance.ErrRaidNotFound) {
			return []bot.Response{bot.Errorf("no raid named %s, try `raids`", cmd.Args[1])}
		}
		c.logger.Error("Raid lookup failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not look up the raid")}
	}

	size, err := strconv.Atoi(cmd.Args[2])
	if err != nil || size <= 0 {
		return []bot.Response{bot.Errorf("raid size must be a positive number, got %s", cmd.Args[2])}
	}

	result, err := c.service.Import(ctx, cmd.GuildID, eventID, raid.ID, size)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return []bot.Response{bot.Errorf("event %s was not found on raid-helper", eventID)}
		}
		c.logger.Error("Roster import failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not import the event")}
	}

	embed := discordgo.MessageEmbed{
		Title: "Roster imported",
		Color: bot.EmbedColor,
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Recorded",
		Value: strconv.Itoa(result.Written) + " attendances for " +
			result.When.Format("2006-01-02 15:04"),
	})
	if len(result.Matched) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Matched",
			Value: strings.Join(result.Matched, ", "),
		})
	}
	if len(result.Unmatched) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Needs manual assignment",
			Value: strings.Join(result.Unmatched, ", "),
		})
	}
	return []bot.Response{bot.Embed{MessageEmbed: embed}}
}
