package character

import (
	"context"
	"errors"
	"strings"

	"guild-ledger/core/bot"
	"guild-ledger/core/wow"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Commands exposes the character roster over the bot command surface.
type Commands struct {
	service *Service
	logger  *zap.Logger
}

// NewCommands creates the character command handlers.
func NewCommands(service *Service, logger *zap.Logger) *Commands {
	return &Commands{service: service, logger: logger}
}

// Register binds the character commands to the router.
func (c *Commands) Register(router *bot.Router) {
	router.Register("char",
		"char add <name> <class> <role> [spec] [main] | char list | char remove <name> | char main <name>",
		"Manage your characters",
		c.handle)
}

func (c *Commands) handle(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) == 0 {
		return []bot.Response{bot.Errorf("missing subcommand, try `char list`")}
	}
	switch cmd.Args[0] {
	case "add":
		return c.add(ctx, cmd)
	case "list":
		return c.list(ctx, cmd)
	case "remove":
		return c.remove(ctx, cmd)
	case "main":
		return c.setMain(ctx, cmd)
	default:
		return []bot.Response{bot.Errorf("unknown subcommand `%s`", cmd.Args[0])}
	}
}

func (c *Commands) add(ctx context.Context, cmd bot.Command) []bot.Response {
	args := cmd.Args[1:]
	if len(args) < 3 {
		return []bot.Response{bot.Errorf("usage: char add <name> <class> <role> [spec] [main]")}
	}
	name := args[0]

	class, err := wow.ParseClass(args[1])
	if err != nil {
		return []bot.Response{bot.Errorf("%v", err)}
	}
	role, err := wow.ParseRole(args[2])
	if err != nil {
		return []bot.Response{bot.Errorf("%v", err)}
	}

	spec := wow.SpecNone
	main := false
	for _, arg := range args[3:] {
		if strings.EqualFold(arg, "main") {
			main = true
			continue
		}
		spec, err = wow.ParseSpec(arg)
		if err != nil {
			return []bot.Response{bot.Errorf("%v", err)}
		}
	}

	character, err := c.service.Add(ctx, cmd.GuildID, cmd.UserID, name, class, role, spec, main)
	if err != nil {
		c.logger.Warn("Character add failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("%v", err)}
	}

	suffix := ""
	if character.Main {
		suffix = " as your main"
	}
	return []bot.Response{bot.Textf("Registered **%s** (%s)%s", character.Name, character.Key().String(), suffix)}
}

func (c *Commands) list(ctx context.Context, cmd bot.Command) []bot.Response {
	characters, err := c.service.ListByUser(ctx, cmd.GuildID, cmd.UserID)
	if err != nil {
		c.logger.Error("Character list failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not load your characters")}
	}
	if len(characters) == 0 {
		return []bot.Response{bot.Text("You have no characters registered, try `char add`")}
	}

	embed := discordgo.MessageEmbed{Title: "Your characters", Color: bot.EmbedColor}
	for _, character := range characters {
		name := character.Name
		if character.Main {
			name += " (main)"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: character.Key().String(),
		})
	}
	return []bot.Response{bot.Embed{MessageEmbed: embed}}
}

func (c *Commands) remove(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) < 2 {
		return []bot.Response{bot.Errorf("usage: char remove <name>")}
	}
	name := cmd.Args[1]
	if err := c.service.Remove(ctx, cmd.GuildID, cmd.UserID, name); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []bot.Response{bot.Errorf("you have no character named %s", name)}
		}
		c.logger.Error("Character remove failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not remove %s", name)}
	}
	return []bot.Response{bot.Textf("Removed **%s**", name)}
}

func (c *Commands) setMain(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) < 2 {
		return []bot.Response{bot.Errorf("usage: char main <name>")}
	}
	character, err := c.service.SetMain(ctx, cmd.GuildID, cmd.UserID, cmd.Args[1])
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []bot.Response{bot.Errorf("you have no character named %s", cmd.Args[1])}
		}
		c.logger.Error("Character main failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not update your main")}
	}
	return []bot.Response{bot.Textf("**%s** is now your main", character.Name)}
}

