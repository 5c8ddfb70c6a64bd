package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"guild-ledger/core/bot"
	"guild-ledger/feature/character"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const searchLimit = 10

// Commands exposes the recipe catalogue over the bot command surface.
type Commands struct {
	service    *Service
	characters *character.Service
	logger     *zap.Logger
}

// NewCommands creates the recipe command handlers.
func NewCommands(service *Service, characters *character.Service, logger *zap.Logger) *Commands {
	return &Commands{service: service, characters: characters, logger: logger}
}

// Register binds the recipe commands to the router.
func (c *Commands) Register(router *bot.Router) {
	router.Register("recipe",
		"recipe add <name> <profession> | recipe find <name> | recipe learn <name> [character] | recipe who <name>",
		"Track crafting recipes and crafters",
		c.handle)
}

func (c *Commands) handle(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) == 0 {
		return []bot.Response{bot.Errorf("missing subcommand, try `recipe find <name>`")}
	}
	switch cmd.Args[0] {
	case "add":
		return c.add(ctx, cmd)
	case "find":
		return c.find(ctx, cmd)
	case "learn":
		return c.learn(ctx, cmd)
	case "who":
		return c.who(ctx, cmd)
	default:
		return []bot.Response{bot.Errorf("unknown subcommand `%s`", cmd.Args[0])}
	}
}

func (c *Commands) add(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) < 3 {
		return []bot.Response{bot.Errorf("usage: recipe add <name> <profession>")}
	}
	recipe, err := c.service.Add(ctx, cmd.GuildID, cmd.Args[1], cmd.Args[2])
	if err != nil {
		c.logger.Error("Recipe add failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("%v", err)}
	}
	return []bot.Response{bot.Textf("Added **%s** (%s) to the catalogue", recipe.Name, recipe.Profession)}
}

func (c *Commands) find(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) < 2 {
		return []bot.Response{bot.Errorf("usage: recipe find <name>")}
	}
	query := strings.Join(cmd.Args[1:], " ")

	recipes, err := c.service.Search(ctx, cmd.GuildID, query, "", searchLimit)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return []bot.Response{bot.Errorf("no recipe matches %s", query)}
		}
		c.logger.Error("Recipe search failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not search the catalogue")}
	}

	embed := discordgo.MessageEmbed{Title: "Recipes", Color: bot.EmbedColor}
	for _, recipe := range recipes {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%d)", recipe.Name, recipe.ID),
			Value: recipe.Profession,
		})
	}
	return []bot.Response{bot.Embed{MessageEmbed: embed}}
}

func (c *Commands) learn(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) < 2 {
		return []bot.Response{bot.Errorf("usage: recipe learn <name> [character]")}
	}
	name := ""
	if len(cmd.Args) > 2 {
		name = cmd.Args[2]
	}

	who, err := c.characters.Get(ctx, cmd.GuildID, cmd.UserID, name)
	if err != nil {
		if errors.Is(err, character.ErrNotFound) {
			return []bot.Response{bot.Errorf("no matching character, register one with `char add`")}
		}
		c.logger.Error("Character lookup failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not look up your character")}
	}

	recipes, err := c.service.Search(ctx, cmd.GuildID, cmd.Args[1], "", searchLimit)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return []bot.Response{bot.Errorf("no recipe matches %s", cmd.Args[1])}
		}
		c.logger.Error("Recipe search failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not search the catalogue")}
	}
	if len(recipes) > 1 {
		names := make([]string, 0, len(recipes))
		for _, recipe := range recipes {
			names = append(names, recipe.Name)
		}
		return []bot.Response{bot.Textf("Several recipes match, pick one: %s", strings.Join(names, ", "))}
	}

	learned, err := c.service.Learn(ctx, who.ID, []int{recipes[0].ID})
	if err != nil {
		c.logger.Error("Recipe learn failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not record the recipe")}
	}
	if learned == 0 {
		return []bot.Response{bot.Textf("**%s** already knows %s", who.Name, recipes[0].Name)}
	}
	return []bot.Response{bot.Textf("**%s** now knows %s", who.Name, recipes[0].Name)}
}

func (c *Commands) who(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) < 2 {
		return []bot.Response{bot.Errorf("usage: recipe who <name>")}
	}
	query := strings.Join(cmd.Args[1:], " ")

	recipes, err := c.service.Search(ctx, cmd.GuildID, query, "", searchLimit)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return []bot.Response{bot.Errorf("no recipe matches %s", query)}
		}
		c.logger.Error("Recipe search failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not search the catalogue")}
	}

	embed := discordgo.MessageEmbed{Title: "Crafters", Color: bot.EmbedColor}
	for _, recipe := range recipes {
		crafters, err := c.service.Crafters(ctx, cmd.GuildID, recipe.ID)
		if err != nil {
			c.logger.Error("Crafter lookup failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
			return []bot.Response{bot.Errorf("could not look up the crafters")}
		}
		value := "nobody yet"
		if len(crafters) > 0 {
			names := make([]string, 0, len(crafters))
			for _, crafter := range crafters {
				names = append(names, crafter.CharacterName)
			}
			value = strings.Join(names, ", ")
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  recipe.Name,
			Value: value,
		})
	}
	return []bot.Response{bot.Embed{MessageEmbed: embed}}
}
