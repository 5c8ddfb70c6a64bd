package item

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"guild-ledger/core/bot"
	"guild-ledger/core/priority"
	"guild-ledger/feature/character"
	"guild-ledger/feature/item/models"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const searchLimit = 10

// Commands exposes loot tracking over the bot command surface.
type Commands struct {
	service    *Service
	characters *character.Service
	logger     *zap.Logger
}

// NewCommands creates the item command handlers.
func NewCommands(service *Service, characters *character.Service, logger *zap.Logger) *Commands {
	return &Commands{service: service, characters: characters, logger: logger}
}

// Register binds the item commands to the router.
func (c *Commands) Register(router *bot.Router) {
	router.Register("item",
		"item <name or id>",
		"Search the item catalogue",
		c.search)
	router.Register("loot",
		"loot <item id> [character] [dkp] | loot list [character] | loot remove <item id> [character]",
		"Record or inspect loots",
		c.loot)
	router.Register("prio",
		"prio <name or id>",
		"Show the priority list of an item",
		c.prio)
}

// resolve finds one item by numeric id or by name search. More than one
// match is an answer too, the caller renders the choice.
func (c *Commands) resolve(ctx context.Context, guildID, query string) ([]models.Item, error) {
	if id, err := strconv.Atoi(query); err == nil {
		item, err := c.service.GetItem(ctx, guildID, id)
		if err != nil {
			return nil, err
		}
		return []models.Item{*item}, nil
	}
	return c.service.SearchItems(ctx, guildID, query, searchLimit)
}

func (c *Commands) search(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) == 0 {
		return []bot.Response{bot.Errorf("usage: item <name or id>")}
	}
	query := strings.Join(cmd.Args, " ")

	items, err := c.resolve(ctx, cmd.GuildID, query)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return []bot.Response{bot.Errorf("no item matches %s", query)}
		}
		c.logger.Error("Item search failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not search the catalogue")}
	}

	embed := discordgo.MessageEmbed{Title: "Items", Color: bot.EmbedColor}
	for _, item := range items {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%d)", item.Name, item.ID),
			Value: item.Boss,
		})
	}
	return []bot.Response{bot.Embed{MessageEmbed: embed}}
}

func (c *Commands) loot(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) == 0 {
		return []bot.Response{bot.Errorf("usage: loot <item id> [character] [dkp]")}
	}
	switch cmd.Args[0] {
	case "list":
		return c.lootList(ctx, cmd)
	case "remove":
		return c.lootRemove(ctx, cmd)
	default:
		return c.lootAdd(ctx, cmd)
	}
}

func (c *Commands) lootAdd(ctx context.Context, cmd bot.Command) []bot.Response {
	itemID, err := strconv.Atoi(cmd.Args[0])
	if err != nil {
		return []bot.Response{bot.Errorf("item id must be a number, got %s", cmd.Args[0])}
	}

	name := ""
	inDKP := false
	for _, arg := range cmd.Args[1:] {
		if strings.EqualFold(arg, "dkp") {
			inDKP = true
			continue
		}
		name = arg
	}

	who, err := c.characters.Get(ctx, cmd.GuildID, cmd.UserID, name)
	if err != nil {
		if errors.Is(err, character.ErrNotFound) {
			return []bot.Response{bot.Errorf("no matching character, register one with `char add`")}
		}
		c.logger.Error("Character lookup failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not look up your character")}
	}

	_, err = c.service.RegisterLoot(ctx, cmd.GuildID, itemID, who.ID, inDKP)
	if err != nil {
		switch {
		case errors.Is(err, ErrItemNotFound):
			return []bot.Response{bot.Errorf("no item %d in the catalogue", itemID)}
		case errors.Is(err, ErrLootCapReached):
			return []bot.Response{bot.Errorf("**%s** already holds the maximum copies of item %d", who.Name, itemID)}
		}
		c.logger.Error("Loot record failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not record the loot")}
	}

	suffix := ""
	if inDKP {
		suffix = " (counted in DKP)"
	}
	return []bot.Response{bot.Textf("Loot %d recorded for **%s**%s", itemID, who.Name, suffix)}
}

func (c *Commands) lootList(ctx context.Context, cmd bot.Command) []bot.Response {
	name := ""
	if len(cmd.Args) > 1 {
		name = cmd.Args[1]
	}
	who, err := c.characters.Get(ctx, cmd.GuildID, cmd.UserID, name)
	if err != nil {
		if errors.Is(err, character.ErrNotFound) {
			return []bot.Response{bot.Errorf("no matching character")}
		}
		c.logger.Error("Character lookup failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not look up your character")}
	}

	loots, err := c.service.ListLoots(ctx, who.ID, searchLimit)
	if err != nil {
		c.logger.Error("Loot listing failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not load the loots")}
	}
	if len(loots) == 0 {
		return []bot.Response{bot.Textf("**%s** has no recorded loots", who.Name)}
	}

	var sb strings.Builder
	for _, loot := range loots {
		flag := ""
		if loot.InDKP {
			flag = " (dkp)"
		}
		fmt.Fprintf(&sb, "item %d, %s%s\n", loot.ItemID, loot.CreatedAt.Format("2006-01-02"), flag)
	}
	embed := discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Loots of %s", who.Name),
		Description: sb.String(),
		Color:       bot.EmbedColor,
	}
	return []bot.Response{bot.Embed{MessageEmbed: embed}}
}

func (c *Commands) lootRemove(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) < 2 {
		return []bot.Response{bot.Errorf("usage: loot remove <item id> [character]")}
	}
	itemID, err := strconv.Atoi(cmd.Args[1])
	if err != nil {
		return []bot.Response{bot.Errorf("item id must be a number, got %s", cmd.Args[1])}
	}
	name := ""
	if len(cmd.Args) > 2 {
		name = cmd.Args[2]
	}

	who, err := c.characters.Get(ctx, cmd.GuildID, cmd.UserID, name)
	if err != nil {
		if errors.Is(err, character.ErrNotFound) {
			return []bot.Response{bot.Errorf("no matching character")}
		}
		c.logger.Error("Character lookup failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not look up your character")}
	}

	if err := c.service.RemoveLastLoot(ctx, who.ID, itemID, false); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return []bot.Response{bot.Errorf("**%s** has no removable loot of item %d", who.Name, itemID)}
		}
		c.logger.Error("Loot removal failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not remove the loot")}
	}
	return []bot.Response{bot.Textf("Removed the last loot of item %d for **%s**", itemID, who.Name)}
}

func (c *Commands) prio(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) == 0 {
		return []bot.Response{bot.Errorf("usage: prio <name or id>")}
	}
	query := strings.Join(cmd.Args, " ")

	items, err := c.resolve(ctx, cmd.GuildID, query)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return []bot.Response{bot.Errorf("no item matches %s", query)}
		}
		c.logger.Error("Item search failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not search the catalogue")}
	}
	if len(items) > 1 {
		names := make([]string, 0, len(items))
		for _, item := range items {
			names = append(names, fmt.Sprintf("%s (%d)", item.Name, item.ID))
		}
		return []bot.Response{bot.Textf("Several items match, pick one: %s", strings.Join(names, ", "))}
	}
	item := items[0]

	table, err := c.service.Priorities(ctx, cmd.GuildID)
	if err != nil {
		c.logger.Error("Priority load failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not load the priorities")}
	}
	entry, ok := table[item.ID]
	if !ok || entry.List == nil || !entry.List.HasRoles() {
		return []bot.Response{bot.Textf("**%s** has no priority list", item.Name)}
	}

	roles, err := c.service.RoleMap(ctx, cmd.GuildID)
	if err != nil {
		c.logger.Error("Role map load failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not load the role labels")}
	}

	rendered := RenderPriorities(entry.List, InvertRoleMap(roles))
	embed := discordgo.MessageEmbed{
		Title: fmt.Sprintf("Priorities for %s", item.Name),
		Color: bot.EmbedColor,
	}
	for _, tier := range priority.Tiers() {
		line, ok := rendered[tier]
		if !ok {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  tier.String(),
			Value: line,
		})
	}
	return []bot.Response{bot.Embed{MessageEmbed: embed}}
}
