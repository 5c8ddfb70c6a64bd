package attendance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"guild-ledger/core/bot"
	"guild-ledger/feature/character"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const defaultReportDays = 30

// Commands exposes attendance tracking over the bot command surface.
type Commands struct {
	service    *Service
	characters *character.Service
	logger     *zap.Logger
}

// NewCommands creates the attendance command handlers.
func NewCommands(service *Service, characters *character.Service, logger *zap.Logger) *Commands {
	return &Commands{service: service, characters: characters, logger: logger}
}

// Register binds the attendance commands to the router.
func (c *Commands) Register(router *bot.Router) {
	router.Register("attend",
		"attend <raid> <size> [character] [cancelled] [event]",
		"Record raid attendance for the current reset window",
		c.attend)
	router.Register("raids",
		"raids [add <name> <short-name> <period-days> <start YYYY-MM-DD>]",
		"List or register the tracked raids and their reset schedules",
		c.raids)
	router.Register("report",
		"report [days]",
		"Show attendance counts over the recent reset windows",
		c.report)
}

func (c *Commands) attend(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) < 2 {
		return []bot.Response{bot.Errorf("usage: attend <raid> <size> [character] [cancelled] [event]")}
	}

	raid, err := c.service.FindRaid(ctx, cmd.Args[0])
	if err != nil {
		if errors.Is(err, ErrRaidNotFound) {
			return []bot.Response{bot.Errorf("no raid named %s, try `raids`", cmd.Args[0])}
		}
		c.logger.Error("Raid lookup failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not look up the raid")}
	}

	size, err := strconv.Atoi(cmd.Args[1])
	if err != nil || size <= 0 {
		return []bot.Response{bot.Errorf("raid size must be a positive number, got %s", cmd.Args[1])}
	}

	name := ""
	cancelled := false
	event := false
	for _, arg := range cmd.Args[2:] {
		switch strings.ToLower(arg) {
		case "cancelled":
			cancelled = true
		case "event":
			event = true
		default:
			name = arg
		}
	}

	who, err := c.characters.Get(ctx, cmd.GuildID, cmd.UserID, name)
	if err != nil {
		if errors.Is(err, character.ErrNotFound) {
			return []bot.Response{bot.Errorf("no matching character, register one with `char add`")}
		}
		c.logger.Error("Character lookup failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not look up your character")}
	}

	record, err := c.service.Record(ctx, RecordInput{
		GuildID:     cmd.GuildID,
		CharacterID: who.ID,
		RaidID:      raid.ID,
		RaidSize:    size,
		When:        time.Now().UTC(),
		Cancelled:   cancelled,
		GuildEvent:  event,
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyRecorded) {
			return []bot.Response{bot.Errorf("**%s** already attended %s (%d) this reset", who.Name, raid.Name, size)}
		}
		if errors.Is(err, ErrBeforeFirstReset) {
			return []bot.Response{bot.Errorf("%s resets start on %s", raid.Name, raid.ResetStart.Format("2006-01-02"))}
		}
		c.logger.Error("Attendance record failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not record the attendance")}
	}

	return []bot.Response{bot.Textf("Recorded **%s** at %s (%d), reset of %s",
		who.Name, raid.Name, size, record.WindowStart.Format("2006-01-02"))}
}

func (c *Commands) raids(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) > 0 && strings.EqualFold(cmd.Args[0], "add") {
		return c.addRaid(ctx, cmd)
	}

	raids, err := c.service.ListRaids(ctx)
	if err != nil {
		c.logger.Error("Raid listing failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not load the raid catalogue")}
	}
	if len(raids) == 0 {
		return []bot.Response{bot.Text("No raids tracked yet")}
	}

	embed := discordgo.MessageEmbed{Title: "Tracked raids", Color: bot.EmbedColor}
	for _, raid := range raids {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%s)", raid.Name, raid.ShortName),
			Value: fmt.Sprintf("resets every %d days", raid.ResetPeriodDays),
		})
	}
	return []bot.Response{bot.Embed{MessageEmbed: embed}}
}

func (c *Commands) addRaid(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) < 5 {
		return []bot.Response{bot.Errorf("usage: raids add <name> <short-name> <period-days> <start YYYY-MM-DD>")}
	}

	period, err := strconv.Atoi(cmd.Args[3])
	if err != nil || period <= 0 {
		return []bot.Response{bot.Errorf("period must be a positive number of days, got %s", cmd.Args[3])}
	}

	start, err := time.Parse("2006-01-02", cmd.Args[4])
	if err != nil {
		return []bot.Response{bot.Errorf("start must look like 2024-01-03, got %s", cmd.Args[4])}
	}

	raid, err := c.service.AddRaid(ctx, cmd.Args[1], cmd.Args[2], period, start)
	if err != nil {
		c.logger.Error("Raid creation failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not register the raid")}
	}

	return []bot.Response{bot.Textf("Registered **%s** (%s), resets every %d days", raid.Name, raid.ShortName, period)}
}

func (c *Commands) report(ctx context.Context, cmd bot.Command) []bot.Response {
	days := defaultReportDays
	if len(cmd.Args) > 0 {
		parsed, err := strconv.Atoi(cmd.Args[0])
		if err != nil || parsed <= 0 {
			return []bot.Response{bot.Errorf("days must be a positive number, got %s", cmd.Args[0])}
		}
		days = parsed
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)
	rows, err := c.service.Report(ctx, cmd.GuildID, from, to)
	if err != nil {
		c.logger.Error("Attendance report failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
		return []bot.Response{bot.Errorf("could not build the report")}
	}
	if len(rows) == 0 {
		return []bot.Response{bot.Textf("No attendance recorded in the last %d days", days)}
	}

	var sb strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&sb, "%s: %d\n", row.CharacterName, row.Count)
	}
	embed := discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Attendance, last %d days", days),
		Description: sb.String(),
		Color:       bot.EmbedColor,
	}
	return []bot.Response{bot.Embed{MessageEmbed: embed}}
}
