package export

import (
	"context"
	"strconv"
	"time"

	"guild-ledger/core/bot"

	"go.uber.org/zap"
)

const defaultReportDays = 30

// Commands exposes the snapshot export over the bot command surface.
type Commands struct {
	service *Service
	logger  *zap.Logger
}

// NewCommands creates the export command handlers.
func NewCommands(service *Service, logger *zap.Logger) *Commands {
	return &Commands{service: service, logger: logger}
}

// Register binds the export commands to the router.
func (c *Commands) Register(router *bot.Router) {
	router.Register("export",
		"export standings | export attendance [days]",
		"Upload a CSV snapshot to the guild's storage",
		c.handle)
}

func (c *Commands) handle(ctx context.Context, cmd bot.Command) []bot.Response {
	if len(cmd.Args) == 0 {
		return []bot.Response{bot.Errorf("usage: export standings | export attendance [days]")}
	}
	switch cmd.Args[0] {
	case "standings":
		name, err := c.service.ExportStandings(ctx, cmd.GuildID)
		if err != nil {
			c.logger.Error("Standings export failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
			return []bot.Response{bot.Errorf("could not export the standings")}
		}
		return []bot.Response{bot.Textf("Standings exported to `%s`", name)}
	case "attendance":
		days := defaultReportDays
		if len(cmd.Args) > 1 {
			parsed, err := strconv.Atoi(cmd.Args[1])
			if err != nil || parsed <= 0 {
				return []bot.Response{bot.Errorf("days must be a positive number, got %s", cmd.Args[1])}
			}
			days = parsed
		}
		to := time.Now().UTC()
		from := to.AddDate(0, 0, -days)
		name, err := c.service.ExportAttendance(ctx, cmd.GuildID, from, to)
		if err != nil {
			c.logger.Error("Attendance export failed", zap.String("trace_id", cmd.TraceID), zap.Error(err))
			return []bot.Response{bot.Errorf("could not export the attendance")}
		}
		return []bot.Response{bot.Textf("Attendance exported to `%s`", name)}
	default:
		return []bot.Response{bot.Errorf("unknown subcommand `%s`", cmd.Args[0])}
	}
}
