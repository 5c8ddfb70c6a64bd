package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"guild-ledger/core/logger"
)

// Bot wires a discordgo session to the command router.
type Bot struct {
	session *discordgo.Session
	router  *Router
	logger  *zap.Logger
}

// New creates the bot. The session is not opened until Run.
func New(cfg Config, router *Router, log *zap.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	b := &Bot{session: session, router: router, logger: log}
	session.AddHandler(b.receive)
	return b, nil
}

// Run opens the session and blocks until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	b.logger.Info("Discord session open")

	<-ctx.Done()
	b.logger.Info("Closing discord session")
	return b.session.Close()
}

func (b *Bot) receive(session *discordgo.Session, message *discordgo.MessageCreate) {
	// Never react to our own messages.
	if message.Author.ID == session.State.User.ID {
		return
	}
	// Commands only make sense inside a guild.
	if message.GuildID == "" {
		return
	}

	cmd, ok := b.router.Parse(message.Content)
	if !ok {
		return
	}
	cmd.GuildID = message.GuildID
	cmd.ChannelID = message.ChannelID
	cmd.UserID = message.Author.ID
	cmd.TraceID = uuid.NewString()

	l := logger.WithTrace(b.logger, cmd.TraceID)
	l.Info("Command received",
		zap.String("command", cmd.Name),
		zap.Int("args", len(cmd.Args)),
		zap.String("guild", cmd.GuildID),
		zap.String("user", cmd.UserID),
	)

	responses := b.router.Dispatch(context.Background(), cmd)
	for _, response := range responses {
		if err := response.Send(session, cmd.ChannelID); err != nil {
			l.Error("Failed to send response", zap.Error(err))
		}
	}
}
