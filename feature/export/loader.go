package export

import (
	"context"

	"guild-ledger/core/bot"
	"guild-ledger/core/storage"
	"guild-ledger/feature/attendance"
	"guild-ledger/feature/dkp"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service  *Service
	commands *Commands
	enabled  bool
}

// NewFeature creates a new Export feature. A nil storage client
// disables it; the rest of the bot works without object storage.
func NewFeature(client storage.Client, bucket string, standings *dkp.Service, attendances *attendance.Service, logger *zap.Logger) *Feature {
	if client == nil {
		return &Feature{enabled: false}
	}
	svc := NewService(client, bucket, standings, attendances, logger)
	return &Feature{
		service:  svc,
		commands: NewCommands(svc, logger),
		enabled:  true,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "export"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load ensures the bucket and registers the feature's commands.
func (f *Feature) Load(app fiber.Router, commands *bot.Router) error {
	if err := f.service.EnsureBucket(context.Background()); err != nil {
		return err
	}
	f.commands.Register(commands)
	return nil
}
