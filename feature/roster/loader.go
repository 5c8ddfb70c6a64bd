package roster

import (
	"guild-ledger/core/bot"
	"guild-ledger/feature/attendance"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service  *Service
	handler  *Handler
	commands *Commands
}

// NewFeature creates a new Roster feature.
func NewFeature(db *gorm.DB, client *Client, attendances *attendance.Service, logger *zap.Logger) *Feature {
	svc := NewService(db, client, attendances, logger)
	return &Feature{
		service:  svc,
		handler:  NewHandler(svc, attendances),
		commands: NewCommands(svc, attendances, logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "roster"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes and commands.
func (f *Feature) Load(app fiber.Router, commands *bot.Router) error {
	f.handler.RegisterRoutes(app)
	f.commands.Register(commands)
	return nil
}
