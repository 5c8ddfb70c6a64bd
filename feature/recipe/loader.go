package recipe

import (
	"guild-ledger/core/bot"
	"guild-ledger/feature/character"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service  *Service
	commands *Commands
}

// NewFeature creates a new Recipe feature.
func NewFeature(db *gorm.DB, characters *character.Service, logger *zap.Logger) *Feature {
	svc := NewService(db, logger)
	return &Feature{
		service:  svc,
		commands: NewCommands(svc, characters, logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "recipe"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's commands.
func (f *Feature) Load(app fiber.Router, commands *bot.Router) error {
	f.commands.Register(commands)
	return nil
}
