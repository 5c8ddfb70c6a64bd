package character

import (
	"guild-ledger/core/bot"

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

// NewFeature creates a new Character feature.
func NewFeature(db *gorm.DB, logger *zap.Logger) *Feature {
	svc := NewService(db, logger)
	return &Feature{
		service:  svc,
		handler:  NewHandler(svc),
		commands: NewCommands(svc, logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "character"
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

// Service exposes the underlying roster service to sibling features.
func (f *Feature) Service() *Service {
	return f.service
}
