package attendance

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
	handler  *Handler
	commands *Commands
}

// NewFeature creates a new Attendance feature.
func NewFeature(db *gorm.DB, characters *character.Service, logger *zap.Logger) *Feature {
	svc := NewService(db, logger)
	return &Feature{
		service:  svc,
		handler:  NewHandler(svc),
		commands: NewCommands(svc, characters, logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "attendance"
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

// Service exposes the attendance ledger to sibling features.
func (f *Feature) Service() *Service {
	return f.service
}
