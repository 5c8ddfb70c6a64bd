package dkp

import (
	"guild-ledger/core/bot"
	coredkp "guild-ledger/core/dkp"
	"guild-ledger/feature/item"

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

// NewFeature creates a new DKP feature.
func NewFeature(db *gorm.DB, items *item.Service, policy coredkp.Policy, logger *zap.Logger) *Feature {
	svc := NewService(db, items, policy, logger)
	return &Feature{
		service:  svc,
		handler:  NewHandler(svc),
		commands: NewCommands(svc, logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "dkp"
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

// Service exposes the standings to command-line entry points.
func (f *Feature) Service() *Service {
	return f.service
}
