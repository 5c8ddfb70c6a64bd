package character

import (
	"guild-ledger/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the character roster.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the character routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/guilds/:guild/characters")
	group.Get("/", h.HandleListCharacters)
}

// HandleListCharacters returns every registered character of a guild.
func (h *Handler) HandleListCharacters(c *fiber.Ctx) error {
	guildID := c.Params("guild")
	l := logger.WithTraceID(h.service.logger, c)

	characters, err := h.service.ListByGuild(c.Context(), guildID)
	if err != nil {
		l.Error("Character listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(characters)
}
