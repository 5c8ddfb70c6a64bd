package dkp

import (
	"guild-ledger/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the DKP standings.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the DKP routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/guilds/:guild/dkp")
	group.Get("/standings", h.HandleStandings)
}

// HandleStandings returns the guild's replayed balances.
func (h *Handler) HandleStandings(c *fiber.Ctx) error {
	guildID := c.Params("guild")
	l := logger.WithTraceID(h.service.logger, c)

	standings, err := h.service.Standings(c.Context(), guildID)
	if err != nil {
		l.Error("Standings failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(standings)
}
