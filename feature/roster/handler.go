package roster

import (
	"errors"
	"time"

	"guild-ledger/core/logger"
	"guild-ledger/feature/attendance"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for roster imports.
type Handler struct {
	service     *Service
	attendances *attendance.Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, attendances *attendance.Service) *Handler {
	return &Handler{service: service, attendances: attendances}
}

// RegisterRoutes registers the roster routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/guilds/:guild/roster/import", h.HandleImport)
}

// ImportRequest carries an already fetched signup feed, for callers
// that talk to raid-helper themselves.
type ImportRequest struct {
	Raid    string        `json:"raid"`
	Size    int           `json:"size"`
	When    time.Time     `json:"when"`
	Signups []EventSignup `json:"signups"`
}

// HandleImport reconciles the posted signups and records attendance.
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	guildID := c.Params("guild")
	l := logger.WithTraceID(h.service.logger, c)

	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Size <= 0 || req.When.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "size and when are required",
		})
	}

	raid, err := h.attendances.FindRaid(c.Context(), req.Raid)
	if err != nil {
		if errors.Is(err, attendance.ErrRaidNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "unknown raid",
			})
		}
		l.Error("Raid lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.service.ImportSignups(c.Context(), guildID, raid.ID, req.Size, req.When, req.Signups)
	if err != nil {
		l.Error("Roster import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(result)
}
