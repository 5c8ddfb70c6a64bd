package attendance

import (
	"time"

	"guild-ledger/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for attendance reporting.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the attendance routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/guilds/:guild/attendance")
	group.Get("/report", h.HandleReport)
}

// HandleReport returns attendance counts for the recent reset windows.
// The range defaults to the last 30 days, overridable with ?days=N.
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	guildID := c.Params("guild")
	l := logger.WithTraceID(h.service.logger, c)

	days := c.QueryInt("days", defaultReportDays)
	if days <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "days must be positive",
		})
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)
	rows, err := h.service.Report(c.Context(), guildID, from, to)
	if err != nil {
		l.Error("Attendance report failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(rows)
}
