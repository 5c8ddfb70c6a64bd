package item

import (
	"guild-ledger/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the item catalogue.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the item routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/guilds/:guild/items")
	group.Post("/import", h.HandleImport)
	group.Get("/search", h.HandleSearch)
	app.Post("/guilds/:guild/loots", h.HandleBulkLoots)
}

// ImportRequest carries the already-tokenized planning sheets.
type ImportRequest struct {
	Roles  [][]string `json:"roles"`
	Sheets []Sheet    `json:"sheets"`
}

// ImportResponse reports what the import achieved. Broken cells are
// listed as plain strings so the operator can fix only those rows.
type ImportResponse struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// HandleImport replaces the guild's item priorities from sheet rows.
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	guildID := c.Params("guild")
	l := logger.WithTraceID(h.service.logger, c)

	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	imported, cellErrors, err := h.service.ImportPriorities(c.Context(), guildID, req.Roles, req.Sheets)
	if err != nil {
		l.Error("Priority import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp := ImportResponse{Imported: imported, Errors: make([]string, 0, len(cellErrors))}
	for _, cellErr := range cellErrors {
		resp.Errors = append(resp.Errors, cellErr.Error())
	}
	l.Info("Priorities imported over HTTP",
		zap.Int("items", imported),
		zap.Int("errors", len(cellErrors)),
	)
	return c.JSON(resp)
}

// BulkLootRequest maps character names to the item ids they received.
type BulkLootRequest struct {
	Loots map[string][]int `json:"loots"`
	InDKP bool             `json:"in_dkp"`
}

// HandleBulkLoots records a raid's worth of drops in one call. The
// batch stops at the first bad entry.
func (h *Handler) HandleBulkLoots(c *fiber.Ctx) error {
	guildID := c.Params("guild")
	l := logger.WithTraceID(h.service.logger, c)

	var req BulkLootRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if len(req.Loots) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no loots given",
		})
	}

	if err := h.service.RegisterBulkLoots(c.Context(), guildID, req.Loots, req.InDKP); err != nil {
		l.Error("Bulk loot registration failed", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSearch finds items by name.
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	guildID := c.Params("guild")
	l := logger.WithTraceID(h.service.logger, c)

	query := c.Query("q")
	items, err := h.service.SearchItems(c.Context(), guildID, query, searchLimit)
	if err != nil {
		if err == ErrItemNotFound {
			return c.JSON([]struct{}{})
		}
		l.Error("Item search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(items)
}
