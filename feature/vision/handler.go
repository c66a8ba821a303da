package vision

import (
	"farm-cms/core/logger"
	"farm-cms/core/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the vision page.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the vision routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/vision")
	group.Get("/", h.HandleCurrent)
	group.Post("/", h.HandlePublish)
}

// HandleCurrent returns the current vision version.
func (h *Handler) HandleCurrent(c *fiber.Ctx) error {
	row, err := h.service.Current(c.Context())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no vision content"})
	}
	return c.JSON(row)
}

// HandlePublish stores a new vision version.
func (h *Handler) HandlePublish(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := validation.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	row, err := h.service.Publish(c.Context(), req)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("vision publish failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}
