package media

import (
	"farm-cms/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the media library.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the media routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/media")
	group.Post("/upload", h.HandleUpload)
	group.Get("/audit", h.HandleAudit)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Get("/:id/file", h.HandleFile)
	group.Delete("/:id", h.HandleDelete)
}

// HandleUpload stores a multipart file and creates its media record.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable file"})
	}
	defer file.Close()

	item, err := h.service.Upload(c.Context(), file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		c.FormValue("category"),
		c.FormValue("folder"),
	)
	if err != nil {
		l.Error("media upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleList returns media records filtered by category and folder.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	items, err := h.service.List(c.Context(), c.Query("category"), c.Query("folder"))
	if err != nil {
		logger.WithRayID(h.logger, c).Error("media list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(items)
}

// HandleGet returns a single media record.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	item, err := h.service.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "media not found"})
	}
	return c.JSON(item)
}

// HandleFile streams the media bytes from the blob store.
func (h *Handler) HandleFile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	item, rc, err := h.service.Open(c.Context(), id)
	if err != nil {
		logger.WithRayID(h.logger, c).Warn("media file open failed", zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "media not found"})
	}
	if item.ContentType != "" {
		c.Set(fiber.HeaderContentType, item.ContentType)
	}
	return c.SendStream(rc)
}

// HandleDelete removes a media item after reconciling every reference
// to its URL. The reconciliation report is returned for observability.
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	report, err := h.service.Delete(c.Context(), id)
	if err != nil {
		if report == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "media not found"})
		}
		l.Error("media delete failed after reconciliation", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleAudit returns the media/storage consistency report.
func (h *Handler) HandleAudit(c *fiber.Ctx) error {
	report, err := h.service.Audit(c.Context())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("media audit failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
