package files

import (
	"synchub/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for files.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the file routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/files/:connectionId", h.HandleList)
}

// HandleList lists the live files replicated for a connection.
// @Summary List OneDrive files
// @Description Files are the OneDrive items the user selected, replicated into the local database.
// @Tags files
// @Produce json
// @Param connectionId path string true "Connection id"
// @Success 200 {object} map[string][]models.File
// @Router /files/{connectionId} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	connectionID := c.Params("connectionId")

	items, err := h.service.List(c.Context(), connectionID)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to list files", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed_to_list"})
	}

	return c.JSON(fiber.Map{"files": items})
}
