package documents

import (
	"errors"

	"synchub/core/logger"
	connmodels "synchub/feature/connections/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for documents.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the document routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/documents", h.HandleList)
	app.Post("/documents/reset", h.HandleReset)
	app.Post("/documents/:id/archive", h.HandleArchive)
}

// HandleList lists the documents replicated from an integration.
// @Summary List documents
// @Description Documents are the Drive files replicated into the local database.
// @Tags documents
// @Produce json
// @Param integration query string false "Provider config key" default(google-drive)
// @Success 200 {object} map[string][]models.Document
// @Router /documents [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	integration := c.Query("integration", Integration)
	l := logger.WithRayID(h.logger, c)

	docs, err := h.service.List(c.Context(), integration)
	if err != nil {
		l.Error("Failed to list documents", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed_to_list"})
	}

	return c.JSON(fiber.Map{"documents": docs})
}

// HandleReset wipes the replicated Drive state and revokes the connection.
// @Summary Reset the Google Drive integration
// @Tags documents
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /documents/reset [post]
func (h *Handler) HandleReset(c *fiber.Ctx) error {
	var body struct {
		UserID string `json:"userId"`
	}
	// The body is optional; the demo runs single-user.
	_ = c.BodyParser(&body)
	if body.UserID == "" {
		body.UserID = connmodels.DefaultUserID
	}

	if err := h.service.Reset(c.Context(), body.UserID); err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to reset Drive state", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed_to_reset"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// HandleArchive downloads a document and stores it in the archive bucket.
// @Summary Archive a document's content
// @Tags documents
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /documents/{id}/archive [post]
func (h *Handler) HandleArchive(c *fiber.Ctx) error {
	documentID := c.Params("id")
	l := logger.WithRayID(h.logger, c)

	object, err := h.service.Archive(c.Context(), documentID)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	if err != nil {
		l.Error("Failed to archive document",
			zap.String("document_id", documentID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed_to_archive"})
	}

	return c.JSON(fiber.Map{"object": object})
}
