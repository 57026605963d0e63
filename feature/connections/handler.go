package connections

import (
	"errors"

	"synchub/core/logger"
	"synchub/feature/connections/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for connections.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the connection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/connections", h.HandleList)
	app.Post("/connections", h.HandleSave)
	app.Delete("/connections", h.HandleDisconnect)
}

// HandleList lists the connections of the demo user.
// @Summary List connections
// @Description List available connections for one user. A connection is a link between an integration and a user.
// @Tags connections
// @Produce json
// @Success 200 {object} map[string][]models.Connection
// @Router /connections [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	conns, err := h.service.List(c.Context(), models.DefaultUserID)
	if err != nil {
		l.Error("Failed to list connections", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed_to_list"})
	}

	return c.JSON(fiber.Map{"connections": conns})
}

// HandleSave links the demo user to a connection id.
// @Summary Save connection id
// @Tags connections
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /connections [post]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	var body struct {
		ConnectionID string `json:"connectionId"`
		Integration  string `json:"integration"`
	}
	if err := c.BodyParser(&body); err != nil || body.ConnectionID == "" || body.Integration == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}

	if err := h.service.SaveConnectionID(c.Context(), models.DefaultUserID, body.Integration, body.ConnectionID); err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to save connection", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed_to_save"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// HandleDisconnect unlinks the demo user from an integration.
// @Summary Delete connection
// @Description Destroys the link between a user and an integration, revoking it on the platform and purging cached records.
// @Tags connections
// @Produce json
// @Param integration query string true "Provider config key (e.g. slack)"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /connections [delete]
func (h *Handler) HandleDisconnect(c *fiber.Ctx) error {
	integration := c.Query("integration")
	if integration == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_query"})
	}

	err := h.service.Disconnect(c.Context(), models.DefaultUserID, integration)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "not_connected"})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to disconnect", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed_to_disconnect"})
	}

	return c.JSON(fiber.Map{"success": true})
}
