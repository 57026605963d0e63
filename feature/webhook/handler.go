package webhook

import (
	"synchub/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SignatureHeader carries the hex digest the platform signs payloads with.
const SignatureHeader = "X-Nango-Signature"

// Handler exposes the webhook intake endpoint.
type Handler struct {
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(dispatcher *Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{dispatcher: dispatcher, logger: logger}
}

// RegisterRoutes registers the webhook route. It must sit outside the API
// key guard: the platform authenticates with the signature, not the key.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/webhooks-from-nango", h.HandleWebhook)
}

// HandleWebhook receives a platform webhook. The raw body is passed to the
// dispatcher untouched because the signature covers the exact bytes.
// @Summary Receive a platform webhook
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /webhooks-from-nango [post]
func (h *Handler) HandleWebhook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("Webhook received", zap.Int("bytes", len(c.Body())))

	status, body := h.dispatcher.Dispatch(c.Context(), c.Get(SignatureHeader), c.Body())
	return c.Status(status).JSON(body)
}
