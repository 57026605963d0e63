package webhook

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the webhook intake into the application.
type Feature struct {
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewFeature creates the webhook feature.
func NewFeature(dispatcher *Dispatcher, logger *zap.Logger) *Feature {
	return &Feature{dispatcher: dispatcher, logger: logger}
}

func (f *Feature) Name() string { return "webhook" }

func (f *Feature) IsEnabled() bool { return f.dispatcher != nil }

func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.dispatcher, f.logger).RegisterRoutes(app)
	return nil
}
