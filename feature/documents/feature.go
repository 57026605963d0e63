package documents

import (
	"synchub/feature/documents/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the documents module into the application.
type Feature struct {
	db      *gorm.DB
	service *Service
	logger  *zap.Logger
}

// NewFeature creates the documents feature.
func NewFeature(db *gorm.DB, service *Service, logger *zap.Logger) *Feature {
	return &Feature{db: db, service: service, logger: logger}
}

func (f *Feature) Name() string { return "documents" }

func (f *Feature) IsEnabled() bool { return f.db != nil }

func (f *Feature) Load(app fiber.Router) error {
	if err := f.db.AutoMigrate(&models.Document{}); err != nil {
		return err
	}
	NewHandler(f.service, f.logger).RegisterRoutes(app)
	return nil
}
