package files

import (
	"context"
	"fmt"

	"synchub/core/reconcile"
	"synchub/feature/files/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles file operations.
type Service struct {
	db     *gorm.DB
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a file service.
func NewService(db *gorm.DB, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{db: db, engine: engine, logger: logger}
}

// List returns the live files replicated for a connection, newest first.
// Soft-deleted rows stay out of the listing.
func (s *Service) List(ctx context.Context, connectionID string) ([]models.File, error) {
	items := make([]models.File, 0)
	err := s.db.WithContext(ctx).
		Where("connection_id = ? AND deleted_at IS NULL", connectionID).
		Order("updated_at desc").
		Limit(100).
		Find(&items).Error
	return items, err
}

// SaveFiles reconciles a batch of freshly walked files into the local store.
// Used as the sink of the out-of-band OneDrive walk.
func (s *Service) SaveFiles(ctx context.Context, items []models.File) error {
	changes := make([]reconcile.Record, 0, len(items))
	for _, item := range items {
		changes = append(changes, fileChange{
			file: item,
			assign: map[string]any{
				"name":      item.Name,
				"etag":      item.ETag,
				"ctag":      item.CTag,
				"is_folder": item.IsFolder,
				"mime_type": item.MimeType,
				"path":      item.Path,
				"size":      item.Size,
				"drive_id":  item.DriveID,
			},
		})
	}

	summary := s.engine.Apply(ctx, changes)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed to persist", summary.Failed, len(items))
	}
	return nil
}

// Integration implements connections.Purger.
func (s *Service) Integration() string { return Integration }

// PurgeConnection hard-deletes every file cached for a connection.
func (s *Service) PurgeConnection(ctx context.Context, connectionID string) error {
	return s.db.WithContext(ctx).
		Where("connection_id = ?", connectionID).
		Delete(&models.File{}).Error
}
