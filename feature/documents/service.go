package documents

import (
	"context"
	"errors"
	"fmt"

	"synchub/core/reconcile"
	"synchub/feature/connections"
	"synchub/feature/documents/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a document id is not in the local store.
var ErrNotFound = errors.New("document not found")

// Disconnector tears down a connection, platform side included.
type Disconnector interface {
	Disconnect(ctx context.Context, userID, integration string) error
}

// Service handles document operations.
type Service struct {
	db         *gorm.DB
	engine     *reconcile.Engine
	archiver   *Archiver
	disconnect Disconnector
	logger     *zap.Logger
}

// NewService creates a document service. archiver may be nil when object
// storage is not configured.
func NewService(db *gorm.DB, engine *reconcile.Engine, archiver *Archiver, disconnect Disconnector, logger *zap.Logger) *Service {
	return &Service{db: db, engine: engine, archiver: archiver, disconnect: disconnect, logger: logger}
}

// List returns documents replicated for an integration, newest first.
func (s *Service) List(ctx context.Context, integrationID string) ([]models.Document, error) {
	docs := make([]models.Document, 0)
	err := s.db.WithContext(ctx).
		Where("integration_id = ?", integrationID).
		Order("updated_at desc").
		Limit(100).
		Find(&docs).Error
	return docs, err
}

// SaveDocuments reconciles a batch of freshly walked documents. Used as the
// sink of the out-of-band Drive walk.
func (s *Service) SaveDocuments(ctx context.Context, docs []models.Document) error {
	changes := make([]reconcile.Record, 0, len(docs))
	for _, doc := range docs {
		changes = append(changes, documentChange{
			doc: doc,
			assign: map[string]any{
				"title":     doc.Title,
				"url":       doc.URL,
				"mime_type": doc.MimeType,
			},
		})
	}

	summary := s.engine.Apply(ctx, changes)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed to persist", summary.Failed, len(docs))
	}
	return nil
}

// Archive downloads a known document and stores it in the archive bucket,
// returning the object name. The connection is resolved from the stored row.
func (s *Service) Archive(ctx context.Context, documentID string) (string, error) {
	if s.archiver == nil {
		return "", errors.New("object storage is not configured")
	}

	var doc models.Document
	err := s.db.WithContext(ctx).First(&doc, "id = ?", documentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	return s.archiver.Archive(ctx, Scope{
		ConnectionID:      doc.ConnectionID,
		ProviderConfigKey: doc.IntegrationID,
	}, doc.ID)
}

// Reset wipes every replicated Drive document and tears the connection down
// so the user can pick a fresh folder selection.
func (s *Service) Reset(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).
		Where("integration_id = ?", Integration).
		Delete(&models.Document{}).Error
	if err != nil {
		return fmt.Errorf("purging documents: %w", err)
	}

	err = s.disconnect.Disconnect(ctx, userID, Integration)
	if err != nil && !errors.Is(err, connections.ErrNotFound) {
		return err
	}
	return nil
}

// Integration implements connections.Purger.
func (s *Service) Integration() string { return Integration }

// PurgeConnection hard-deletes every document cached for a connection.
func (s *Service) PurgeConnection(ctx context.Context, connectionID string) error {
	return s.db.WithContext(ctx).
		Where("connection_id = ?", connectionID).
		Delete(&models.Document{}).Error
}
