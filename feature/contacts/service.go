package contacts

import (
	"context"
	"fmt"

	"synchub/core/nango"
	"synchub/core/reconcile"
	"synchub/feature/contacts/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SendMessageAction is the platform-hosted action that posts a Slack message.
const SendMessageAction = "slack-send-message"

// Service handles contact operations.
type Service struct {
	db     *gorm.DB
	client nango.Client
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a contact service.
func NewService(db *gorm.DB, client nango.Client, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{db: db, client: client, engine: engine, logger: logger}
}

// List returns contacts replicated for an integration, ordered by name.
func (s *Service) List(ctx context.Context, integrationID string) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0)
	err := s.db.WithContext(ctx).
		Where("integration_id = ?", integrationID).
		Order("full_name asc").
		Limit(100).
		Find(&contacts).Error
	return contacts, err
}

// SaveContacts reconciles a batch of freshly synced contacts into the local
// store. Used as the sink of the out-of-band Slack sync.
func (s *Service) SaveContacts(ctx context.Context, contacts []models.Contact) error {
	changes := make([]reconcile.Record, 0, len(contacts))
	for _, contact := range contacts {
		changes = append(changes, contactChange{
			contact: contact,
			assign: map[string]any{
				"full_name":  contact.FullName,
				"email":      contact.Email,
				"avatar_url": contact.AvatarURL,
			},
		})
	}

	summary := s.engine.Apply(ctx, changes)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d contacts failed to persist", summary.Failed, len(contacts))
	}
	return nil
}

// DeleteContacts soft-deletes contacts whose members were removed upstream.
// Used as the sink of the out-of-band Slack sync.
func (s *Service) DeleteContacts(ctx context.Context, ids []string) error {
	changes := make([]reconcile.Record, 0, len(ids))
	for _, id := range ids {
		changes = append(changes, contactChange{
			contact: models.Contact{ID: id},
			deleted: true,
		})
	}

	summary := s.engine.Apply(ctx, changes)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d contact deletions failed", summary.Failed, len(ids))
	}
	return nil
}

// SendMessage triggers the platform action that sends a Slack message to the
// given Slack user.
func (s *Service) SendMessage(ctx context.Context, connectionID, slackUserID string) error {
	_, err := s.client.TriggerAction(ctx, Integration, connectionID, SendMessageAction, map[string]string{
		"userSlackId": slackUserID,
	})
	return err
}

// Integration implements connections.Purger.
func (s *Service) Integration() string { return Integration }

// PurgeConnection hard-deletes every contact cached for a connection.
func (s *Service) PurgeConnection(ctx context.Context, connectionID string) error {
	return s.db.WithContext(ctx).
		Where("connection_id = ?", connectionID).
		Delete(&models.Contact{}).Error
}
