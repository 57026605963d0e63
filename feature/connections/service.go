package connections

import (
	"context"
	"fmt"

	"synchub/core/nango"
	"synchub/feature/connections/models"

	"go.uber.org/zap"
)

// Purger removes the records a provider feature cached for a connection.
// Each provider feature registers one.
type Purger interface {
	// Integration is the provider config key the purger serves.
	Integration() string
	// PurgeConnection hard-deletes all cached records for the connection.
	PurgeConnection(ctx context.Context, connectionID string) error
}

// Service manages the connection lifecycle.
type Service struct {
	store   *Store
	client  nango.Client
	logger  *zap.Logger
	purgers []Purger
}

// NewService creates a connection service.
func NewService(store *Store, client nango.Client, logger *zap.Logger, purgers ...Purger) *Service {
	return &Service{
		store:   store,
		client:  client,
		logger:  logger,
		purgers: purgers,
	}
}

// HandleAuthEvent processes a connection lifecycle webhook. On creation the
// mapping is persisted and any stale cached records for the connection are
// purged so the initial sync starts clean.
func (s *Service) HandleAuthEvent(ctx context.Context, hook nango.AuthWebhook) error {
	if !hook.Success {
		s.logger.Error("Failed to auth",
			zap.String("provider", hook.ProviderConfigKey),
			zap.String("operation", hook.Operation))
		return nil
	}

	userID := hook.EndUser.EndUserID
	if userID == "" {
		userID = models.DefaultUserID
	}

	if hook.Operation == nango.AuthOperationCreation {
		s.logger.Info("Webhook: New connection",
			zap.String("provider", hook.ProviderConfigKey),
			zap.String("connection_id", hook.ConnectionID))

		if err := s.purge(ctx, hook.ProviderConfigKey, hook.ConnectionID); err != nil {
			s.logger.Warn("Failed to purge stale records for new connection", zap.Error(err))
		}
	} else {
		s.logger.Info("Webhook: connection", zap.String("operation", hook.Operation))
	}

	return s.store.Save(ctx, models.Connection{
		UserID:            userID,
		ProviderConfigKey: hook.ProviderConfigKey,
		ConnectionID:      hook.ConnectionID,
	})
}

// SaveConnectionID links a user to a connection id explicitly (used by the
// frontend after a connect session completes).
func (s *Service) SaveConnectionID(ctx context.Context, userID, providerConfigKey, connectionID string) error {
	return s.store.Save(ctx, models.Connection{
		UserID:            userID,
		ProviderConfigKey: providerConfigKey,
		ConnectionID:      connectionID,
	})
}

// List returns the user's connections.
func (s *Service) List(ctx context.Context, userID string) ([]models.Connection, error) {
	return s.store.List(ctx, userID)
}

// Disconnect revokes the user's connection for an integration on the
// platform, purges the records cached for it, and drops the mapping.
func (s *Service) Disconnect(ctx context.Context, userID, providerConfigKey string) error {
	conn, err := s.store.Find(ctx, userID, providerConfigKey)
	if err != nil {
		return err
	}

	if err := s.client.DeleteConnection(ctx, providerConfigKey, conn.ConnectionID); err != nil {
		return fmt.Errorf("revoke on platform: %w", err)
	}

	if err := s.purge(ctx, providerConfigKey, conn.ConnectionID); err != nil {
		s.logger.Warn("Failed to purge records on disconnect", zap.Error(err))
	}

	return s.store.Delete(ctx, userID, providerConfigKey)
}

func (s *Service) purge(ctx context.Context, providerConfigKey, connectionID string) error {
	for _, p := range s.purgers {
		if p.Integration() != providerConfigKey {
			continue
		}
		if err := p.PurgeConnection(ctx, connectionID); err != nil {
			return err
		}
	}
	return nil
}
