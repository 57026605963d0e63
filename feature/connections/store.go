package connections

import (
	"context"
	"errors"

	"synchub/feature/connections/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no connection exists for the requested pair.
var ErrNotFound = errors.New("connection not found")

// Store persists connection mappings.
type Store struct {
	db *gorm.DB
}

// NewStore creates a connection store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save records a connection for a (user, provider) pair, replacing any
// previous mapping for that pair.
func (s *Store) Save(ctx context.Context, conn models.Connection) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "provider_config_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"connection_id", "updated_at"}),
		}).
		Create(&conn).Error
}

// Find returns the connection for a (user, provider) pair.
func (s *Store) Find(ctx context.Context, userID, providerConfigKey string) (*models.Connection, error) {
	var conn models.Connection
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND provider_config_key = ?", userID, providerConfigKey).
		First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// List returns every connection for a user.
func (s *Store) List(ctx context.Context, userID string) ([]models.Connection, error) {
	var conns []models.Connection
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("provider_config_key asc").
		Find(&conns).Error
	return conns, err
}

// Delete removes the mapping for a (user, provider) pair.
func (s *Store) Delete(ctx context.Context, userID, providerConfigKey string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND provider_config_key = ?", userID, providerConfigKey).
		Delete(&models.Connection{}).Error
}
