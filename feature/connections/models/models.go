package models

import "time"

// DefaultUserID identifies the single demo user when a webhook carries no
// end user.
const DefaultUserID = "user-1"

// Connection links one local user to one external provider account.
type Connection struct {
	ID                uint      `gorm:"primaryKey" json:"-"`
	UserID            string    `gorm:"column:user_id;size:64;uniqueIndex:idx_user_provider" json:"userId"`
	ProviderConfigKey string    `gorm:"column:provider_config_key;size:64;uniqueIndex:idx_user_provider" json:"providerConfigKey"`
	ConnectionID      string    `gorm:"column:connection_id;size:128;index" json:"connectionId"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// TableName overrides the table name.
func (Connection) TableName() string {
	return "user_connections"
}
