package models

import "time"

// Contact is a person replicated from a provider (currently Slack members).
// ID is the provider's own stable record id; DeletedAt mirrors upstream
// deletion without losing the last known state.
type Contact struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	FullName      string     `gorm:"size:255" json:"fullName"`
	Email         string     `gorm:"size:255" json:"email"`
	AvatarURL     string     `gorm:"column:avatar_url;size:512" json:"avatarUrl"`
	IntegrationID string     `gorm:"column:integration_id;size:64;index" json:"integrationId"`
	ConnectionID  string     `gorm:"column:connection_id;size:128;index" json:"connectionId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"deletedAt"`
}
