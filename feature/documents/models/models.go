package models

import "time"

// Document is a Google Drive file replicated from a connection. ID is the
// Drive file id; DeletedAt mirrors upstream deletion.
type Document struct {
	ID            string     `gorm:"primaryKey;size:128" json:"id"`
	Title         string     `gorm:"size:255" json:"title"`
	URL           string     `gorm:"column:url;size:512" json:"url"`
	MimeType      string     `gorm:"column:mime_type;size:128" json:"mimeType"`
	IntegrationID string     `gorm:"column:integration_id;size:64;index" json:"integrationId"`
	ConnectionID  string     `gorm:"column:connection_id;size:128;index" json:"connectionId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"deletedAt"`
}
