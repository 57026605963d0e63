package models

import "time"

// File is a OneDrive item replicated from a connection. ID is the Graph
// item id; Path is the human-readable location inside the drive.
type File struct {
	ID            string     `gorm:"primaryKey;size:128" json:"id"`
	Name          string     `gorm:"size:255" json:"name"`
	ETag          string     `gorm:"column:etag;size:128" json:"etag"`
	CTag          string     `gorm:"column:ctag;size:128" json:"ctag"`
	IsFolder      bool       `json:"isFolder"`
	MimeType      string     `gorm:"column:mime_type;size:128" json:"mimeType"`
	Path          string     `gorm:"size:512" json:"path"`
	Size          int64      `json:"size"`
	DriveID       string     `gorm:"column:drive_id;size:128;index" json:"driveId"`
	IntegrationID string     `gorm:"column:integration_id;size:64;index" json:"integrationId"`
	ConnectionID  string     `gorm:"column:connection_id;size:128;index" json:"connectionId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"deletedAt"`
}
