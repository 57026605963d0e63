package documents

import (
	"fmt"

	"synchub/feature/documents/models"
)

// Integration is the provider config key this feature serves.
const Integration = "google-drive"

// FolderMimeType marks a Drive entry as a folder rather than a file.
const FolderMimeType = "application/vnd.google-apps.folder"

// DriveFile is the raw file metadata returned by the Drive v3 files API.
type DriveFile struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MimeType     string   `json:"mimeType"`
	WebViewLink  string   `json:"webViewLink"`
	ModifiedTime string   `json:"modifiedTime"`
	Parents      []string `json:"parents"`
}

// IsFolder reports whether the entry is a folder.
func (f DriveFile) IsFolder() bool {
	return f.MimeType == FolderMimeType
}

// MapScope identifies the provenance stamped on every mapped record.
type MapScope struct {
	ConnectionID  string
	IntegrationID string
}

// MapFile transforms raw Drive file metadata into a Document. Id and name
// are required; everything else degrades to empty display fields.
func MapFile(file DriveFile, scope MapScope) (models.Document, error) {
	if file.ID == "" {
		return models.Document{}, fmt.Errorf("drive file without id")
	}
	if file.Name == "" {
		return models.Document{}, fmt.Errorf("drive file %s without name", file.ID)
	}

	return models.Document{
		ID:            file.ID,
		Title:         file.Name,
		URL:           file.WebViewLink,
		MimeType:      file.MimeType,
		IntegrationID: scope.IntegrationID,
		ConnectionID:  scope.ConnectionID,
	}, nil
}
