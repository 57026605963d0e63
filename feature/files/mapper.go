package files

import (
	"fmt"

	"synchub/feature/files/models"
)

// Integration is the provider config key this feature serves.
const Integration = "one-drive"

// DriveItem is the raw item returned by the Microsoft Graph drives API.
// DownloadURL is short-lived and intentionally never mapped into the model.
type DriveItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ETag            string `json:"eTag"`
	CTag            string `json:"cTag"`
	Size            int64  `json:"size"`
	DownloadURL     string `json:"@microsoft.graph.downloadUrl"`
	ParentReference struct {
		DriveID string `json:"driveId"`
		Path    string `json:"path"`
	} `json:"parentReference"`
	File *struct {
		MimeType string `json:"mimeType"`
	} `json:"file"`
	Folder *struct {
		ChildCount int `json:"childCount"`
	} `json:"folder"`
}

// IsFolder reports whether the item is a folder facet.
func (i DriveItem) IsFolder() bool {
	return i.Folder != nil
}

// MapScope identifies the provenance stamped on every mapped record.
type MapScope struct {
	ConnectionID  string
	IntegrationID string
}

// MapItem transforms a raw Graph drive item into a File. Id and name are
// required. The path is derived from the parent reference when present.
func MapItem(item DriveItem, scope MapScope) (models.File, error) {
	if item.ID == "" {
		return models.File{}, fmt.Errorf("drive item without id")
	}
	if item.Name == "" {
		return models.File{}, fmt.Errorf("drive item %s without name", item.ID)
	}

	path := "/" + item.Name
	if item.ParentReference.Path != "" {
		path = item.ParentReference.Path + "/" + item.Name
	}

	file := models.File{
		ID:            item.ID,
		Name:          item.Name,
		ETag:          item.ETag,
		CTag:          item.CTag,
		IsFolder:      item.IsFolder(),
		Path:          path,
		Size:          item.Size,
		DriveID:       item.ParentReference.DriveID,
		IntegrationID: scope.IntegrationID,
		ConnectionID:  scope.ConnectionID,
	}
	if item.File != nil {
		file.MimeType = item.File.MimeType
	}
	return file, nil
}
