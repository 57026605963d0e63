package files

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

const rawItem = `{
	"id": "item-1",
	"name": "report.docx",
	"eTag": "\"{AAA},2\"",
	"cTag": "\"c:{AAA},3\"",
	"size": 2048,
	"@microsoft.graph.downloadUrl": "https://short.lived/download?token=secret",
	"parentReference": {"driveId": "drive-1", "path": "/drive/root:/Projects"},
	"file": {"mimeType": "application/vnd.openxmlformats-officedocument.wordprocessingml.document"}
}`

func TestMapItem_FileWithParentPath(t *testing.T) {
	var item DriveItem
	assert.NoError(t, json.Unmarshal([]byte(rawItem), &item))

	file, err := MapItem(item, MapScope{ConnectionID: "conn-1", IntegrationID: "one-drive"})
	assert.NoError(t, err)

	assert.Equal(t, "item-1", file.ID)
	assert.Equal(t, "/drive/root:/Projects/report.docx", file.Path)
	assert.Equal(t, "drive-1", file.DriveID)
	assert.False(t, file.IsFolder)
	assert.EqualValues(t, 2048, file.Size)
	assert.Equal(t, "one-drive", file.IntegrationID)
}

func TestMapItem_DownloadURLNeverPersisted(t *testing.T) {
	var item DriveItem
	assert.NoError(t, json.Unmarshal([]byte(rawItem), &item))
	assert.NotEmpty(t, item.DownloadURL, "the raw item carries the short-lived url")

	file, err := MapItem(item, MapScope{})
	assert.NoError(t, err)

	// The model has no field for it; serialize to prove nothing leaks through.
	out, err := json.Marshal(file)
	assert.NoError(t, err)
	assert.NotContains(t, string(out), "short.lived")
}

func TestMapItem_FolderWithoutParent(t *testing.T) {
	item := DriveItem{ID: "root-1", Name: "Projects"}
	item.Folder = &struct {
		ChildCount int `json:"childCount"`
	}{ChildCount: 4}

	file, err := MapItem(item, MapScope{})
	assert.NoError(t, err)
	assert.True(t, file.IsFolder)
	assert.Empty(t, file.MimeType)
	assert.Equal(t, "/Projects", file.Path, "no parent reference degrades to a root path")
}

func TestMapItem_RequiredFields(t *testing.T) {
	_, err := MapItem(DriveItem{Name: "x"}, MapScope{})
	assert.Error(t, err)

	_, err = MapItem(DriveItem{ID: "item-1"}, MapScope{})
	assert.Error(t, err)
}
