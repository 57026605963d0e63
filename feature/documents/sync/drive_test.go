package sync

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"synchub/core/nango"
	"synchub/feature/documents/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeDrive serves canned folder listings keyed by folder id, extracted from
// the q parameter the walker sends.
type fakeDrive struct {
	folders  map[string]string
	files    map[string]string
	listings []string
}

func (f *fakeDrive) Proxy(_ context.Context, req nango.ProxyRequest) (*nango.ProxyResponse, error) {
	if q, ok := req.Params["q"]; ok {
		folderID := q[strings.Index(q, "'")+1 : strings.LastIndex(q, "' in parents")]
		f.listings = append(f.listings, folderID)
		body, ok := f.folders[folderID]
		if !ok {
			return nil, fmt.Errorf("unknown folder %s", folderID)
		}
		return &nango.ProxyResponse{Status: 200, Data: []byte(body)}, nil
	}

	fileID := strings.TrimPrefix(req.Endpoint, "drive/v3/files/")
	body, ok := f.files[fileID]
	if !ok {
		return nil, fmt.Errorf("unknown file %s", fileID)
	}
	return &nango.ProxyResponse{Status: 200, Data: []byte(body)}, nil
}

type recordingSink struct {
	batches [][]models.Document
}

func (s *recordingSink) SaveDocuments(_ context.Context, docs []models.Document) error {
	batch := make([]models.Document, len(docs))
	copy(batch, docs)
	s.batches = append(s.batches, batch)
	return nil
}

func (s *recordingSink) ids() []string {
	var out []string
	for _, b := range s.batches {
		for _, d := range b {
			out = append(out, d.ID)
		}
	}
	return out
}

func folderEntry(id string) string {
	return fmt.Sprintf(`{"id":"%s","name":"%s","mimeType":"application/vnd.google-apps.folder"}`, id, id)
}

func fileEntry(id string) string {
	return fmt.Sprintf(`{"id":"%s","name":"%s.txt","mimeType":"text/plain","webViewLink":"https://drive/%s"}`, id, id, id)
}

func listing(entries ...string) string {
	return `{"files":[` + strings.Join(entries, ",") + `]}`
}

func TestWalker_DepthCap(t *testing.T) {
	// A five-level folder chain with one file per level.
	drive := &fakeDrive{folders: map[string]string{
		"f1": listing(fileEntry("a1"), folderEntry("f2")),
		"f2": listing(fileEntry("a2"), folderEntry("f3")),
		"f3": listing(fileEntry("a3"), folderEntry("f4")),
		"f4": listing(fileEntry("a4"), folderEntry("f5")),
		"f5": listing(fileEntry("a5")),
	}}
	sink := &recordingSink{}

	walker := NewWalker(drive, sink, zap.NewNop(), 3, 100)
	err := walker.Run(context.Background(), Scope{ConnectionID: "conn-1", ProviderConfigKey: "google-drive"},
		Selection{Folders: []string{"f1"}})

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"a1", "a2", "a3"}, sink.ids(), "files below the cap are omitted")
	assert.NotContains(t, drive.listings, "f4", "folders below the cap are never listed")
}

func TestWalker_CyclicListingTerminates(t *testing.T) {
	// A folder that lists itself as its own child.
	drive := &fakeDrive{folders: map[string]string{
		"loop": listing(fileEntry("a1"), folderEntry("loop")),
	}}
	sink := &recordingSink{}

	walker := NewWalker(drive, sink, zap.NewNop(), 10, 100)
	err := walker.Run(context.Background(), Scope{ConnectionID: "conn-1", ProviderConfigKey: "google-drive"},
		Selection{Folders: []string{"loop"}})

	assert.NoError(t, err)
	assert.Equal(t, []string{"a1"}, sink.ids())
	assert.Equal(t, []string{"loop"}, drive.listings, "the folder is listed exactly once")
}

func TestWalker_BatchFlushing(t *testing.T) {
	drive := &fakeDrive{folders: map[string]string{
		"f1": listing(fileEntry("a1"), fileEntry("a2"), fileEntry("a3")),
	}}
	sink := &recordingSink{}

	walker := NewWalker(drive, sink, zap.NewNop(), 3, 2)
	err := walker.Run(context.Background(), Scope{ConnectionID: "conn-1", ProviderConfigKey: "google-drive"},
		Selection{Folders: []string{"f1"}})

	assert.NoError(t, err)
	assert.Len(t, sink.batches, 2, "a full buffer flushes mid-walk, the remainder at the end")
	assert.Len(t, sink.batches[0], 2)
	assert.Len(t, sink.batches[1], 1)
}

func TestWalker_ExplicitFilesAndErrorTolerance(t *testing.T) {
	drive := &fakeDrive{
		folders: map[string]string{},
		files: map[string]string{
			"doc-1": fileEntry("doc-1"),
		},
	}
	sink := &recordingSink{}

	walker := NewWalker(drive, sink, zap.NewNop(), 3, 100)
	err := walker.Run(context.Background(), Scope{ConnectionID: "conn-1", ProviderConfigKey: "google-drive"},
		Selection{Files: []string{"doc-1", "gone"}})

	assert.NoError(t, err, "an unreachable file is skipped, not fatal")
	assert.Equal(t, []string{"doc-1"}, sink.ids())
}

func TestWalker_EmptySelectionRejected(t *testing.T) {
	walker := NewWalker(&fakeDrive{}, &recordingSink{}, zap.NewNop(), 3, 100)
	err := walker.Run(context.Background(), Scope{ConnectionID: "conn-1"}, Selection{})
	assert.Error(t, err)
}
