package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"synchub/core/nango"
	"synchub/feature/documents"
	"synchub/feature/documents/models"

	"go.uber.org/zap"
)

// Sink receives the documents a walk produced, one batch at a time.
type Sink interface {
	SaveDocuments(ctx context.Context, docs []models.Document) error
}

// Scope identifies the connection a walk operates on.
type Scope struct {
	ConnectionID      string
	ProviderConfigKey string
}

// Selection is what the user picked in the file picker: folders to expand
// recursively and individual files to fetch as-is.
type Selection struct {
	Folders []string
	Files   []string
}

const driveFields = "files(id, name, mimeType, webViewLink, parents, modifiedTime), nextPageToken"

// Walker traverses the selected Drive folders through the platform proxy,
// expanding subfolders up to maxDepth and flushing mapped documents to the
// sink in batches. Folders already seen in the walk are skipped, so cyclic
// listings terminate.
type Walker struct {
	proxy     nango.Proxier
	sink      Sink
	logger    *zap.Logger
	maxDepth  int
	batchSize int
	retries   int
}

// NewWalker creates a Drive walker. maxDepth bounds folder recursion; the
// top-level selection is depth 1. batchSize bounds how many documents are
// buffered before a flush to the sink.
func NewWalker(proxy nango.Proxier, sink Sink, logger *zap.Logger, maxDepth, batchSize int) *Walker {
	return &Walker{
		proxy:     proxy,
		sink:      sink,
		logger:    logger,
		maxDepth:  maxDepth,
		batchSize: batchSize,
		retries:   10,
	}
}

// Run walks the selection and returns after the final flush. A selection
// without folders or files is an error; a walk with nothing to save is not.
func (w *Walker) Run(ctx context.Context, scope Scope, sel Selection) error {
	if len(sel.Folders) == 0 && len(sel.Files) == 0 {
		return fmt.Errorf("selection has neither files nor folders")
	}

	visited := make(map[string]struct{})
	var batch []models.Document

	mapScope := documents.MapScope{
		ConnectionID:  scope.ConnectionID,
		IntegrationID: scope.ProviderConfigKey,
	}

	for _, folderID := range sel.Folders {
		if err := w.walkFolder(ctx, scope, mapScope, folderID, 1, visited, &batch); err != nil {
			return err
		}
	}

	for _, fileID := range sel.Files {
		doc, err := w.fetchFile(ctx, scope, mapScope, fileID)
		if err != nil {
			w.logger.Warn("Skipping unreachable Drive file",
				zap.String("file_id", fileID), zap.Error(err))
			continue
		}
		batch = append(batch, doc)
		if len(batch) >= w.batchSize {
			if err := w.flush(ctx, &batch); err != nil {
				return err
			}
		}
	}

	return w.flush(ctx, &batch)
}

func (w *Walker) walkFolder(ctx context.Context, scope Scope, mapScope documents.MapScope, folderID string, depth int, visited map[string]struct{}, batch *[]models.Document) error {
	if depth > w.maxDepth {
		return nil
	}
	if _, seen := visited[folderID]; seen {
		return nil
	}
	visited[folderID] = struct{}{}

	pager := nango.Paginate(w.proxy, nango.ProxyRequest{
		Endpoint:          "drive/v3/files",
		ConnectionID:      scope.ConnectionID,
		ProviderConfigKey: scope.ProviderConfigKey,
		Retries:           w.retries,
		Params: map[string]string{
			"fields":   driveFields,
			"corpora":  "allDrives",
			"q":        fmt.Sprintf("('%s' in parents) and trashed = false", folderID),
			"pageSize": strconv.Itoa(w.batchSize),
		},
	}, nango.Pagination{
		ResponsePath: "files",
		CursorPath:   "nextPageToken",
		CursorParam:  "pageToken",
	})

	for {
		page, err := pager.Next(ctx)
		if err != nil {
			return fmt.Errorf("listing folder %s: %w", folderID, err)
		}
		if page == nil {
			return nil
		}

		for _, raw := range page {
			var file documents.DriveFile
			if err := json.Unmarshal(raw, &file); err != nil {
				w.logger.Warn("Skipping undecodable Drive entry", zap.Error(err))
				continue
			}

			if file.IsFolder() {
				if err := w.walkFolder(ctx, scope, mapScope, file.ID, depth+1, visited, batch); err != nil {
					return err
				}
				continue
			}

			doc, err := documents.MapFile(file, mapScope)
			if err != nil {
				w.logger.Warn("Skipping unmappable Drive file", zap.Error(err))
				continue
			}
			*batch = append(*batch, doc)

			if len(*batch) >= w.batchSize {
				if err := w.flush(ctx, batch); err != nil {
					return err
				}
			}
		}
	}
}

func (w *Walker) fetchFile(ctx context.Context, scope Scope, mapScope documents.MapScope, fileID string) (models.Document, error) {
	resp, err := w.proxy.Proxy(ctx, nango.ProxyRequest{
		Endpoint:          "drive/v3/files/" + fileID,
		ConnectionID:      scope.ConnectionID,
		ProviderConfigKey: scope.ProviderConfigKey,
		Retries:           w.retries,
		Params: map[string]string{
			"fields":            "id, name, mimeType, webViewLink, parents, modifiedTime",
			"supportsAllDrives": "true",
		},
	})
	if err != nil {
		return models.Document{}, err
	}

	var file documents.DriveFile
	if err := json.Unmarshal(resp.Data, &file); err != nil {
		return models.Document{}, fmt.Errorf("decoding file %s: %w", fileID, err)
	}
	return documents.MapFile(file, mapScope)
}

func (w *Walker) flush(ctx context.Context, batch *[]models.Document) error {
	if len(*batch) == 0 {
		return nil
	}
	if err := w.sink.SaveDocuments(ctx, *batch); err != nil {
		return err
	}
	w.logger.Info("Drive walk flushed batch", zap.Int("count", len(*batch)))
	*batch = nil
	return nil
}
