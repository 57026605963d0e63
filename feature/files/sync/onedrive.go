package sync

import (
	"context"
	"encoding/json"
	"fmt"

	"synchub/core/nango"
	"synchub/feature/files"
	"synchub/feature/files/models"

	"go.uber.org/zap"
)

// Sink receives the files a walk produced, one batch at a time.
type Sink interface {
	SaveFiles(ctx context.Context, items []models.File) error
}

// Scope identifies the connection a walk operates on.
type Scope struct {
	ConnectionID      string
	ProviderConfigKey string
}

// Selection is what the user picked: drive item ids scoped to one drive.
type Selection struct {
	DriveID string
	ItemIDs []string
}

// Walker resolves the selected OneDrive items through the platform proxy.
// Folders are expanded through the children listing, which paginates with
// the Graph @odata.nextLink style, up to maxDepth levels. Items already
// seen are skipped.
type Walker struct {
	proxy     nango.Proxier
	sink      Sink
	logger    *zap.Logger
	maxDepth  int
	batchSize int
	retries   int
}

// NewWalker creates a OneDrive walker. maxDepth bounds folder recursion;
// the picked items are depth 1.
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

// Run resolves every picked item and returns after the final flush. Items
// that fail to resolve are logged and skipped so one bad id does not sink
// the whole selection.
func (w *Walker) Run(ctx context.Context, scope Scope, sel Selection) error {
	if sel.DriveID == "" || len(sel.ItemIDs) == 0 {
		return fmt.Errorf("selection needs a drive id and at least one item")
	}

	visited := make(map[string]struct{})
	var batch []models.File

	mapScope := files.MapScope{
		ConnectionID:  scope.ConnectionID,
		IntegrationID: scope.ProviderConfigKey,
	}

	for _, itemID := range sel.ItemIDs {
		item, err := w.fetchItem(ctx, scope, sel.DriveID, itemID)
		if err != nil {
			w.logger.Warn("Skipping unreachable OneDrive item",
				zap.String("item_id", itemID), zap.Error(err))
			continue
		}
		if err := w.collect(ctx, scope, mapScope, sel.DriveID, item, 1, visited, &batch); err != nil {
			return err
		}
	}

	return w.flush(ctx, &batch)
}

// collect maps one resolved item and, for folders, recurses into its
// children while depth allows.
func (w *Walker) collect(ctx context.Context, scope Scope, mapScope files.MapScope, driveID string, item files.DriveItem, depth int, visited map[string]struct{}, batch *[]models.File) error {
	if depth > w.maxDepth {
		return nil
	}
	if _, seen := visited[item.ID]; seen {
		return nil
	}
	visited[item.ID] = struct{}{}

	file, err := files.MapItem(item, mapScope)
	if err != nil {
		w.logger.Warn("Skipping unmappable OneDrive item", zap.Error(err))
		return nil
	}
	*batch = append(*batch, file)
	if len(*batch) >= w.batchSize {
		if err := w.flush(ctx, batch); err != nil {
			return err
		}
	}

	if !item.IsFolder() {
		return nil
	}

	pager := nango.Paginate(w.proxy, nango.ProxyRequest{
		Endpoint:          fmt.Sprintf("/v1.0/drives/%s/items/%s/children", driveID, item.ID),
		ConnectionID:      scope.ConnectionID,
		ProviderConfigKey: scope.ProviderConfigKey,
		Retries:           w.retries,
	}, nango.Pagination{
		ResponsePath: "value",
		LinkPath:     `\@odata\.nextLink`,
		LimitParam:   "$top",
		Limit:        w.batchSize,
	})

	for {
		page, err := pager.Next(ctx)
		if err != nil {
			return fmt.Errorf("listing children of %s: %w", item.ID, err)
		}
		if page == nil {
			return nil
		}

		for _, raw := range page {
			var child files.DriveItem
			if err := json.Unmarshal(raw, &child); err != nil {
				w.logger.Warn("Skipping undecodable OneDrive item", zap.Error(err))
				continue
			}
			if err := w.collect(ctx, scope, mapScope, driveID, child, depth+1, visited, batch); err != nil {
				return err
			}
		}
	}
}

func (w *Walker) fetchItem(ctx context.Context, scope Scope, driveID, itemID string) (files.DriveItem, error) {
	resp, err := w.proxy.Proxy(ctx, nango.ProxyRequest{
		Endpoint:          fmt.Sprintf("/v1.0/drives/%s/items/%s", driveID, itemID),
		ConnectionID:      scope.ConnectionID,
		ProviderConfigKey: scope.ProviderConfigKey,
		Retries:           w.retries,
	})
	if err != nil {
		return files.DriveItem{}, err
	}

	var item files.DriveItem
	if err := json.Unmarshal(resp.Data, &item); err != nil {
		return files.DriveItem{}, fmt.Errorf("decoding item %s: %w", itemID, err)
	}
	return item, nil
}

func (w *Walker) flush(ctx context.Context, batch *[]models.File) error {
	if len(*batch) == 0 {
		return nil
	}
	if err := w.sink.SaveFiles(ctx, *batch); err != nil {
		return err
	}
	w.logger.Info("OneDrive walk flushed batch", zap.Int("count", len(*batch)))
	*batch = nil
	return nil
}
