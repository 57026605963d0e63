package files

import (
	"context"
	"encoding/json"
	"fmt"

	"synchub/core/nango"
	"synchub/core/reconcile"
	"synchub/feature/files/models"

	"go.uber.org/zap"
)

// SyncModel is the platform model name this processor consumes.
const SyncModel = "OneDriveFileSelection"

type fileChange struct {
	file    models.File
	deleted bool
	assign  map[string]any
}

func (c fileChange) RecordID() string            { return c.file.ID }
func (c fileChange) SourceDeleted() bool         { return c.deleted }
func (c fileChange) Entity() any                 { return &c.file }
func (c fileChange) Assignments() map[string]any { return c.assign }

// Processor reconciles OneDrive selection webhooks into the local store.
type Processor struct {
	client nango.Client
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewProcessor creates the webhook processor for OneDrive selections.
func NewProcessor(client nango.Client, engine *reconcile.Engine, logger *zap.Logger) *Processor {
	return &Processor{client: client, engine: engine, logger: logger}
}

// Model returns the platform model name this processor handles.
func (p *Processor) Model() string { return SyncModel }

// Process fetches the records changed since the webhook's cursor and applies
// them. Records that fail to parse are skipped; the rest of the page still
// reconciles.
func (p *Processor) Process(ctx context.Context, hook nango.SyncWebhook) (reconcile.Summary, error) {
	var summary reconcile.Summary

	err := nango.EachRecordPage(ctx, p.client, nango.ListRecordsParams{
		ConnectionID:      hook.ConnectionID,
		Model:             hook.Model,
		ProviderConfigKey: hook.ProviderConfigKey,
		ModifiedAfter:     hook.ModifiedAfter,
	}, func(records []json.RawMessage) error {
		changes := make([]reconcile.Record, 0, len(records))
		for _, raw := range records {
			change, err := p.mapPlatformRecord(raw, hook)
			if err != nil {
				summary.Failed++
				p.logger.Warn("Skipping malformed file record", zap.Error(err))
				continue
			}
			changes = append(changes, change)
		}
		summary.Add(p.engine.Apply(ctx, changes))
		return nil
	})

	return summary, err
}

// mapPlatformRecord parses a records-API entry for the selection model. The
// platform record mirrors the Graph item shape minus the download url.
func (p *Processor) mapPlatformRecord(raw json.RawMessage, hook nango.SyncWebhook) (fileChange, error) {
	var rec struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		ETag     string `json:"etag"`
		CTag     string `json:"ctag"`
		IsFolder bool   `json:"is_folder"`
		MimeType string `json:"mime_type"`
		Path     string `json:"path"`
		Size     int64  `json:"raw_size"`
		DriveID  string `json:"drive_id"`
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return fileChange{}, fmt.Errorf("decode record: %w", err)
	}
	if rec.ID == "" {
		return fileChange{}, fmt.Errorf("record without id")
	}

	return fileChange{
		file: models.File{
			ID:            rec.ID,
			Name:          rec.Name,
			ETag:          rec.ETag,
			CTag:          rec.CTag,
			IsFolder:      rec.IsFolder,
			MimeType:      rec.MimeType,
			Path:          rec.Path,
			Size:          rec.Size,
			DriveID:       rec.DriveID,
			IntegrationID: hook.ProviderConfigKey,
			ConnectionID:  hook.ConnectionID,
		},
		deleted: nango.Metadata(raw).Deleted(),
		assign: map[string]any{
			"name":      rec.Name,
			"etag":      rec.ETag,
			"ctag":      rec.CTag,
			"is_folder": rec.IsFolder,
			"mime_type": rec.MimeType,
			"path":      rec.Path,
			"size":      rec.Size,
			"drive_id":  rec.DriveID,
		},
	}, nil
}
