package documents

import (
	"context"
	"encoding/json"
	"fmt"

	"synchub/core/nango"
	"synchub/core/reconcile"
	"synchub/feature/documents/models"

	"go.uber.org/zap"
)

// SyncModel is the platform model name this processor consumes.
const SyncModel = "Document"

type documentChange struct {
	doc     models.Document
	deleted bool
	assign  map[string]any
}

func (c documentChange) RecordID() string            { return c.doc.ID }
func (c documentChange) SourceDeleted() bool         { return c.deleted }
func (c documentChange) Entity() any                 { return &c.doc }
func (c documentChange) Assignments() map[string]any { return c.assign }

// Processor reconciles Document sync webhooks into the local store.
type Processor struct {
	client nango.Client
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewProcessor creates a Document webhook processor.
func NewProcessor(client nango.Client, engine *reconcile.Engine, logger *zap.Logger) *Processor {
	return &Processor{client: client, engine: engine, logger: logger}
}

// Model returns the platform model name this processor handles.
func (p *Processor) Model() string { return SyncModel }

// Process pulls every record the sync run touched and applies it to the
// local table. Individual undecodable records are counted as failures and
// skipped.
func (p *Processor) Process(ctx context.Context, event nango.SyncWebhook) (reconcile.Summary, error) {
	var summary reconcile.Summary

	err := nango.EachRecordPage(ctx, p.client, nango.ListRecordsParams{
		ProviderConfigKey: event.ProviderConfigKey,
		ConnectionID:      event.ConnectionID,
		Model:             event.Model,
		ModifiedAfter:     event.ModifiedAfter,
	}, func(records []json.RawMessage) error {
		changes := make([]reconcile.Record, 0, len(records))
		for _, raw := range records {
			change, err := p.mapPlatformRecord(raw, event)
			if err != nil {
				summary.Failed++
				p.logger.Warn("Skipping undecodable Document record", zap.Error(err))
				continue
			}
			changes = append(changes, change)
		}
		summary.Add(p.engine.Apply(ctx, changes))
		return nil
	})
	return summary, err
}

func (p *Processor) mapPlatformRecord(raw json.RawMessage, event nango.SyncWebhook) (reconcile.Record, error) {
	var rec struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		URL      string `json:"url"`
		MimeType string `json:"mimeType"`
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("document record without id")
	}

	return documentChange{
		doc: models.Document{
			ID:            rec.ID,
			Title:         rec.Title,
			URL:           rec.URL,
			MimeType:      rec.MimeType,
			IntegrationID: event.ProviderConfigKey,
			ConnectionID:  event.ConnectionID,
		},
		deleted: nango.Metadata(raw).Deleted(),
		assign: map[string]any{
			"title":     rec.Title,
			"url":       rec.URL,
			"mime_type": rec.MimeType,
		},
	}, nil
}
