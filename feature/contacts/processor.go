package contacts

import (
	"context"
	"encoding/json"
	"fmt"

	"synchub/core/nango"
	"synchub/core/reconcile"
	"synchub/feature/contacts/models"

	"go.uber.org/zap"
)

// contactChange adapts a contact to the reconcile engine. assign lists the
// mutable fields an update is allowed to overwrite: webhook records only
// carry the name, while a full provider sync also refreshes email and avatar.
type contactChange struct {
	contact models.Contact
	deleted bool
	assign  map[string]any
}

func (c contactChange) RecordID() string            { return c.contact.ID }
func (c contactChange) SourceDeleted() bool         { return c.deleted }
func (c contactChange) Entity() any                 { return &c.contact }
func (c contactChange) Assignments() map[string]any { return c.assign }

// Processor reconciles "SlackUser" sync results into the contacts table.
type Processor struct {
	client nango.Client
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewProcessor creates the webhook processor for Slack users.
func NewProcessor(client nango.Client, engine *reconcile.Engine, logger *zap.Logger) *Processor {
	return &Processor{client: client, engine: engine, logger: logger}
}

// Model returns the platform model name this processor handles.
func (p *Processor) Model() string { return "SlackUser" }

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
			change, err := mapPlatformRecord(raw, hook)
			if err != nil {
				summary.Failed++
				p.logger.Warn("Skipping malformed contact record", zap.Error(err))
				continue
			}
			changes = append(changes, change)
		}
		summary.Add(p.engine.Apply(ctx, changes))
		return nil
	})

	return summary, err
}

// mapPlatformRecord parses a records-API entry for the SlackUser model.
func mapPlatformRecord(raw json.RawMessage, hook nango.SyncWebhook) (contactChange, error) {
	var rec struct {
		ID       string `json:"id"`
		FullName string `json:"fullName"`
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return contactChange{}, fmt.Errorf("decode record: %w", err)
	}
	if rec.ID == "" {
		return contactChange{}, fmt.Errorf("record without id")
	}

	return contactChange{
		contact: models.Contact{
			ID:            rec.ID,
			FullName:      rec.FullName,
			AvatarURL:     PlaceholderAvatarURL,
			IntegrationID: hook.ProviderConfigKey,
			ConnectionID:  hook.ConnectionID,
		},
		deleted: nango.Metadata(raw).Deleted(),
		assign:  map[string]any{"full_name": rec.FullName},
	}, nil
}
