package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engine applies normalized records to the local database, one record at a
// time, in the order received.
type Engine struct {
	db     *gorm.DB
	logger *zap.Logger

	// Clock supplies every timestamp the engine stamps: inserts, updates
	// and soft deletes. Overridable in tests.
	Clock func() time.Time
}

// NewEngine creates a reconciliation engine bound to a database handle.
func NewEngine(db *gorm.DB, logger *zap.Logger) *Engine {
	return &Engine{
		db:     db,
		logger: logger,
		Clock:  time.Now,
	}
}

// Apply reconciles a batch of records. Per-record failures are logged and
// counted but never abort the remaining records.
func (e *Engine) Apply(ctx context.Context, records []Record) Summary {
	var summary Summary

	for _, rec := range records {
		var err error
		if rec.SourceDeleted() {
			err = e.softDelete(ctx, rec)
			if err == nil {
				summary.Deleted++
			}
		} else {
			err = e.upsert(ctx, rec)
			if err == nil {
				summary.Applied++
			}
		}

		if err != nil {
			summary.Failed++
			e.logger.Error("Failed to apply record",
				zap.String("id", rec.RecordID()),
				zap.Bool("deleted", rec.SourceDeleted()),
				zap.Error(err))
		}
	}

	return summary
}

// softDelete stamps deleted_at on the row, once. The guard on deleted_at
// keeps the operation idempotent: re-applying a delete touches zero rows.
func (e *Engine) softDelete(ctx context.Context, rec Record) error {
	return e.db.WithContext(ctx).
		Model(rec.Entity()).
		Where("id = ? AND deleted_at IS NULL", rec.RecordID()).
		Update("deleted_at", e.Clock()).Error
}

// upsert inserts the record or, when the id already exists, overwrites its
// mutable display fields and updated_at. Last write wins. The session's
// NowFunc routes GORM's own created_at/updated_at stamping through the
// engine clock, so insert timestamps are pinnable too.
func (e *Engine) upsert(ctx context.Context, rec Record) error {
	assignments := rec.Assignments()
	updates := make(map[string]any, len(assignments)+1)
	for k, v := range assignments {
		updates[k] = v
	}
	updates["updated_at"] = e.Clock()

	return e.db.WithContext(ctx).
		Session(&gorm.Session{NowFunc: e.Clock}).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(updates),
		}).
		Create(rec.Entity()).Error
}
