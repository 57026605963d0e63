package reconcile_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"synchub/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testContact struct {
	ID        string `gorm:"primaryKey;size:64"`
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (testContact) TableName() string { return "contacts" }

type contactRecord struct {
	id      string
	name    string
	deleted bool
}

func (r contactRecord) RecordID() string      { return r.id }
func (r contactRecord) SourceDeleted() bool   { return r.deleted }
func (r contactRecord) Entity() any           { return &testContact{ID: r.id, FullName: r.name} }
func (r contactRecord) Assignments() map[string]any {
	return map[string]any{"full_name": r.name}
}

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&testContact{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestApply_UpsertIdempotent(t *testing.T) {
	db := setupTestDB(t, "upsert_idempotent")
	engine := reconcile.NewEngine(db, zap.NewNop())

	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)

	engine.Clock = func() time.Time { return t1 }
	summary := engine.Apply(context.Background(), []reconcile.Record{contactRecord{id: "u1", name: "Ann"}})
	assert.Equal(t, reconcile.Summary{Applied: 1}, summary)

	engine.Clock = func() time.Time { return t2 }
	summary = engine.Apply(context.Background(), []reconcile.Record{contactRecord{id: "u1", name: "Ann"}})
	assert.Equal(t, reconcile.Summary{Applied: 1}, summary)

	var rows []testContact
	assert.NoError(t, db.Find(&rows).Error)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Ann", rows[0].FullName)
	assert.Equal(t, t2.Unix(), rows[0].UpdatedAt.Unix(), "updated_at reflects only the latest apply")
	assert.Equal(t, t1.Unix(), rows[0].CreatedAt.Unix(), "created_at is pinned to the first apply")
	assert.Nil(t, rows[0].DeletedAt)
}

func TestApply_UpdateOverwritesDisplayFields(t *testing.T) {
	db := setupTestDB(t, "upsert_update")
	engine := reconcile.NewEngine(db, zap.NewNop())

	engine.Apply(context.Background(), []reconcile.Record{contactRecord{id: "u1", name: "Ann"}})
	engine.Apply(context.Background(), []reconcile.Record{contactRecord{id: "u1", name: "Ann Smith"}})

	var row testContact
	assert.NoError(t, db.First(&row, "id = ?", "u1").Error)
	assert.Equal(t, "Ann Smith", row.FullName)
}

func TestApply_SoftDeleteTerminalStable(t *testing.T) {
	db := setupTestDB(t, "soft_delete")
	engine := reconcile.NewEngine(db, zap.NewNop())

	t1 := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	engine.Apply(context.Background(), []reconcile.Record{contactRecord{id: "u1", name: "Ann"}})

	engine.Clock = func() time.Time { return t1 }
	summary := engine.Apply(context.Background(), []reconcile.Record{contactRecord{id: "u1", name: "Ann", deleted: true}})
	assert.Equal(t, reconcile.Summary{Deleted: 1}, summary)

	// Re-applying the delete does not throw and does not move the timestamp.
	engine.Clock = func() time.Time { return t2 }
	summary = engine.Apply(context.Background(), []reconcile.Record{contactRecord{id: "u1", name: "Ann", deleted: true}})
	assert.Equal(t, reconcile.Summary{Deleted: 1}, summary)

	var row testContact
	assert.NoError(t, db.First(&row, "id = ?", "u1").Error)
	assert.NotNil(t, row.DeletedAt)
	assert.Equal(t, t1.Unix(), row.DeletedAt.Unix())
	assert.Equal(t, "Ann", row.FullName, "display fields survive the delete")
}

func TestApply_DeleteOfUnknownRecordIsNoop(t *testing.T) {
	db := setupTestDB(t, "delete_unknown")
	engine := reconcile.NewEngine(db, zap.NewNop())

	summary := engine.Apply(context.Background(), []reconcile.Record{contactRecord{id: "ghost", deleted: true}})
	assert.Equal(t, reconcile.Summary{Deleted: 1}, summary)

	var count int64
	db.Model(&testContact{}).Count(&count)
	assert.Zero(t, count)
}

func TestApply_PartialBatchResilience(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	mock.ExpectExec("INSERT INTO `contacts`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `contacts`").WillReturnError(fmt.Errorf("column 'full_name' cannot be null"))
	mock.ExpectExec("INSERT INTO `contacts`").WillReturnResult(sqlmock.NewResult(1, 1))

	engine := reconcile.NewEngine(db, zap.NewNop())
	summary := engine.Apply(context.Background(), []reconcile.Record{
		contactRecord{id: "r1", name: "One"},
		contactRecord{id: "r2", name: "Two"},
		contactRecord{id: "r3", name: "Three"},
	})

	assert.Equal(t, reconcile.Summary{Applied: 2, Failed: 1}, summary)
	assert.NoError(t, mock.ExpectationsWereMet(), "records 1 and 3 are still committed")
}
