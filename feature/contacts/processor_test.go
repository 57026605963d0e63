package contacts_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"synchub/core/nango"
	"synchub/core/nango/mocks"
	"synchub/core/reconcile"
	"synchub/feature/contacts"
	"synchub/feature/contacts/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Contact{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func page(records ...string) *nango.RecordsPage {
	p := &nango.RecordsPage{}
	for _, r := range records {
		p.Records = append(p.Records, json.RawMessage(r))
	}
	return p
}

func syncHook(modifiedAfter string) nango.SyncWebhook {
	return nango.SyncWebhook{
		Type:              nango.WebhookTypeSync,
		Success:           true,
		ConnectionID:      "conn-1",
		ProviderConfigKey: "slack",
		SyncName:          "users",
		Model:             "SlackUser",
		ModifiedAfter:     modifiedAfter,
	}
}

func TestProcess_UpsertThenDelete(t *testing.T) {
	db := setupTestDB(t, "contacts_upsert_delete")
	engine := reconcile.NewEngine(db, zap.NewNop())

	client := &mocks.Client{}
	proc := contacts.NewProcessor(client, engine, zap.NewNop())

	// First run: one live record.
	client.On("ListRecords", mock.Anything, mock.MatchedBy(func(p nango.ListRecordsParams) bool {
		return p.ModifiedAfter == "t0" && p.Cursor == ""
	})).Return(page(`{"id":"u1","fullName":"Ann","_nango_metadata":{"last_action":"ADDED"}}`), nil).Once()

	summary, err := proc.Process(context.Background(), syncHook("t0"))
	assert.NoError(t, err)
	assert.Equal(t, reconcile.Summary{Applied: 1}, summary)

	// Second run: the platform reports the record deleted at the source.
	client.On("ListRecords", mock.Anything, mock.MatchedBy(func(p nango.ListRecordsParams) bool {
		return p.ModifiedAfter == "t1"
	})).Return(page(`{"id":"u1","fullName":"Ann","_nango_metadata":{"deleted_at":"2024-02-01T10:00:00Z","last_action":"DELETED"}}`), nil).Once()

	summary, err = proc.Process(context.Background(), syncHook("t1"))
	assert.NoError(t, err)
	assert.Equal(t, reconcile.Summary{Deleted: 1}, summary)

	var row models.Contact
	assert.NoError(t, db.First(&row, "id = ?", "u1").Error)
	assert.NotNil(t, row.DeletedAt)
	assert.Equal(t, "Ann", row.FullName, "last known state survives the delete")

	client.AssertExpectations(t)
}

func TestProcess_FollowsRecordCursor(t *testing.T) {
	db := setupTestDB(t, "contacts_cursor")
	engine := reconcile.NewEngine(db, zap.NewNop())

	client := &mocks.Client{}
	proc := contacts.NewProcessor(client, engine, zap.NewNop())

	first := page(`{"id":"u1","fullName":"Ann"}`)
	first.NextCursor = "cur-2"
	client.On("ListRecords", mock.Anything, mock.MatchedBy(func(p nango.ListRecordsParams) bool {
		return p.Cursor == ""
	})).Return(first, nil).Once()
	client.On("ListRecords", mock.Anything, mock.MatchedBy(func(p nango.ListRecordsParams) bool {
		return p.Cursor == "cur-2"
	})).Return(page(`{"id":"u2","fullName":"Bo"}`), nil).Once()

	summary, err := proc.Process(context.Background(), syncHook("t0"))
	assert.NoError(t, err)
	assert.Equal(t, reconcile.Summary{Applied: 2}, summary)

	var count int64
	db.Model(&models.Contact{}).Count(&count)
	assert.EqualValues(t, 2, count)

	client.AssertExpectations(t)
}

func TestProcess_MalformedRecordSkipped(t *testing.T) {
	db := setupTestDB(t, "contacts_malformed")
	engine := reconcile.NewEngine(db, zap.NewNop())

	client := &mocks.Client{}
	proc := contacts.NewProcessor(client, engine, zap.NewNop())

	client.On("ListRecords", mock.Anything, mock.Anything).
		Return(page(
			`{"fullName":"No Id"}`,
			`{"id":"u2","fullName":"Bo"}`,
		), nil).Once()

	summary, err := proc.Process(context.Background(), syncHook("t0"))
	assert.NoError(t, err)
	assert.Equal(t, reconcile.Summary{Applied: 1, Failed: 1}, summary)

	var row models.Contact
	assert.NoError(t, db.First(&row, "id = ?", "u2").Error, "the healthy record still lands")
}

func TestDeleteContacts_MarksRowsKeepingState(t *testing.T) {
	db := setupTestDB(t, "contacts_delete")
	engine := reconcile.NewEngine(db, zap.NewNop())
	service := contacts.NewService(db, &mocks.Client{}, engine, zap.NewNop())

	assert.NoError(t, service.SaveContacts(context.Background(), []models.Contact{
		{ID: "u1", FullName: "Ann", IntegrationID: "slack", ConnectionID: "conn-1"},
	}))

	assert.NoError(t, service.DeleteContacts(context.Background(), []string{"u1", "ghost"}))

	var row models.Contact
	assert.NoError(t, db.First(&row, "id = ?", "u1").Error)
	assert.NotNil(t, row.DeletedAt)
	assert.Equal(t, "Ann", row.FullName, "last known state survives the delete")

	var count int64
	db.Model(&models.Contact{}).Count(&count)
	assert.EqualValues(t, 1, count, "deleting an unknown member creates nothing")
}

func TestProcess_FetchFailurePropagates(t *testing.T) {
	db := setupTestDB(t, "contacts_fetch_failure")
	engine := reconcile.NewEngine(db, zap.NewNop())

	client := &mocks.Client{}
	proc := contacts.NewProcessor(client, engine, zap.NewNop())

	client.On("ListRecords", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("exhausted 3 attempts")).Once()

	_, err := proc.Process(context.Background(), syncHook("t0"))
	assert.Error(t, err)
}
