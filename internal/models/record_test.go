package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_ID(t *testing.T) {
	tests := []struct {
		record Record
		name   string
		want   string
	}{
		{name: "string id", record: Record{"id": "c-1"}, want: "c-1"},
		{name: "json number id", record: Record{"id": float64(42)}, want: "42"},
		{name: "int id", record: Record{"id": 7}, want: "7"},
		{name: "missing id", record: Record{"name": "ACME"}, want: ""},
		{name: "nil id", record: Record{"id": nil}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.ID())
		})
	}
}

func TestRecord_Merge(t *testing.T) {
	original := Record{"id": "q-1", "total": 100.0, "status": "draft"}

	merged := original.Merge(Record{"id": "other", "status": "sent"})

	// id не меняется, остальные поля перезаписываются
	assert.Equal(t, "q-1", merged.ID())
	assert.Equal(t, "sent", merged["status"])
	assert.Equal(t, 100.0, merged["total"])

	// исходная запись не изменилась
	assert.Equal(t, "draft", original["status"])
}

func TestRecord_MergeNil(t *testing.T) {
	var r Record
	merged := r.Merge(Record{"name": "x"})
	assert.Equal(t, Record{"name": "x"}, merged)
}

func TestCloneRecords(t *testing.T) {
	records := []Record{{"id": "1", "name": "a"}}
	cloned := CloneRecords(records)

	cloned[0]["name"] = "b"
	assert.Equal(t, "a", records[0]["name"])
	assert.Nil(t, CloneRecords(nil))
}

func TestAction_Valid(t *testing.T) {
	assert.True(t, ActionAdd.Valid())
	assert.True(t, ActionUpdate.Valid())
	assert.True(t, ActionDelete.Valid())
	assert.False(t, Action("upsert").Valid())
}

func TestIsKnownCollection(t *testing.T) {
	for _, c := range AllCollections() {
		assert.True(t, IsKnownCollection(c))
	}
	assert.False(t, IsKnownCollection("secrets"))
}

func TestDefaultNetworkPreferences(t *testing.T) {
	p := DefaultNetworkPreferences()

	assert.Equal(t, ModeStandalone, p.Mode)
	assert.Equal(t, StatusDisconnected, p.ConnectionStatus)
	assert.Nil(t, p.LastSync)
	assert.True(t, p.AutoSync)
	assert.Equal(t, DefaultSyncInterval, p.SyncInterval)
	assert.False(t, p.IsClient())

	p.Mode = ModeClient
	assert.False(t, p.IsClient(), "client without address is not connectable")
	p.ServerAddress = "10.0.0.5"
	assert.True(t, p.IsClient())
}
