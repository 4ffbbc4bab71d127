package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/internal/server/storage"
)

func TestRecordStorage_PutAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	rec := models.Record{"id": "c-1", "name": "ACME", "balance": 12.5}
	require.NoError(t, s.PutRecord(ctx, models.CollectionCustomers, rec))

	got, err := s.GetRecord(ctx, models.CollectionCustomers, "c-1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// та же id в другой коллекции не найдена
	_, err = s.GetRecord(ctx, models.CollectionProjects, "c-1")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestRecordStorage_PutRecord_WithoutID(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.PutRecord(context.Background(), models.CollectionCustomers, models.Record{"name": "x"})
	assert.Error(t, err)
}

func TestRecordStorage_ListRecords_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	empty, err := s.ListRecords(ctx, models.CollectionQuotes)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, id := range []string{"z", "a", "m"} {
		require.NoError(t, s.PutRecord(ctx, models.CollectionQuotes, models.Record{"id": id, "v": 1.0}))
	}

	// замена не меняет позицию записи
	require.NoError(t, s.PutRecord(ctx, models.CollectionQuotes, models.Record{"id": "z", "v": 2.0}))

	list, err := s.ListRecords(ctx, models.CollectionQuotes)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"z", "a", "m"}, []string{list[0].ID(), list[1].ID(), list[2].ID()})
	assert.Equal(t, 2.0, list[0]["v"])
}

func TestRecordStorage_DeleteRecord(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.PutRecord(ctx, models.CollectionInvoices, models.Record{"id": "i-1"}))
	require.NoError(t, s.DeleteRecord(ctx, models.CollectionInvoices, "i-1"))

	err := s.DeleteRecord(ctx, models.CollectionInvoices, "i-1")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestRecordStorage_CountRecords(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.PutRecord(ctx, models.CollectionCustomers, models.Record{"id": "1"}))
	require.NoError(t, s.PutRecord(ctx, models.CollectionCustomers, models.Record{"id": "2"}))
	require.NoError(t, s.PutRecord(ctx, models.CollectionMaterials, models.Record{"id": "1"}))

	counts, err := s.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		models.CollectionCustomers: 2,
		models.CollectionMaterials: 1,
	}, counts)
}
