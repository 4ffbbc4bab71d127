package records

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/internal/server/storage"
	"github.com/iudanet/bizkeeper/internal/server/storage/sqlite"
	"github.com/iudanet/bizkeeper/pkg/api"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	st, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return NewService(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_Apply_AddUpdateDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	added, err := s.Apply(ctx, api.Operation{
		Collection: models.CollectionCustomers,
		Action:     models.ActionAdd,
		Payload:    models.Record{"id": "c-1", "name": "ACME"},
	})
	require.NoError(t, err)
	assert.Equal(t, "c-1", added.Item.ID())
	require.Len(t, added.Data, 1)

	updated, err := s.Apply(ctx, api.Operation{
		Collection: models.CollectionCustomers,
		Action:     models.ActionUpdate,
		TargetID:   "c-1",
		Payload:    models.Record{"phone": "555"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Record{"id": "c-1", "name": "ACME", "phone": "555"}, updated.Item)

	deleted, err := s.Apply(ctx, api.Operation{
		Collection: models.CollectionCustomers,
		Action:     models.ActionDelete,
		TargetID:   "c-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ACME", deleted.Item["name"])
	assert.Empty(t, deleted.Data)
}

func TestService_Apply_AddAssignsID(t *testing.T) {
	s := newTestService(t)

	out, err := s.Apply(context.Background(), api.Operation{
		Collection: models.CollectionQuotes,
		Action:     models.ActionAdd,
		Payload:    models.Record{"total": 10.0},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Item.ID())
}

func TestService_Apply_UpdateMissingUpserts(t *testing.T) {
	s := newTestService(t)

	out, err := s.Apply(context.Background(), api.Operation{
		Collection: models.CollectionProjects,
		Action:     models.ActionUpdate,
		TargetID:   "p-9",
		Payload:    models.Record{"name": "Roof"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Record{"id": "p-9", "name": "Roof"}, out.Item)
	assert.Len(t, out.Data, 1)
}

func TestService_Apply_DeleteMissingIsNoop(t *testing.T) {
	s := newTestService(t)

	out, err := s.Apply(context.Background(), api.Operation{
		Collection: models.CollectionInvoices,
		Action:     models.ActionDelete,
		TargetID:   "nope",
	})
	require.NoError(t, err)
	assert.Equal(t, "nope", out.Item.ID())
	assert.Empty(t, out.Data)
}

func TestService_Apply_Invalid(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name string
		op   api.Operation
	}{
		{name: "unknown collection", op: api.Operation{Collection: "secrets", Action: models.ActionAdd, Payload: models.Record{}}},
		{name: "unknown action", op: api.Operation{Collection: models.CollectionQuotes, Action: "upsert"}},
		{name: "add without payload", op: api.Operation{Collection: models.CollectionQuotes, Action: models.ActionAdd}},
		{name: "update without target", op: api.Operation{Collection: models.CollectionQuotes, Action: models.ActionUpdate}},
		{name: "delete bad id", op: api.Operation{Collection: models.CollectionQuotes, Action: models.ActionDelete, TargetID: "a/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Apply(context.Background(), tt.op)
			assert.ErrorIs(t, err, ErrInvalidOperation)
		})
	}
}

func TestService_Apply_StorageError(t *testing.T) {
	boom := errors.New("disk full")
	st := &storage.RecordStorageMock{
		PutRecordFunc: func(ctx context.Context, collection string, record models.Record) error {
			return boom
		},
	}
	s := NewService(st, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := s.Apply(context.Background(), api.Operation{
		Collection: models.CollectionQuotes,
		Action:     models.ActionAdd,
		Payload:    models.Record{"id": "q"},
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, st.ListRecordsCalls())
}

func TestService_SnapshotAndStats(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.Apply(ctx, api.Operation{
		Collection: models.CollectionMaterials,
		Action:     models.ActionAdd,
		Payload:    models.Record{"id": "m-1"},
	})
	require.NoError(t, err)

	all, err := s.Snapshot(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(models.AllCollections()))
	assert.Len(t, all[models.CollectionMaterials], 1)
	assert.NotNil(t, all[models.CollectionCustomers])

	_, err = s.Snapshot(ctx, []string{"secrets"})
	assert.ErrorIs(t, err, ErrInvalidOperation)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[models.CollectionMaterials])
	assert.Equal(t, 0, stats[models.CollectionInvoices])

	rec, err := s.Get(ctx, models.CollectionMaterials, "m-1")
	require.NoError(t, err)
	assert.Equal(t, "m-1", rec.ID())

	_, err = s.Get(ctx, models.CollectionMaterials, "m-2")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}
