package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/internal/server/records"
	"github.com/iudanet/bizkeeper/internal/server/storage"
	"github.com/iudanet/bizkeeper/pkg/api"
)

func newCollectionsMux(svc RecordService) *http.ServeMux {
	h := NewCollectionsHandler(setupTestLogger(), svc)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/collections", h.List)
	mux.HandleFunc("GET /api/v1/collections/{collection}/{id}", h.Get)
	mux.HandleFunc("GET /api/v1/stats", h.Stats)
	return mux
}

func TestCollectionsHandler_List(t *testing.T) {
	svc := &RecordServiceMock{
		SnapshotFunc: func(ctx context.Context, names []string) (map[string][]models.Record, error) {
			out := map[string][]models.Record{}
			for _, n := range names {
				out[n] = []models.Record{{"id": n + "-1"}}
			}
			return out, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collections?names=customers,%20quotes,", nil)
	w := httptest.NewRecorder()
	newCollectionsMux(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.FullSyncResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotZero(t, resp.Timestamp)
	assert.Len(t, resp.Data, 2)

	require.Len(t, svc.SnapshotCalls(), 1)
	assert.Equal(t, []string{"customers", "quotes"}, svc.SnapshotCalls()[0].Names)
}

func TestCollectionsHandler_List_Errors(t *testing.T) {
	tests := []struct {
		err        error
		name       string
		wantStatus int
	}{
		{name: "unknown collection", err: fmt.Errorf("%w: unknown", records.ErrInvalidOperation), wantStatus: http.StatusBadRequest},
		{name: "storage failure", err: errors.New("disk"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &RecordServiceMock{
				SnapshotFunc: func(ctx context.Context, names []string) (map[string][]models.Record, error) {
					return nil, tt.err
				},
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/collections?names=secrets", nil)
			w := httptest.NewRecorder()
			newCollectionsMux(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCollectionsHandler_Get(t *testing.T) {
	svc := &RecordServiceMock{
		GetFunc: func(ctx context.Context, collection, id string) (models.Record, error) {
			if collection == "customers" && id == "c-1" {
				return models.Record{"id": "c-1", "name": "ACME"}, nil
			}
			return nil, storage.ErrRecordNotFound
		},
	}
	mux := newCollectionsMux(svc)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/collections/customers/c-1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var rec models.Record
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rec))
	assert.Equal(t, "ACME", rec["name"])

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/collections/customers/c-2", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollectionsHandler_Stats(t *testing.T) {
	svc := &RecordServiceMock{
		StatsFunc: func(ctx context.Context) (map[string]int, error) {
			return map[string]int{"customers": 3}, nil
		},
	}

	w := httptest.NewRecorder()
	newCollectionsMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.StatsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Counts["customers"])
	assert.NotZero(t, resp.GeneratedAt)
}
