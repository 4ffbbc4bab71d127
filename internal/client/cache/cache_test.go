package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bizkeeper/internal/client/events"
	"github.com/iudanet/bizkeeper/internal/client/storage"
	"github.com/iudanet/bizkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/bizkeeper/internal/models"
)

type stats struct {
	Counts map[string]int `json:"counts"`
}

// clock управляемое время для тестов
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(t *testing.T) (*Cache, *clock, *[]models.Notice) {
	t.Helper()

	db, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	bus := events.NewBus[models.Notice]()
	var notices []models.Notice
	bus.Subscribe(func(n models.Notice) { notices = append(notices, n) })

	clk := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := New(db.Cache(), bus, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.now = clk.now

	return c, clk, &notices
}

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, clk, _ := newTestCache(t)

	require.NoError(t, c.Set(ctx, "reports", "stats", stats{Counts: map[string]int{"customers": 2}}, time.Minute))

	var got stats
	entry, err := c.Get(ctx, "reports", "stats", 0, &got)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Counts["customers"])
	assert.Equal(t, clk.t, entry.StoredAt.UTC())

	// просроченная запись считается промахом
	clk.advance(time.Minute)
	_, err = c.Get(ctx, "reports", "stats", 0, &got)
	assert.ErrorIs(t, err, ErrMiss)

	_, err = c.Get(ctx, "reports", "missing", 0, &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCache_GetTTLOverride(t *testing.T) {
	ctx := context.Background()
	c, clk, _ := newTestCache(t)

	require.NoError(t, c.Set(ctx, "reports", "stats", stats{}, time.Hour))
	clk.advance(10 * time.Minute)

	var got stats
	_, err := c.Get(ctx, "reports", "stats", 5*time.Minute, &got)
	assert.ErrorIs(t, err, ErrMiss)

	_, err = c.Get(ctx, "reports", "stats", 15*time.Minute, &got)
	assert.NoError(t, err)
}

func TestReadThrough_NetworkSuccessNeverReturnsCache(t *testing.T) {
	ctx := context.Background()
	c, _, notices := newTestCache(t)

	// старое значение в кеше
	require.NoError(t, c.Set(ctx, "reports", "stats", stats{Counts: map[string]int{"customers": 1}}, time.Hour))

	got, err := ReadThrough(ctx, c, "reports", "stats", time.Hour, nil, func(ctx context.Context) (stats, error) {
		return stats{Counts: map[string]int{"customers": 5}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Counts["customers"])
	assert.Empty(t, *notices)

	// кеш обновлен свежим значением
	var cached stats
	_, err = c.Get(ctx, "reports", "stats", 0, &cached)
	require.NoError(t, err)
	assert.Equal(t, 5, cached.Counts["customers"])
}

func TestReadThrough_FallbackWithinTTL(t *testing.T) {
	ctx := context.Background()
	c, _, notices := newTestCache(t)
	netErr := errors.New("connection refused")

	require.NoError(t, c.Set(ctx, "reports", "stats", stats{Counts: map[string]int{"quotes": 7}}, time.Hour))

	got, err := ReadThrough(ctx, c, "reports", "stats", time.Hour, nil, func(ctx context.Context) (stats, error) {
		return stats{}, netErr
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Counts["quotes"])

	require.Len(t, *notices, 1)
	assert.Equal(t, models.NoticeOffline, (*notices)[0].Kind)
	assert.Equal(t, "reports", (*notices)[0].Namespace)
}

func TestReadThrough_MissPropagatesOriginalError(t *testing.T) {
	ctx := context.Background()
	c, clk, notices := newTestCache(t)
	netErr := errors.New("connection refused")

	fetch := func(ctx context.Context) (stats, error) { return stats{}, netErr }

	_, err := ReadThrough(ctx, c, "reports", "stats", time.Minute, nil, fetch)
	assert.Same(t, netErr, err)

	// просроченная запись тоже промах
	require.NoError(t, c.Set(ctx, "reports", "stats", stats{}, time.Minute))
	clk.advance(2 * time.Minute)
	_, err = ReadThrough(ctx, c, "reports", "stats", time.Minute, nil, fetch)
	assert.Same(t, netErr, err)

	assert.Empty(t, *notices)
}

func TestReadThrough_FallbackRejectsError(t *testing.T) {
	ctx := context.Background()
	c, _, notices := newTestCache(t)
	notFound := errors.New("record not found")

	require.NoError(t, c.Set(ctx, "records", "customers/c-1", stats{}, time.Hour))

	onlyNetwork := func(err error) bool { return !errors.Is(err, notFound) }
	_, err := ReadThrough(ctx, c, "records", "customers/c-1", time.Hour, onlyNetwork, func(ctx context.Context) (stats, error) {
		return stats{}, notFound
	})
	assert.Same(t, notFound, err)
	assert.Empty(t, *notices)
}

func TestReadThrough_NoticeThrottledPerNamespace(t *testing.T) {
	ctx := context.Background()
	c, clk, notices := newTestCache(t)
	fail := func(ctx context.Context) (stats, error) { return stats{}, errors.New("offline") }

	require.NoError(t, c.Set(ctx, "reports", "stats", stats{}, time.Hour))
	require.NoError(t, c.Set(ctx, "records", "invoices/i-1", stats{}, time.Hour))

	for range 3 {
		_, err := ReadThrough(ctx, c, "reports", "stats", time.Hour, nil, fail)
		require.NoError(t, err)
		clk.advance(5 * time.Second)
	}
	assert.Len(t, *notices, 1, "one notice per 30s per namespace")

	// другой namespace уведомляется независимо
	_, err := ReadThrough(ctx, c, "records", "invoices/i-1", time.Hour, nil, fail)
	require.NoError(t, err)
	assert.Len(t, *notices, 2)

	clk.advance(30 * time.Second)
	_, err = ReadThrough(ctx, c, "reports", "stats", time.Hour, nil, fail)
	require.NoError(t, err)
	assert.Len(t, *notices, 3)
}

func TestReadThrough_CacheReadError(t *testing.T) {
	ctx := context.Background()
	kv := &storage.KVMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) { return nil, errors.New("db closed") },
	}
	c := New(kv, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	netErr := errors.New("timeout")

	_, err := ReadThrough(ctx, c, "reports", "stats", time.Minute, nil, func(ctx context.Context) (stats, error) {
		return stats{}, netErr
	})
	assert.Same(t, netErr, err)
}

func TestCache_Purge(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache(t)

	require.NoError(t, c.Set(ctx, "reports", "stats", stats{}, time.Hour))
	require.NoError(t, c.Set(ctx, "records", "x", stats{}, time.Hour))
	require.NoError(t, c.Purge(ctx, "reports"))

	var got stats
	_, err := c.Get(ctx, "reports", "stats", 0, &got)
	assert.ErrorIs(t, err, ErrMiss)
	_, err = c.Get(ctx, "records", "x", 0, &got)
	assert.NoError(t, err)
}
