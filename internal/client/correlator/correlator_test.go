package correlator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bizkeeper/internal/models"
	"github.com/iudanet/bizkeeper/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okSender() *SenderMock {
	return &SenderMock{
		SendOperationFunc: func(ctx context.Context, op api.Operation) error { return nil },
	}
}

func TestCorrelator_SubmitResolve(t *testing.T) {
	ctx := context.Background()
	sender := okSender()
	c := New(sender, time.Second, testLogger())

	completion := c.Submit(ctx, models.CollectionCustomers, models.ActionAdd, models.Record{"id": "c-1"}, "")

	require.Len(t, sender.SendOperationCalls(), 1)
	op := sender.SendOperationCalls()[0].Op
	assert.Equal(t, completion.ID(), op.OperationID)
	assert.Equal(t, models.CollectionCustomers, op.Collection)
	assert.Equal(t, models.ActionAdd, op.Action)
	assert.NotZero(t, op.Timestamp)

	collection, action, ok := c.Pending(op.OperationID)
	assert.True(t, ok)
	assert.Equal(t, models.CollectionCustomers, collection)
	assert.Equal(t, models.ActionAdd, action)

	resolved := c.Resolve(api.OperationResult{
		OperationID: op.OperationID,
		Success:     true,
		Item:        models.Record{"id": "c-1", "name": "ACME"},
	})
	assert.True(t, resolved)

	result, err := completion.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ACME", result.Item["name"])
	assert.Zero(t, c.PendingCount())
}

func TestCorrelator_IDsAreMonotonic(t *testing.T) {
	ctx := context.Background()
	c := New(okSender(), time.Second, testLogger())

	var prev uint64
	for range 5 {
		id := c.Submit(ctx, models.CollectionQuotes, models.ActionAdd, nil, "").ID()
		assert.Greater(t, id, prev)
		prev = id
	}
	assert.Equal(t, 5, c.PendingCount())
}

func TestCorrelator_RemoteFailure(t *testing.T) {
	ctx := context.Background()
	c := New(okSender(), time.Second, testLogger())

	completion := c.Submit(ctx, models.CollectionInvoices, models.ActionDelete, nil, "i-1")
	c.Resolve(api.OperationResult{OperationID: completion.ID(), Success: false, Error: "record locked"})

	_, err := completion.Wait(ctx)
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "record locked", remoteErr.Message)
	assert.Contains(t, err.Error(), "record locked")
}

func TestCorrelator_SendFailureRejectsImmediately(t *testing.T) {
	ctx := context.Background()
	sender := &SenderMock{
		SendOperationFunc: func(ctx context.Context, op api.Operation) error {
			return errors.New("not connected")
		},
	}
	c := New(sender, time.Second, testLogger())

	completion := c.Submit(ctx, models.CollectionCustomers, models.ActionAdd, nil, "")

	select {
	case <-completion.Done():
	default:
		t.Fatal("completion must be rejected synchronously")
	}
	_, err := completion.Wait(ctx)
	assert.ErrorContains(t, err, "not connected")
	assert.Zero(t, c.PendingCount())
}

// Результат, пришедший после таймаута, отбрасывается без повторного завершения
func TestCorrelator_TimeoutThenLateResult(t *testing.T) {
	ctx := context.Background()
	c := New(okSender(), 20*time.Millisecond, testLogger())

	completion := c.Submit(ctx, models.CollectionProjects, models.ActionUpdate, models.Record{"status": "done"}, "p-1")

	_, err := completion.Wait(ctx)
	assert.ErrorIs(t, err, ErrOperationTimeout)
	assert.Zero(t, c.PendingCount())

	time.Sleep(20 * time.Millisecond)
	late := c.Resolve(api.OperationResult{OperationID: completion.ID(), Success: true})
	assert.False(t, late)

	_, err = completion.Wait(ctx)
	assert.ErrorIs(t, err, ErrOperationTimeout, "late result must not re-resolve")
}

func TestCorrelator_DuplicateResult(t *testing.T) {
	ctx := context.Background()
	c := New(okSender(), time.Second, testLogger())

	completion := c.Submit(ctx, models.CollectionCustomers, models.ActionAdd, nil, "")
	assert.True(t, c.Resolve(api.OperationResult{OperationID: completion.ID(), Success: true, Item: models.Record{"v": 1.0}}))
	assert.False(t, c.Resolve(api.OperationResult{OperationID: completion.ID(), Success: true, Item: models.Record{"v": 2.0}}))

	result, err := completion.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Item["v"])
}

func TestCorrelator_UnknownResult(t *testing.T) {
	c := New(okSender(), time.Second, testLogger())
	assert.False(t, c.Resolve(api.OperationResult{OperationID: 42, Success: true}))
}

// Каждая операция завершается ровно один раз при гонке результатов и таймаутов
func TestCorrelator_ConcurrentExactlyOnce(t *testing.T) {
	ctx := context.Background()
	c := New(okSender(), 5*time.Millisecond, testLogger())

	const n = 100
	completions := make([]*Completion, n)
	for i := range completions {
		completions[i] = c.Submit(ctx, models.CollectionMaterials, models.ActionAdd, nil, "")
	}

	var wg sync.WaitGroup
	for _, comp := range completions {
		wg.Add(2)
		go func(id uint64) {
			defer wg.Done()
			c.Resolve(api.OperationResult{OperationID: id, Success: true})
		}(comp.ID())
		go func(id uint64) {
			defer wg.Done()
			c.Resolve(api.OperationResult{OperationID: id, Success: false, Error: "dup"})
		}(comp.ID())
	}
	wg.Wait()

	for _, comp := range completions {
		waitCtx, cancel := context.WithTimeout(ctx, time.Second)
		_, _ = comp.Wait(waitCtx)
		cancel()
		select {
		case <-comp.Done():
		default:
			t.Fatalf("operation %d never completed", comp.ID())
		}
	}
	assert.Zero(t, c.PendingCount())
}

func TestCompletion_WaitContextCanceled(t *testing.T) {
	c := New(okSender(), time.Second, testLogger())
	completion := c.Submit(context.Background(), models.CollectionCustomers, models.ActionAdd, nil, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := completion.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	// операция остается в ожидании до результата или таймаута
	assert.Equal(t, 1, c.PendingCount())
}
