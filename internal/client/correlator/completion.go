package correlator

import (
	"context"
	"sync"

	"github.com/iudanet/bizkeeper/pkg/api"
)

// Completion handle of a submitted operation
type Completion struct {
	err    error
	done   chan struct{}
	result api.OperationResult
	once   sync.Once
	id     uint64
}

func newCompletion(id uint64) *Completion {
	return &Completion{id: id, done: make(chan struct{})}
}

// ID возвращает operationId
func (c *Completion) ID() uint64 {
	return c.id
}

// Done закрывается после завершения операции
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Wait ждет завершения операции или отмены ctx.
// Отмена ctx не завершает саму операцию.
func (c *Completion) Wait(ctx context.Context) (api.OperationResult, error) {
	select {
	case <-c.done:
		return c.result, c.err
	case <-ctx.Done():
		return api.OperationResult{}, ctx.Err()
	}
}

func (c *Completion) resolve(result api.OperationResult) bool {
	return c.finish(result, nil)
}

func (c *Completion) reject(err error) bool {
	return c.finish(api.OperationResult{OperationID: c.id}, err)
}

func (c *Completion) finish(result api.OperationResult, err error) bool {
	finished := false
	c.once.Do(func() {
		c.result = result
		c.err = err
		close(c.done)
		finished = true
	})
	return finished
}
