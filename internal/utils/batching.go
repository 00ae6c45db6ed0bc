package utils

import (
	"sync"
)

// DEFAULT_BATCH_CAPACITY matches the pipeline flush trigger, so a buffer
// that fills to the trigger never reallocates.
const DEFAULT_BATCH_CAPACITY = 50

// BatchBuffer accumulates assessment records between pipeline flushes.
// All methods are safe for concurrent use.
type BatchBuffer[T any] struct {
	pending []T
	mu      sync.Mutex
}

func NewBatchBuffer[T any]() *BatchBuffer[T] {
	return &BatchBuffer[T]{
		pending: make([]T, 0, DEFAULT_BATCH_CAPACITY),
	}
}

func (b *BatchBuffer[T]) Add(item T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, item)
}

// GetAndClear drains the buffer, returning nil when nothing is pending.
func (b *BatchBuffer[T]) GetAndClear() []T {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) == 0 {
		return nil
	}

	batch := b.pending
	b.pending = make([]T, 0, DEFAULT_BATCH_CAPACITY)
	return batch
}

func (b *BatchBuffer[T]) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

func (b *BatchBuffer[T]) HasData() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending) > 0
}

// Peek returns a copy of the pending records without draining them.
func (b *BatchBuffer[T]) Peek() []T {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]T(nil), b.pending...)
}
