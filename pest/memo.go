// SPDX-License-Identifier: MIT

package pest

import (
	"context"
	"errors"
	"sync"
)

// memo holds the outcome of a computation run at most once.
// Context cancellation is not memoised so a later call can retry.
type memo[T any] struct {
	mu   sync.Mutex
	done bool
	v    T
	err  error
}

func (m *memo[T]) get(f func() (T, error)) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done {
		return m.v, m.err
	}

	v, err := f()
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		var zero T
		return zero, err
	}
	m.v, m.err, m.done = v, err, true

	return v, err
}
