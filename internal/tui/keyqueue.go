package tui

import (
	"context"
	"sync"

	"musicshell/internal/dispatch"
	"musicshell/pkg/types"
)

// keyQueue hands key presses from Update to the dispatcher in order without
// ever blocking the render loop. It grows while the dispatcher is busy.
type keyQueue struct {
	mu      sync.Mutex
	pending []types.Key
	wake    chan struct{}
}

func newKeyQueue() *keyQueue {
	return &keyQueue{wake: make(chan struct{}, 1)}
}

func (q *keyQueue) push(keys []types.Key) {
	if len(keys) == 0 {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, keys...)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *keyQueue) take() []types.Key {
	q.mu.Lock()
	defer q.mu.Unlock()
	keys := q.pending
	q.pending = nil
	return keys
}

// run sends queued keys until ctx is done. Keys left once running reports
// false are dropped.
func (q *keyQueue) run(ctx context.Context, running func() bool, events chan<- dispatch.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.wake:
		}

		for _, k := range q.take() {
			if !running() {
				break
			}
			select {
			case events <- dispatch.KeyEvent{Key: k}:
			case <-ctx.Done():
				return
			}
		}
	}
}
