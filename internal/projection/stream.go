package projection

import (
	"context"
	"sync"

	"github.com/google/go-cmp/cmp"

	"photovault/internal/pv"
)

// Query computes the current value of a live query.
type Query[T any] func(ctx context.Context) (T, error)

// Stream delivers the latest value of a live query. A slow reader only ever
// sees the newest value; intermediate values are dropped.
type Stream[T any] struct {
	updates chan T
	cancel  context.CancelFunc
	done    chan struct{}

	mu  sync.Mutex
	err error
}

// Subscribe starts a live query over tables. The current value is emitted
// right away; later values follow every change that alters the result.
// The stream ends when ctx is done or Close is called.
func Subscribe[T any](ctx context.Context, hub *Hub, tables []pv.Table, query Query[T]) *Stream[T] {
	ctx, cancel := context.WithCancel(ctx)
	id, kick := hub.register(tables)
	s := &Stream[T]{
		updates: make(chan T, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go s.run(ctx, hub, id, kick, query)
	return s
}

func (s *Stream[T]) run(ctx context.Context, hub *Hub, id int, kick <-chan struct{}, query Query[T]) {
	defer close(s.done)
	defer close(s.updates)
	defer hub.unregister(id)

	var last T
	emitted := false
	for {
		value, err := query(ctx)
		if ctx.Err() != nil {
			return
		}
		s.setErr(err)
		if err == nil && (!emitted || !cmp.Equal(last, value)) {
			s.publish(value)
			last, emitted = value, true
		}

		select {
		case <-ctx.Done():
			return
		case <-kick:
		}
	}
}

// publish replaces any unread value with v.
func (s *Stream[T]) publish(v T) {
	select {
	case <-s.updates:
	default:
	}
	s.updates <- v
}

func (s *Stream[T]) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Updates returns the channel of values. It is closed when the stream ends.
func (s *Stream[T]) Updates() <-chan T {
	return s.updates
}

// Err returns the error of the most recent query run, if it failed.
func (s *Stream[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close ends the stream and waits for its goroutine to exit.
func (s *Stream[T]) Close() {
	s.cancel()
	<-s.done
}
