package projection

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"photovault/internal/pv"
)

func next[T any](t *testing.T, s *Stream[T]) T {
	t.Helper()
	select {
	case v, ok := <-s.Updates():
		if !ok {
			t.Fatal("stream closed")
		}
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an update")
	}
	panic("unreachable")
}

func expectQuiet[T any](t *testing.T, s *Stream[T]) {
	t.Helper()
	select {
	case v := <-s.Updates():
		t.Fatalf("unexpected update %v", v)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscribe(t *testing.T) {
	t.Run("emits initial value and changes", func(t *testing.T) {
		hub := NewHub()
		var value atomic.Int64
		value.Store(1)
		s := Subscribe(context.Background(), hub, []pv.Table{pv.TableAlbums}, func(ctx context.Context) (int64, error) {
			return value.Load(), nil
		})
		t.Cleanup(s.Close)

		if got := next(t, s); got != 1 {
			t.Errorf("initial = %d, want 1", got)
		}

		value.Store(2)
		hub.Notify(pv.TableAlbums)
		if got := next(t, s); got != 2 {
			t.Errorf("after change = %d, want 2", got)
		}
	})

	t.Run("unchanged result is not re-emitted", func(t *testing.T) {
		hub := NewHub()
		var runs atomic.Int32
		s := Subscribe(context.Background(), hub, []pv.Table{pv.TablePhotos}, func(ctx context.Context) ([]string, error) {
			runs.Add(1)
			return []string{"a", "b"}, nil
		})
		t.Cleanup(s.Close)
		next(t, s)

		hub.Notify(pv.TablePhotos)
		expectQuiet(t, s)
		if runs.Load() < 2 {
			t.Errorf("query ran %d times, want a re-run after the notification", runs.Load())
		}
	})

	t.Run("other tables are ignored", func(t *testing.T) {
		hub := NewHub()
		var runs atomic.Int32
		s := Subscribe(context.Background(), hub, []pv.Table{pv.TablePhotos}, func(ctx context.Context) (int32, error) {
			return runs.Add(1), nil
		})
		t.Cleanup(s.Close)
		next(t, s)

		hub.Notify(pv.TableAlbums)
		expectQuiet(t, s)
	})

	t.Run("slow reader sees only the latest value", func(t *testing.T) {
		hub := NewHub()
		var value atomic.Int64
		s := Subscribe(context.Background(), hub, []pv.Table{pv.TableAlbums}, func(ctx context.Context) (int64, error) {
			return value.Load(), nil
		})
		t.Cleanup(s.Close)

		// Wait until the initial value is buffered, then change it several times.
		deadline := time.Now().Add(2 * time.Second)
		for len(s.updates) == 0 && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
		}
		for i := int64(1); i <= 5; i++ {
			value.Store(i)
			hub.Notify(pv.TableAlbums)
			time.Sleep(10 * time.Millisecond)
		}

		var last int64 = -1
		for {
			select {
			case v := <-s.Updates():
				last = v
				continue
			case <-time.After(200 * time.Millisecond):
			}
			break
		}
		if last != 5 {
			t.Errorf("last value = %d, want 5", last)
		}
	})

	t.Run("query errors are reported and later recovered", func(t *testing.T) {
		hub := NewHub()
		var fail atomic.Bool
		fail.Store(true)
		boom := errors.New("boom")
		s := Subscribe(context.Background(), hub, []pv.Table{pv.TableAlbums}, func(ctx context.Context) (string, error) {
			if fail.Load() {
				return "", boom
			}
			return "ok", nil
		})
		t.Cleanup(s.Close)

		deadline := time.Now().Add(2 * time.Second)
		for s.Err() == nil && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
		}
		if !errors.Is(s.Err(), boom) {
			t.Fatalf("Err() = %v, want boom", s.Err())
		}

		fail.Store(false)
		hub.Notify(pv.TableAlbums)
		if got := next(t, s); got != "ok" {
			t.Errorf("value = %q, want ok", got)
		}
		if s.Err() != nil {
			t.Errorf("Err() = %v after recovery, want nil", s.Err())
		}
	})

	t.Run("close ends the stream", func(t *testing.T) {
		hub := NewHub()
		s := Subscribe(context.Background(), hub, []pv.Table{pv.TableAlbums}, func(ctx context.Context) (int, error) {
			return 1, nil
		})
		next(t, s)
		s.Close()

		if _, ok := <-s.Updates(); ok {
			t.Error("Updates() still open after Close")
		}
		if hub.Subscribers() != 0 {
			t.Errorf("Subscribers() = %d after Close, want 0", hub.Subscribers())
		}
	})

	t.Run("context cancellation ends the stream", func(t *testing.T) {
		hub := NewHub()
		ctx, cancel := context.WithCancel(context.Background())
		s := Subscribe(ctx, hub, []pv.Table{pv.TableAlbums}, func(ctx context.Context) (int, error) {
			return 1, nil
		})
		next(t, s)
		cancel()

		select {
		case _, ok := <-s.Updates():
			if ok {
				t.Error("unexpected update after cancel")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("stream did not end after cancel")
		}
	})
}
