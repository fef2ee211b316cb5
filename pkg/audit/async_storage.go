package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/flowvault/flowvault/pkg/logger"
)

const (
	defaultBufferSize = 256
	defaultFlushWait  = 5 * time.Second
)

// AsyncStorage decorates a Storage with a buffered write path so dispatch
// latency never includes the storage round trip. Writes are applied by a
// single background worker in arrival order. When the buffer is full the
// entry is dropped and logged rather than blocking the dispatcher.
type AsyncStorage struct {
	backend Storage
	log     *slog.Logger

	queue  chan Entry
	done   chan struct{}
	closed bool
	mu     sync.Mutex
	wg     sync.WaitGroup
}

// AsyncOption configures an AsyncStorage.
type AsyncOption func(*AsyncStorage)

// WithBufferSize overrides the queue capacity.
func WithBufferSize(n int) AsyncOption {
	return func(s *AsyncStorage) {
		if n > 0 {
			s.queue = make(chan Entry, n)
		}
	}
}

// WithAsyncLogger sets the logger for dropped entries and write failures.
func WithAsyncLogger(log *slog.Logger) AsyncOption {
	return func(s *AsyncStorage) {
		if log != nil {
			s.log = log
		}
	}
}

// NewAsyncStorage wraps backend and starts the write worker.
func NewAsyncStorage(backend Storage, opts ...AsyncOption) *AsyncStorage {
	s := &AsyncStorage{
		backend: backend,
		log:     slog.Default(),
		queue:   make(chan Entry, defaultBufferSize),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.wg.Add(1)
	go s.run()
	return s
}

func (s *AsyncStorage) run() {
	defer s.wg.Done()
	for entry := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), defaultFlushWait)
		if err := s.backend.Store(ctx, entry); err != nil {
			s.log.Error("audit write failed",
				logger.Error(err),
				slog.String("entry_id", entry.ID),
			)
		}
		cancel()
	}
	close(s.done)
}

// Store implements Storage. It never blocks: when the buffer is full the
// entry is dropped with a warning.
func (s *AsyncStorage) Store(_ context.Context, entry Entry) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrRecorderClosed
	}

	select {
	case s.queue <- entry:
		s.mu.Unlock()
		return nil
	default:
		s.mu.Unlock()
		s.log.Warn("audit buffer full, dropping entry",
			slog.String("entry_id", entry.ID),
		)
		return nil
	}
}

// List implements Storage by passing through to the backend. Recently
// queued entries may not be visible until the worker drains them.
func (s *AsyncStorage) List(ctx context.Context, filter Filter) ([]Entry, error) {
	return s.backend.List(ctx, filter)
}

// Close stops accepting writes and waits for queued entries to flush.
func (s *AsyncStorage) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
