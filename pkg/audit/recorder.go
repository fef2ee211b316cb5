package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowvault/flowvault/pkg/notifier"
)

// Recorder converts dispatch outcomes into audit entries and hands them to
// a Storage. It satisfies notifier.AuditSink.
type Recorder struct {
	storage Storage
}

// NewRecorder creates a recorder backed by the given storage.
func NewRecorder(storage Storage) (*Recorder, error) {
	if storage == nil {
		return nil, errors.New("audit: storage is required")
	}
	return &Recorder{storage: storage}, nil
}

// MustNewRecorder is like NewRecorder but panics on error.
func MustNewRecorder(storage Storage) *Recorder {
	r, err := NewRecorder(storage)
	if err != nil {
		panic(err)
	}
	return r
}

// Record implements notifier.AuditSink.
func (r *Recorder) Record(ctx context.Context, outcome notifier.Outcome) error {
	if err := r.storage.Store(ctx, entryFromOutcome(outcome)); err != nil {
		return errors.Join(ErrStorageFailed, err)
	}
	return nil
}

// List returns stored entries matching the filter, newest first.
func (r *Recorder) List(ctx context.Context, filter Filter) ([]Entry, error) {
	entries, err := r.storage.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("audit: list entries: %w", err)
	}
	return entries, nil
}
