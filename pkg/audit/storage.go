package audit

import "context"

// Storage persists audit entries. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Store persists one entry.
	Store(ctx context.Context, entry Entry) error
	// List returns entries matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]Entry, error)
}
