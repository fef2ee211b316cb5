package audit

import "errors"

var (
	// ErrStorageFailed wraps storage backend failures.
	ErrStorageFailed = errors.New("audit storage operation failed")
	// ErrRecorderClosed is returned when recording after Close.
	ErrRecorderClosed = errors.New("audit recorder is closed")
)
