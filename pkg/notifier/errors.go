package notifier

import "errors"

var (
	// ErrInvalidIntent is returned by Dispatch for malformed intents:
	// unknown kinds, missing or mismatched payloads. No partial dispatch
	// occurs.
	ErrInvalidIntent = errors.New("notifier: invalid intent")

	// ErrAmbiguousAddressing is returned when an intent sets both a target
	// user and a target room. The addressing modes are mutually exclusive.
	ErrAmbiguousAddressing = errors.New("notifier: ambiguous addressing, target user and target room are mutually exclusive")
)
