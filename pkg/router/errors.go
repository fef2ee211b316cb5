package router

import "errors"

// ErrAmbiguousAddressing is returned when a target sets both a user ID and a
// room. The two addressing modes are mutually exclusive by construction, so
// this indicates a caller bug.
var ErrAmbiguousAddressing = errors.New("router: ambiguous addressing, user and room are mutually exclusive")
