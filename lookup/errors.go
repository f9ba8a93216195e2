// Package lookup defines the shared error taxonomy for name and record
// resolution. Commands translate these into single-line chat replies; nothing
// below the command layer formats user-facing text.
package lookup

import "errors"

var (
	// ErrNotFound means no record matched the given name or id.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous means more than one record matched where exactly one is required.
	ErrAmbiguous = errors.New("ambiguous match")
	// ErrNotConfigured means a required setting (e.g. corporation name) is
	// missing or unresolved, blocking corporation-scoped lookups.
	ErrNotConfigured = errors.New("not configured")
	// ErrDataUnavailable means the query succeeded but the target data is
	// absent, e.g. a market with no snapshot or an API call never refreshed.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrUpstream means a store connection or remote service failed.
	ErrUpstream = errors.New("upstream failure")
)
