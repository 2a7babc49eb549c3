package lottery

import "errors"

// Remote fetch errors.
//
// Design decision: We define specific error types rather than wrapping all
// errors generically. This allows callers to handle different failure modes
// appropriately (e.g., a backfill treats ErrDrawNotFound as "reached the
// newest draw" while a network error may deserve a retry).
var (
	// ErrDrawNotFound is returned when the service has no result for the
	// requested draw number. This happens for draws that have not been
	// held yet and for draw numbers before #1.
	ErrDrawNotFound = errors.New("draw not found")

	// ErrInvalidResponse is returned when the service answers with
	// something other than the expected JSON document. The endpoint
	// serves HTML error pages under load or when it dislikes the request
	// headers, so this does not necessarily mean the draw is missing.
	ErrInvalidResponse = errors.New("invalid response from lottery service")
)
