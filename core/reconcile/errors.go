package reconcile

import "errors"

// Failure taxonomy for patch reports. Patchers wrap these so callers
// can classify a failure without parsing reason strings.
var (
	// ErrMalformedStoredValue marks a row whose stored image list could
	// not be decoded in any known representation. The row is skipped;
	// other rows are still patched.
	ErrMalformedStoredValue = errors.New("reconcile: malformed stored value")

	// ErrBlobStoreUnavailable marks a blob-store operation that failed
	// after the database side already succeeded.
	ErrBlobStoreUnavailable = errors.New("reconcile: blob store unavailable")
)
