// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Config errors
	ErrConfigInvalid  = "CONFIG_INVALID"
	ErrMirrorNotFound = "MIRROR_NOT_FOUND"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// Remote errors
	ErrFetchFailed  = "FETCH_FAILED"
	ErrDecodeFailed = "DECODE_FAILED"

	// Local errors
	ErrSyncFailed   = "SYNC_FAILED"
	ErrFileNotFound = "FILE_NOT_FOUND"
	ErrRenderFailed = "RENDER_FAILED"
)
