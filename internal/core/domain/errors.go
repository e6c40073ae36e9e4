package domain

import "errors"

// Sentinel errors shared across the access layer.
var (
	// ErrAuthRequired indicates no usable credential is available and
	// acquisition failed or was never configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the service rejected the presented
	// credential. Callers should drop the cached token and retry.
	ErrAuthInvalid = errors.New("authentication invalid or expired")

	// ErrNotConfigured indicates required configuration is missing.
	ErrNotConfigured = errors.New("not configured, run 'spfetch login' first")
)
