package driven

import "context"

// TokenProvider provides bearer tokens for authenticated API calls.
// Implementations handle caching and renewal transparently.
type TokenProvider interface {
	// GetToken returns a valid access token, acquiring or renewing one
	// if needed. Concurrent callers during an acquisition share the same
	// underlying request.
	GetToken(ctx context.Context) (string, error)

	// DropToken discards any cached credential so that the next GetToken
	// acquires a fresh one. Callers invoke it after a downstream call is
	// rejected with an authorisation failure, since the provider cannot
	// observe rejections made against other services.
	DropToken()
}
