package sharepoint

import (
	"errors"
	"net/http"
)

// Error types for SharePoint REST API responses.
var (
	// ErrUnauthorised indicates the access token is invalid or expired.
	// Callers should drop the cached token before retrying.
	ErrUnauthorised = errors.New("sharepoint: unauthorised")

	// ErrForbidden indicates the user lacks permission for the requested resource.
	ErrForbidden = errors.New("sharepoint: forbidden")

	// ErrNotFound indicates the requested list, item, or folder does not exist.
	ErrNotFound = errors.New("sharepoint: not found")

	// ErrRateLimited indicates the request was throttled by the server.
	ErrRateLimited = errors.New("sharepoint: rate limited")

	// ErrBadRequest indicates the request was malformed, commonly a bad
	// OData query or list GUID.
	ErrBadRequest = errors.New("sharepoint: bad request")

	// ErrServerError indicates a server-side failure.
	ErrServerError = errors.New("sharepoint: server error")

	// ErrMalformedEnvelope indicates the response body was not the
	// expected verbose OData envelope.
	ErrMalformedEnvelope = errors.New("sharepoint: malformed response envelope")
)

// WrapError converts an HTTP status code to an appropriate error.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// IsUnauthorised checks if the status code indicates an authentication failure.
func IsUnauthorised(statusCode int) bool {
	return statusCode == http.StatusUnauthorized
}

// IsRateLimited checks if the status code indicates throttling.
func IsRateLimited(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests
}
