package cli

import (
	"errors"

	"github.com/custodia-labs/spfetch/internal/connectors/sharepoint"
	"github.com/custodia-labs/spfetch/internal/core/ports/driven"
	"github.com/custodia-labs/spfetch/internal/logger"
)

// fetchWithAuthRetry runs a fetch and, if the service rejected the
// token, drops the cached credential and retries once with a fresh one.
// The token cache only detects expiry by clock; a rejection from the
// service itself is only visible here, at the call site.
func fetchWithAuthRetry[T any](provider driven.TokenProvider, fetch func() (T, error)) (T, error) {
	result, err := fetch()
	if err != nil && errors.Is(err, sharepoint.ErrUnauthorised) {
		logger.Debug().Msg("token rejected, dropping cached credential and retrying")
		provider.DropToken()
		return fetch()
	}
	return result, err
}
