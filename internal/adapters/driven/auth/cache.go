package auth

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/spfetch/internal/core/domain"
	"github.com/custodia-labs/spfetch/internal/logger"
)

// ExpiryGrace is how far past nominal expiry a cached credential is still
// served. The target service tolerates slightly stale tokens, so renewal
// is deliberately delayed rather than performed early.
const ExpiryGrace = 30 * time.Second

// acquisition is one in-flight-or-settled credential acquisition.
// Callers wait on done; cred and err are written exactly once, before
// done is closed, and are read-only afterwards.
type acquisition struct {
	done chan struct{}
	cred *domain.Credential
	err  error
}

// settled reports whether the acquisition has completed.
func (a *acquisition) settled() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}

// CachedTokenProvider caches credentials from an Acquirer and renews them
// when they expire past the grace window.
//
// The cache holds at most one acquisition at a time. Concurrent GetToken
// calls during an acquisition all attach to the same in-flight operation
// rather than each issuing a duplicate request: the slot stores the
// operation handle itself, not just its eventual result.
type CachedTokenProvider struct {
	acquirer Acquirer

	mu      sync.Mutex
	slot    *acquisition
	verbose bool

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewCachedTokenProvider creates a provider caching credentials from the
// given acquirer.
func NewCachedTokenProvider(acquirer Acquirer) *CachedTokenProvider {
	return &CachedTokenProvider{
		acquirer: acquirer,
		now:      time.Now,
	}
}

// GetToken returns the cached bearer token, renewing it first if the
// previous acquisition failed or the credential has expired past the
// grace window.
func (p *CachedTokenProvider) GetToken(ctx context.Context) (string, error) {
	a := p.currentAcquisition()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-a.done:
	}

	if a.err != nil {
		return "", a.err
	}
	return a.cred.Token, nil
}

// DropToken unconditionally discards the cached slot, forcing the next
// GetToken to acquire a fresh credential. Callers use it after a
// downstream service rejects the token, which the cache cannot detect
// on its own.
func (p *CachedTokenProvider) DropToken() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slot = nil
}

// SetLogging toggles verbose diagnostic output for acquisitions. Purely
// observational; it routes identity-provider lines to the standard
// logging sink and has no behavioural effect.
func (p *CachedTokenProvider) SetLogging(verbose bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verbose = verbose
}

// currentAcquisition returns the slot's acquisition, replacing it when it
// settled in failure or its credential has expired. An acquisition still
// in flight is always reused.
func (p *CachedTokenProvider) currentAcquisition() *acquisition {
	p.mu.Lock()
	defer p.mu.Unlock()

	if a := p.slot; a != nil && p.usable(a) {
		return a
	}

	a := &acquisition{done: make(chan struct{})}
	p.slot = a
	go p.acquire(a, p.verbose)
	return a
}

// usable reports whether a slot entry can serve another caller.
// Callers must hold p.mu.
func (p *CachedTokenProvider) usable(a *acquisition) bool {
	if !a.settled() {
		return true
	}
	if a.err != nil {
		return false
	}
	if a.cred.Expired(p.now(), ExpiryGrace) {
		if p.verbose {
			logger.Debug().
				Time("expires_on", a.cred.ExpiresOn).
				Msg("cached credential expired, acquiring fresh one")
		}
		return false
	}
	return true
}

// acquire runs one acquisition and settles it. It runs on the background
// context so a single caller's cancellation does not abort an operation
// other callers are waiting on.
func (p *CachedTokenProvider) acquire(a *acquisition, verbose bool) {
	defer close(a.done)

	if verbose {
		logger.Debug().Msg("acquiring access token")
	}

	cred, err := p.acquirer.Acquire(context.Background())
	a.cred, a.err = cred, err

	if !verbose {
		return
	}
	if err != nil {
		logger.Debug().Err(err).Msg("token acquisition failed")
		return
	}
	logger.Debug().
		Str("token_type", cred.TokenType).
		Str("resource", cred.Resource).
		Time("expires_on", cred.ExpiresOn).
		Msg("access token acquired")
}
