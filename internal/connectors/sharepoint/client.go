package sharepoint

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/spfetch/internal/core/domain"
	"github.com/custodia-labs/spfetch/internal/core/ports/driven"
)

// acceptVerbose requests the verbose OData envelope, the only JSON shape
// SharePoint 2013 serves with stable field names.
const acceptVerbose = "application/json;odata=verbose"

// MaxContentSize is the maximum attachment size to download (5MB).
const MaxContentSize = 5 * 1024 * 1024

// Client fetches collection resources from a SharePoint 2013 site via its
// REST API. It stitches server-side pages into one logical result and
// performs no retries: transport failures propagate to the caller.
type Client struct {
	config        *Config
	urls          *URLBuilder
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
	httpClient    *http.Client
}

// NewClient creates a SharePoint client for the configured site.
func NewClient(cfg *Config, tokenProvider driven.TokenProvider) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // G402: explicit opt-in compatibility shim, see Config
	}

	return &Client{
		config:        cfg,
		urls:          NewURLBuilder(cfg.BaseURL, cfg.SiteName),
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   60 * time.Second,
		},
	}
}

// URLs returns the client's resource URL builder.
func (c *Client) URLs() *URLBuilder {
	return c.urls
}

// pageEnvelope is one fetched page of a collection resource.
type pageEnvelope struct {
	// Results are the page's records in server order.
	Results []domain.ListItem
	// NextURL is the continuation pointer to the next page, empty on the
	// last page.
	NextURL string
}

// fetchPage issues one GET against a collection resource URL and parses
// the verbose OData envelope.
func (c *Client) fetchPage(ctx context.Context, resourceURL string) (*pageEnvelope, error) {
	body, err := c.getJSON(ctx, resourceURL)
	if err != nil {
		return nil, err
	}
	return parseEnvelope(body)
}

// getJSON performs an authenticated GET and returns the response body.
func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.doGet(ctx, url, acceptVerbose)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if IsRateLimited(resp.StatusCode) {
			retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
			c.rateLimiter.RecordRateLimitError(retryAfter)
		}
		return nil, fmt.Errorf("request failed with status %d: %w",
			resp.StatusCode, WrapError(resp.StatusCode))
	}

	return body, nil
}

// DownloadAttachment downloads a single attachment's content, bounded at
// MaxContentSize.
func (c *Client) DownloadAttachment(ctx context.Context, listGUID string, itemID int, fileName string) ([]byte, error) {
	url := c.urls.AttachmentContent(listGUID, itemID, fileName)

	resp, err := c.doGet(ctx, url, "*/*")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status %d: %w",
			resp.StatusCode, WrapError(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxContentSize))
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	return data, nil
}

// doGet performs one rate-limited, authenticated GET.
func (c *Client) doGet(ctx context.Context, url, accept string) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", accept)
	req.Header.Set("client-request-id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	return resp, nil
}

// parseEnvelope decodes a verbose OData collection envelope.
// The body must carry a "d" wrapper with a "results" array; anything else
// is a malformed envelope.
func parseEnvelope(body []byte) (*pageEnvelope, error) {
	var outer struct {
		D json.RawMessage `json:"d"`
	}
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}
	if outer.D == nil {
		return nil, fmt.Errorf("%w: missing d wrapper", ErrMalformedEnvelope)
	}

	var page struct {
		Results []domain.ListItem `json:"results"`
		Next    string            `json:"__next"`
	}
	if err := json.Unmarshal(outer.D, &page); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}
	if page.Results == nil {
		return nil, fmt.Errorf("%w: missing results", ErrMalformedEnvelope)
	}

	return &pageEnvelope{
		Results: page.Results,
		NextURL: page.Next,
	}, nil
}
