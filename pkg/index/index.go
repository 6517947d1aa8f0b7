package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flanksource/commons/logger"

	dotnethttp "github.com/flanksource/dotnet-install/pkg/http"
	"github.com/flanksource/dotnet-install/pkg/types"
)

// DefaultIndexURL is the versioned release-metadata catalog published for
// the .NET runtime
const DefaultIndexURL = "https://builds.dotnet.microsoft.com/dotnet/release-metadata/releases-index.json"

// DefaultMaxAttempts bounds retries for a single index fetch
const DefaultMaxAttempts = 3

// Entry is a single record of the releases index. Only the channel-version
// field is consumed; the remaining metadata is ignored.
type Entry struct {
	ChannelVersion string `json:"channel-version"`
	LatestRelease  string `json:"latest-release,omitempty"`
	LatestSDK      string `json:"latest-sdk,omitempty"`
	SupportPhase   string `json:"support-phase,omitempty"`
}

// ReleasesIndex is the decoded releases-index document. Entries keep their
// document order; the first entry matching a major version is authoritative.
type ReleasesIndex struct {
	Entries []Entry `json:"releases-index"`
}

// LatestChannelFor returns the channel-version of the first entry whose
// major component equals the requested major, scanning in document order.
func (idx *ReleasesIndex) LatestChannelFor(major string) (string, bool) {
	for _, entry := range idx.Entries {
		entryMajor, _, found := strings.Cut(entry.ChannelVersion, ".")
		if !found {
			entryMajor = entry.ChannelVersion
		}
		if entryMajor == major {
			return entry.ChannelVersion, true
		}
	}
	return "", false
}

// Client fetches the releases index over HTTPS with bounded retry
type Client struct {
	client      *http.Client
	url         string
	maxAttempts int
	retryDelay  time.Duration
}

// Option configures the index client
type Option func(*Client)

// WithURL overrides the index URL
func WithURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.url = url
		}
	}
}

// WithMaxAttempts bounds the number of fetch attempts
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the pause between fetch attempts
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewClient creates a releases-index client
func NewClient(opts ...Option) *Client {
	c := &Client{
		client:      dotnethttp.GetHttpClient(),
		url:         DefaultIndexURL,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the index URL the client fetches from
func (c *Client) URL() string {
	return c.url
}

// Fetch downloads and decodes the releases index, retrying transient
// transport failures up to the attempt bound.
func (c *Client) Fetch(ctx context.Context) (*ReleasesIndex, error) {
	log := logger.GetLogger()

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			log.V(2).Infof("Retrying index fetch (attempt %d/%d): %v", attempt, c.maxAttempts, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		idx, transient, err := c.fetchOnce(ctx)
		if err == nil {
			return idx, nil
		}
		if !transient {
			return nil, err
		}
		lastErr = err
	}

	return nil, &types.TransportError{URL: c.url, Attempts: c.maxAttempts, Err: lastErr}
}

// fetchOnce performs a single GET of the index. The transient return
// indicates whether the failure is worth retrying.
func (c *Client) fetchOnce(ctx context.Context) (*ReleasesIndex, bool, error) {
	log := logger.GetLogger()
	log.Tracef("Fetching releases index from: %s", c.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("failed to fetch releases index from %s: %w", c.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		transient := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
		return nil, transient, fmt.Errorf("failed to fetch releases index: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	var idx ReleasesIndex
	if err := json.Unmarshal(body, &idx); err != nil {
		return nil, false, fmt.Errorf("failed to parse releases index: %w", err)
	}

	log.V(2).Infof("Discovered %d release channels from %s", len(idx.Entries), c.url)
	return &idx, false, nil
}

// LatestChannel resolves the latest channel for a major version, fetching
// the index once per call.
func (c *Client) LatestChannel(ctx context.Context, major string) (string, error) {
	idx, err := c.Fetch(ctx)
	if err != nil {
		return "", err
	}

	channel, found := idx.LatestChannelFor(major)
	if !found {
		return "", &types.ChannelNotFoundError{Major: major, IndexURL: c.url}
	}

	return channel, nil
}
