package http

import (
	"net/http"
	"time"

	commonshttp "github.com/flanksource/commons/http"
	"github.com/flanksource/commons/logger"
)

// DefaultTimeout bounds a single release-metadata request
const DefaultTimeout = 30 * time.Second

// ClientOption configures the HTTP client
type ClientOption func(*clientConfig)

type clientConfig struct {
	timeout     time.Duration
	headerLevel logger.LogLevel
	bodyLevel   logger.LogLevel
	logging     bool
}

// WithTimeout sets the request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHttpLogging enables request/response logging at the given levels
func WithHttpLogging(headerLevel, bodyLevel logger.LogLevel) ClientOption {
	return func(c *clientConfig) {
		c.headerLevel = headerLevel
		c.bodyLevel = bodyLevel
		c.logging = true
	}
}

// GetHttpClient returns the client used for releases-index fetches, built on
// flanksource/commons/http. Logging is off unless tracing is enabled so index
// lookups stay quiet in normal runs.
func GetHttpClient(opts ...ClientOption) *http.Client {
	cfg := &clientConfig{
		timeout:     DefaultTimeout,
		headerLevel: logger.Trace1,
		bodyLevel:   logger.Trace2,
		logging:     logger.IsTraceEnabled(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	transport := commonshttp.NewClient().Timeout(cfg.timeout)
	if cfg.logging {
		transport = transport.WithHttpLogging(cfg.headerLevel, cfg.bodyLevel)
	}

	// commons clients implement http.RoundTripper
	return &http.Client{
		Transport: transport,
		Timeout:   cfg.timeout,
	}
}
