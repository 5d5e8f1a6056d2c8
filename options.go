package lyonkit

import (
	"log/slog"
	"net/http"
)

// options holds the construction-time settings of a client.
type options struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	debug      bool
}

// Option configures a client.
type Option func(*options)

// WithEndpoint overrides the Lyonkit service URL. Requests are sent
// under <endpoint>/api.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		if httpClient != nil {
			o.httpClient = httpClient
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithLogger sets the structured logger used for request logging.
// Requests are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDebug dumps raw requests and responses to the logger. The x-api-key
// header is replaced with "[REDACTED]" in the dump; bodies are logged as is.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}
