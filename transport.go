package lyonkit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/runtime"
	httptransport "github.com/go-openapi/runtime/client"
	"github.com/go-openapi/runtime/logger"
	"github.com/go-openapi/strfmt"
)

const apiKeyHeader = "x-api-key"

// transport is the single configured request function shared by the read
// and write clients. It owns no state beyond its configuration.
type transport struct {
	rt         *httptransport.Runtime
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

func newTransport(apiKey string, o options) (*transport, error) {
	u, err := url.Parse(o.endpoint)
	if err != nil {
		return nil, newError("INVALID_CONFIG", "invalid endpoint", 0, err)
	}
	if u.Host == "" {
		return nil, newError("INVALID_CONFIG", fmt.Sprintf("endpoint %q has no host", o.endpoint), 0, nil)
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}

	// Preserve any base path in the endpoint (e.g. https://host/lyonkit).
	basePath := path.Join("/", u.Path, "api")

	rt := httptransport.NewWithClient(u.Host, basePath, []string{scheme}, o.httpClient)
	rt.DefaultAuthentication = httptransport.APIKeyAuth(apiKeyHeader, "header", apiKey)
	if o.debug {
		rt.SetLogger(slogLogger{o.logger})
		rt.SetDebug(true)
	}

	return &transport{
		rt:         rt,
		httpClient: o.httpClient,
		userAgent:  o.userAgent,
		logger:     o.logger,
	}, nil
}

// call describes one request against the /api root.
type call struct {
	id     string
	method string
	// path is relative to /api. Caller-supplied values go through params
	// as {name} placeholders, never into path itself.
	path   string
	params map[string]string
	query  url.Values
	body   any
	files  map[string]runtime.NamedReadCloser
}

func (c *call) consumes() string {
	if len(c.files) > 0 {
		return runtime.MultipartFormMime
	}
	return runtime.JSONMime
}

func (c *call) writer(userAgent string) runtime.ClientRequestWriterFunc {
	return func(r runtime.ClientRequest, _ strfmt.Registry) error {
		// No client-side timeout: deadlines come from the caller's context.
		if err := r.SetTimeout(0); err != nil {
			return err
		}
		if userAgent != "" {
			if err := r.SetHeaderParam("User-Agent", userAgent); err != nil {
				return err
			}
		}
		for name, value := range c.params {
			if err := r.SetPathParam(name, value); err != nil {
				return err
			}
		}
		for name, values := range c.query {
			if err := r.SetQueryParam(name, values...); err != nil {
				return err
			}
		}
		for name, file := range c.files {
			if err := r.SetFileParam(name, file); err != nil {
				return err
			}
		}
		if c.body != nil {
			return r.SetBodyParam(c.body)
		}
		return nil
	}
}

// do submits c and decodes a successful JSON response into a new T.
func do[T any](ctx context.Context, t *transport, c *call) (*T, error) {
	start := time.Now()
	status := 0

	reader := runtime.ClientResponseReaderFunc(func(resp runtime.ClientResponse, consumer runtime.Consumer) (any, error) {
		status = resp.Code()
		if status < 200 || status > 299 {
			return nil, errorFromResponse(status, resp.Body())
		}
		out := new(T)
		if err := consumer.Consume(resp.Body(), out); err != nil && !errors.Is(err, io.EOF) {
			return nil, newError("INVALID_RESPONSE", "cannot decode response", status, err)
		}
		return out, nil
	})

	res, err := t.rt.Submit(&runtime.ClientOperation{
		ID:                 c.id,
		Method:             c.method,
		PathPattern:        c.path,
		ProducesMediaTypes: []string{runtime.JSONMime},
		ConsumesMediaTypes: []string{c.consumes()},
		Params:             c.writer(t.userAgent),
		Reader:             reader,
		Context:            ctx,
	})

	attrs := []slog.Attr{
		slog.String("op", c.id),
		slog.String("method", c.method),
		slog.String("path", c.path),
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		apiErr := handleError(err, fmt.Sprintf("%s %s failed", c.method, c.path))
		attrs = append(attrs, slog.String("code", apiErr.Code))
		t.logger.LogAttrs(ctx, slog.LevelDebug, "lyonkit request failed", attrs...)
		return nil, apiErr
	}
	t.logger.LogAttrs(ctx, slog.LevelDebug, "lyonkit request", attrs...)

	out, ok := res.(*T)
	if !ok {
		return nil, newError("INVALID_RESPONSE", fmt.Sprintf("unexpected result type %T", res), status, nil)
	}
	return out, nil
}

// list is do for collection endpoints. It never returns a nil slice on
// success so that an empty store reads as an empty collection.
func list[T any](ctx context.Context, t *transport, c *call) ([]T, error) {
	out, err := do[[]T](ctx, t, c)
	if err != nil {
		return nil, err
	}
	if *out == nil {
		return []T{}, nil
	}
	return *out, nil
}

// idParam formats a numeric resource id for use as a path parameter.
func idParam(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}

// segmentParams turns a "/"-separated path into one placeholder per segment
// ("/{s0}/{s1}") and the matching path parameters. The runtime escapes each
// parameter after building the URL, so "?", "#", "%" and ".." reach the
// server as literal segment content.
func segmentParams(p string) (string, map[string]string) {
	segments := strings.Split(p, "/")
	params := make(map[string]string, len(segments))
	var b strings.Builder
	for i, s := range segments {
		name := "s" + strconv.Itoa(i)
		b.WriteString("/{" + name + "}")
		params[name] = s
	}
	return b.String(), params
}

// slogLogger routes go-openapi runtime debug output to slog.
type slogLogger struct {
	l *slog.Logger
}

var _ logger.Logger = slogLogger{}

// apiKeyLine matches the API key header in dumped requests.
var apiKeyLine = regexp.MustCompile(`(?im)^(` + apiKeyHeader + `:[ \t]*)[^\r\n]*`)

func redactAPIKey(s string) string {
	return apiKeyLine.ReplaceAllString(s, "${1}[REDACTED]")
}

func (s slogLogger) Printf(format string, args ...any) {
	s.l.Info(redactAPIKey(fmt.Sprintf(format, args...)))
}

func (s slogLogger) Debugf(format string, args ...any) {
	s.l.Debug(redactAPIKey(fmt.Sprintf(format, args...)))
}
