package lyonkit_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyonkit/lyonkit-go"
)

// TestNewReadOnlyClient_Defaults verifies the default endpoint is used
// when none is given.
func TestNewReadOnlyClient_Defaults(t *testing.T) {
	client, err := lyonkit.NewReadOnlyClient("key")

	require.NoError(t, err)
	assert.Equal(t, lyonkit.DefaultEndpoint, client.Endpoint())
}

// TestNewReadOnlyClient_InvalidConfig tests construction failures.
func TestNewReadOnlyClient_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		opts   []lyonkit.Option
	}{
		{name: "empty api key", apiKey: ""},
		{name: "endpoint without host", apiKey: "key", opts: []lyonkit.Option{lyonkit.WithEndpoint("not a url")}},
		{name: "unparsable endpoint", apiKey: "key", opts: []lyonkit.Option{lyonkit.WithEndpoint("http://[::1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := lyonkit.NewReadOnlyClient(tt.apiKey, tt.opts...)

			require.Error(t, err)
			assert.Nil(t, client)
			var apiErr *lyonkit.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, "INVALID_CONFIG", apiErr.Code)
		})
	}
}

// TestNewWriteClient_InvalidConfig verifies the write constructor shares
// the read validation.
func TestNewWriteClient_InvalidConfig(t *testing.T) {
	client, err := lyonkit.NewWriteClient("")

	require.Error(t, err)
	assert.Nil(t, client)
}

// TestClient_RequestShape verifies that:
//   - requests go to the /api root of the endpoint
//   - the API key is sent in the x-api-key header
//   - the User-Agent identifies the SDK
func TestClient_RequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ping", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "secret-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "lyonkit-go/"+lyonkit.Version, r.Header.Get("User-Agent"))

		mustEncode(w, map[string]string{"message": "Hello LyonKit API !"})
	}))
	defer server.Close()

	client, err := lyonkit.NewReadOnlyClient("secret-key", lyonkit.WithEndpoint(server.URL))
	require.NoError(t, err)

	pong, err := client.Ping(newTestContext(t))

	require.NoError(t, err)
	assert.Equal(t, "Hello LyonKit API !", pong.Message)
}

// TestClient_EndpointBasePath verifies a base path in the endpoint is kept
// in front of /api.
func TestClient_EndpointBasePath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lyonkit/api/quote", r.URL.Path)
		mustEncode(w, []any{})
	}))
	defer server.Close()

	client, err := lyonkit.NewReadOnlyClient("key", lyonkit.WithEndpoint(server.URL+"/lyonkit/"))
	require.NoError(t, err)

	quotes, err := client.ListQuotes(newTestContext(t))

	require.NoError(t, err)
	assert.Empty(t, quotes)
}

// TestClient_WithUserAgent verifies the User-Agent option.
func TestClient_WithUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "my-site/1.0", r.Header.Get("User-Agent"))
		mustEncode(w, map[string]string{"message": "ok"})
	}))
	defer server.Close()

	client, err := lyonkit.NewReadOnlyClient("key",
		lyonkit.WithEndpoint(server.URL),
		lyonkit.WithUserAgent("my-site/1.0"),
	)
	require.NoError(t, err)

	_, err = client.Ping(newTestContext(t))
	require.NoError(t, err)
}

// TestClient_WithHTTPClient verifies the custom HTTP client is used.
func TestClient_WithHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mustEncode(w, map[string]string{"message": "ok"})
	}))
	defer server.Close()

	rt := &countingTransport{next: http.DefaultTransport}
	client, err := lyonkit.NewReadOnlyClient("key",
		lyonkit.WithEndpoint(server.URL),
		lyonkit.WithHTTPClient(&http.Client{Transport: rt}),
		lyonkit.WithHTTPClient(nil), // ignored
	)
	require.NoError(t, err)

	_, err = client.Ping(newTestContext(t))

	require.NoError(t, err)
	assert.Equal(t, 1, rt.calls)
}

type countingTransport struct {
	next  http.RoundTripper
	calls int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return c.next.RoundTrip(r)
}

// TestClient_WithLogger verifies each request is logged at debug level.
func TestClient_WithLogger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mustEncode(w, []any{})
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client, err := lyonkit.NewReadOnlyClient("key",
		lyonkit.WithEndpoint(server.URL),
		lyonkit.WithLogger(logger),
	)
	require.NoError(t, err)

	_, err = client.ListQuotes(newTestContext(t))

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "op=listQuotes")
	assert.Contains(t, buf.String(), "status=200")
}

// TestClient_WithDebug verifies debug mode does not alter responses and
// keeps the API key out of the request dump.
func TestClient_WithDebug(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mustEncode(w, map[string]string{"message": "ok"})
	}))
	defer server.Close()

	const apiKey = "3f5c2b8e-secret-api-key"
	var buf bytes.Buffer
	client, err := lyonkit.NewReadOnlyClient(apiKey,
		lyonkit.WithEndpoint(server.URL),
		lyonkit.WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		lyonkit.WithDebug(true),
	)
	require.NoError(t, err)

	pong, err := client.Ping(newTestContext(t))

	require.NoError(t, err)
	assert.Equal(t, "ok", pong.Message)
	assert.NotEmpty(t, buf.String())
	assert.NotContains(t, buf.String(), apiKey, "the API key must not be dumped")
	assert.Contains(t, buf.String(), "[REDACTED]")
}

// TestClient_PathEscaping verifies caller-supplied identifiers reach the
// server verbatim: reserved characters are escaped, ".." is not resolved,
// slugs and language codes are single segments, and page and git paths
// keep their "/" separators.
func TestClient_PathEscaping(t *testing.T) {
	tests := []struct {
		name string
		call func(ctx context.Context, c *lyonkit.WriteClient) error
		want string
	}{
		{
			name: "page path",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.GetPage(ctx, "/about/me")
				return err
			},
			want: "/api/page/wb/about/me",
		},
		{
			name: "root page",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error { _, err := c.GetPage(ctx, "/"); return err },
			want: "/api/page/wb/",
		},
		{
			name: "page path with question mark",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error { _, err := c.GetPage(ctx, "/a?b"); return err },
			want: "/api/page/wb/a%3Fb",
		},
		{
			name: "page path with hash and percent",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.GetPage(ctx, "/a#b/c%d")
				return err
			},
			want: "/api/page/wb/a%23b/c%25d",
		},
		{
			name: "page path with dot segments",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.GetPage(ctx, "/../quote")
				return err
			},
			want: "/api/page/wb/../quote",
		},
		{
			name: "slug with space and slash",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.GetPostBySlug(ctx, "a b/c")
				return err
			},
			want: "/api/post/s/a%20b%2Fc",
		},
		{
			name: "slug with query",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.GetPostBySlug(ctx, "what?x=1")
				return err
			},
			want: "/api/post/s/what%3Fx=1",
		},
		{
			name: "slug with fragment",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.GetPostBySlug(ctx, "a#b")
				return err
			},
			want: "/api/post/s/a%23b",
		},
		{
			name: "slug with percent",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.GetPostBySlug(ctx, "100%")
				return err
			},
			want: "/api/post/s/100%25",
		},
		{
			name: "slug with dot segments",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.GetPostBySlug(ctx, "../../quote")
				return err
			},
			want: "/api/post/s/..%2F..%2Fquote",
		},
		{
			name: "lang",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.UpdateLocale(ctx, "fr", nil)
				return err
			},
			want: "/api/locale/fr",
		},
		{
			name: "lang with reserved characters",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.UpdateLocale(ctx, "fr?x#y%", nil)
				return err
			},
			want: "/api/locale/fr%3Fx%23y%25",
		},
		{
			name: "git path",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.GetGitJSONFile(ctx, "/config/site.json")
				return err
			},
			want: "/api/git/json-file/config/site.json",
		},
		{
			name: "git path with reserved characters",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.UpdateGitJSONFile(ctx, "a b/c#d?.json", map[string]any{})
				return err
			},
			want: "/api/git/json-file/a%20b/c%23d%3F.json",
		},
		{
			name: "git path with dot segments",
			call: func(ctx context.Context, c *lyonkit.WriteClient) error {
				_, err := c.GetGitJSONFile(ctx, "../secret.json")
				return err
			},
			want: "/api/git/json-file/../secret.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotQuery string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath, gotQuery = r.URL.EscapedPath(), r.URL.RawQuery
				mustEncode(w, map[string]any{})
			}))
			defer server.Close()

			client, err := lyonkit.NewWriteClient("key", lyonkit.WithEndpoint(server.URL))
			require.NoError(t, err)

			err = tt.call(newTestContext(t), client)

			require.NoError(t, err)
			assert.Equal(t, tt.want, gotPath)
			assert.Empty(t, gotQuery)
		})
	}
}

// TestClient_ConcurrentUse verifies a client can be shared by goroutines.
func TestClient_ConcurrentUse(t *testing.T) {
	f := newFixture(t)
	ctx := newTestContext(t)

	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := f.read.Ping(ctx)
			errs <- err
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, <-errs)
	}
}
