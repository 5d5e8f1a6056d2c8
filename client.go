package lyonkit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
)

// DefaultEndpoint is the public Lyonkit service URL.
const DefaultEndpoint = "https://lyonkit.leo-coletta.fr"

// ReadAPI is the read capability of the Lyonkit API.
type ReadAPI interface {
	Ping(ctx context.Context) (*Pong, error)

	ListImages(ctx context.Context) ([]Image, error)

	ListPages(ctx context.Context) ([]Page, error)
	GetPage(ctx context.Context, path string) (*PageWithBloks, error)

	GetBlok(ctx context.Context, blokID int64) (*Blok, error)

	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, postID int64) (*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)

	ListQuotes(ctx context.Context) ([]Quote, error)
	GetQuote(ctx context.Context, quoteID int64) (*Quote, error)

	GetLocales(ctx context.Context) (LocaleMessages, error)

	ListFiles(ctx context.Context, tag string) ([]File, error)
}

// WriteAPI is the write capability of the Lyonkit API. It includes
// everything ReadAPI exposes.
type WriteAPI interface {
	ReadAPI

	CreateImage(ctx context.Context, input ImageInput) (*Image, error)
	DeleteImage(ctx context.Context, imageID int64) (*Image, error)

	CreatePage(ctx context.Context, page PageInput) (*Page, error)
	UpdatePage(ctx context.Context, pageID int64, update PageInput) (*Page, error)
	DeletePage(ctx context.Context, pageID int64) (*Page, error)

	CreateBlok(ctx context.Context, blok BlokInput) (*Blok, error)
	UpdateBlok(ctx context.Context, blokID int64, update BlokInput) (*Blok, error)
	PatchBlok(ctx context.Context, blokID int64, patch BlokPatch) (*Blok, error)
	DeleteBlok(ctx context.Context, blokID int64) (*Blok, error)

	CreatePost(ctx context.Context, post PostInput) (*Post, error)
	UpdatePost(ctx context.Context, postID int64, update PostInput) (*Post, error)
	DeletePost(ctx context.Context, postID int64) (*Post, error)

	CreateQuote(ctx context.Context, quote QuoteInput) (*Quote, error)
	UpdateQuote(ctx context.Context, quoteID int64, update QuoteInput) (*Quote, error)
	DeleteQuote(ctx context.Context, quoteID int64) (*Quote, error)

	UpdateLocale(ctx context.Context, lang string, messages Object) (*Locale, error)

	GetGitJSONFile(ctx context.Context, path string) (any, error)
	UpdateGitJSONFile(ctx context.Context, path string, doc any) (any, error)

	CreateFile(ctx context.Context, input FileInput) (*FileUpload, error)
	UpdateFile(ctx context.Context, fileID int64, update FileUpdate) (*FileUpload, error)
	DeleteFile(ctx context.Context, fileID int64) (*FileDeletion, error)
	UploadFileContent(ctx context.Context, uploadURL, contentType string, content io.Reader, size int64) error
}

var (
	_ ReadAPI  = (*ReadOnlyClient)(nil)
	_ WriteAPI = (*WriteClient)(nil)
)

// ReadOnlyClient exposes the retrieval operations of the Lyonkit API.
//
// A ReadOnlyClient is immutable once built and safe for concurrent use.
type ReadOnlyClient struct {
	endpoint string
	t        *transport
}

// WriteClient exposes every mutation of the Lyonkit API on top of the
// retrieval operations of the embedded ReadOnlyClient.
type WriteClient struct {
	*ReadOnlyClient
}

// NewReadOnlyClient creates a client limited to retrieval operations.
//
//	client, err := lyonkit.NewReadOnlyClient(apiKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	quotes, err := client.ListQuotes(ctx)
func NewReadOnlyClient(apiKey string, opts ...Option) (*ReadOnlyClient, error) {
	o := options{
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
		userAgent:  "lyonkit-go/" + Version,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if apiKey == "" {
		return nil, newError("INVALID_CONFIG", "api key is required", 0, nil)
	}

	t, err := newTransport(apiKey, o)
	if err != nil {
		return nil, err
	}
	return &ReadOnlyClient{endpoint: o.endpoint, t: t}, nil
}

// NewWriteClient creates a client exposing read and write operations.
// The API key must not be read-only or every mutation fails with
// ErrUnauthorized.
func NewWriteClient(apiKey string, opts ...Option) (*WriteClient, error) {
	ro, err := NewReadOnlyClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &WriteClient{ReadOnlyClient: ro}, nil
}

// Endpoint returns the service URL the client talks to.
func (c *ReadOnlyClient) Endpoint() string {
	return c.endpoint
}

// Ping checks that the API is reachable and the key is accepted.
func (c *ReadOnlyClient) Ping(ctx context.Context) (*Pong, error) {
	return do[Pong](ctx, c.t, &call{id: "ping", method: http.MethodGet, path: "/ping"})
}
