package lyonkit

import (
	"context"
	"net/http"
	"strings"
)

// ListPages returns every page of the namespace, without their bloks.
func (c *ReadOnlyClient) ListPages(ctx context.Context) ([]Page, error) {
	return list[Page](ctx, c.t, &call{id: "listPages", method: http.MethodGet, path: "/page"})
}

// GetPage returns the page addressed by path (for example "/about/me")
// together with its bloks.
func (c *ReadOnlyClient) GetPage(ctx context.Context, path string) (*PageWithBloks, error) {
	pattern, params := segmentParams(strings.TrimPrefix(path, "/"))
	return do[PageWithBloks](ctx, c.t, &call{
		id:     "getPageWithBloks",
		method: http.MethodGet,
		path:   "/page/wb" + pattern,
		params: params,
	})
}

// CreatePage creates a page. The namespace is assigned by the server.
func (c *WriteClient) CreatePage(ctx context.Context, page PageInput) (*Page, error) {
	return do[Page](ctx, c.t, &call{
		id:     "createPage",
		method: http.MethodPost,
		path:   "/page",
		body:   page,
	})
}

// UpdatePage replaces the title, description and path of a page.
func (c *WriteClient) UpdatePage(ctx context.Context, pageID int64, update PageInput) (*Page, error) {
	return do[Page](ctx, c.t, &call{
		id:     "updatePage",
		method: http.MethodPut,
		path:   "/page/{id}",
		params: idParam(pageID),
		body:   update,
	})
}

// DeletePage deletes a page and returns its last representation.
func (c *WriteClient) DeletePage(ctx context.Context, pageID int64) (*Page, error) {
	return do[Page](ctx, c.t, &call{
		id:     "deletePage",
		method: http.MethodDelete,
		path:   "/page/{id}",
		params: idParam(pageID),
	})
}
