package lyonkit

import (
	"context"
	"net/http"
)

// ListQuotes returns every quote of the namespace. An empty namespace
// yields an empty slice.
func (c *ReadOnlyClient) ListQuotes(ctx context.Context) ([]Quote, error) {
	return list[Quote](ctx, c.t, &call{id: "listQuotes", method: http.MethodGet, path: "/quote"})
}

// GetQuote returns a quote by id.
func (c *ReadOnlyClient) GetQuote(ctx context.Context, quoteID int64) (*Quote, error) {
	return do[Quote](ctx, c.t, &call{
		id:     "getQuote",
		method: http.MethodGet,
		path:   "/quote/{id}",
		params: idParam(quoteID),
	})
}

// CreateQuote creates a quote.
func (c *WriteClient) CreateQuote(ctx context.Context, quote QuoteInput) (*Quote, error) {
	return do[Quote](ctx, c.t, &call{
		id:     "createQuote",
		method: http.MethodPost,
		path:   "/quote",
		body:   quote,
	})
}

// UpdateQuote replaces the author and message of a quote.
func (c *WriteClient) UpdateQuote(ctx context.Context, quoteID int64, update QuoteInput) (*Quote, error) {
	return do[Quote](ctx, c.t, &call{
		id:     "updateQuote",
		method: http.MethodPut,
		path:   "/quote/{id}",
		params: idParam(quoteID),
		body:   update,
	})
}

// DeleteQuote deletes a quote and returns its last representation.
func (c *WriteClient) DeleteQuote(ctx context.Context, quoteID int64) (*Quote, error) {
	return do[Quote](ctx, c.t, &call{
		id:     "deleteQuote",
		method: http.MethodDelete,
		path:   "/quote/{id}",
		params: idParam(quoteID),
	})
}
