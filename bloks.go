package lyonkit

import (
	"context"
	"net/http"
)

// GetBlok returns a single blok.
func (c *ReadOnlyClient) GetBlok(ctx context.Context, blokID int64) (*Blok, error) {
	return do[Blok](ctx, c.t, &call{
		id:     "getBlok",
		method: http.MethodGet,
		path:   "/blok/{id}",
		params: idParam(blokID),
	})
}

// CreateBlok attaches a new blok to a page.
func (c *WriteClient) CreateBlok(ctx context.Context, blok BlokInput) (*Blok, error) {
	return do[Blok](ctx, c.t, &call{
		id:     "createBlok",
		method: http.MethodPost,
		path:   "/blok",
		body:   blok,
	})
}

// UpdateBlok replaces a blok with update (PUT). Use PatchBlok to change
// only some fields.
func (c *WriteClient) UpdateBlok(ctx context.Context, blokID int64, update BlokInput) (*Blok, error) {
	return do[Blok](ctx, c.t, &call{
		id:     "updateBlok",
		method: http.MethodPut,
		path:   "/blok/{id}",
		params: idParam(blokID),
		body:   update,
	})
}

// PatchBlok sends the set fields of patch (PATCH). The server merges them
// into the stored blok; fields left nil are not sent and stay unchanged.
func (c *WriteClient) PatchBlok(ctx context.Context, blokID int64, patch BlokPatch) (*Blok, error) {
	return do[Blok](ctx, c.t, &call{
		id:     "patchBlok",
		method: http.MethodPatch,
		path:   "/blok/{id}",
		params: idParam(blokID),
		body:   patch,
	})
}

// DeleteBlok deletes a blok and returns its last representation.
func (c *WriteClient) DeleteBlok(ctx context.Context, blokID int64) (*Blok, error) {
	return do[Blok](ctx, c.t, &call{
		id:     "deleteBlok",
		method: http.MethodDelete,
		path:   "/blok/{id}",
		params: idParam(blokID),
	})
}
