package lyonkit

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/swag"
)

// ListImages returns every image of the namespace.
func (c *ReadOnlyClient) ListImages(ctx context.Context) ([]Image, error) {
	return list[Image](ctx, c.t, &call{id: "listImages", method: http.MethodGet, path: "/image"})
}

// CreateImage uploads an image as multipart form data. The server stores
// it together with a lazy-loading variant and returns both.
//
//	f, _ := os.Open("cover.jpg")
//	defer f.Close()
//	img, err := client.CreateImage(ctx, lyonkit.ImageInput{
//	    Image: f,
//	    Alt:   swag.String("Cover"),
//	})
func (c *WriteClient) CreateImage(ctx context.Context, input ImageInput) (*Image, error) {
	name := input.FileName
	if name == "" {
		name = "image"
	}
	content := input.Image
	if content == nil {
		content = http.NoBody
	}

	cl := &call{
		id:     "createImage",
		method: http.MethodPost,
		path:   "/image",
		files: map[string]runtime.NamedReadCloser{
			"image": runtime.NamedReader(name, content),
		},
	}
	if input.Alt != nil {
		cl.query = url.Values{"alt": {swag.StringValue(input.Alt)}}
	}
	return do[Image](ctx, c.t, cl)
}

// DeleteImage deletes an image and returns its last representation.
func (c *WriteClient) DeleteImage(ctx context.Context, imageID int64) (*Image, error) {
	return do[Image](ctx, c.t, &call{
		id:     "deleteImage",
		method: http.MethodDelete,
		path:   "/image/{id}",
		params: idParam(imageID),
	})
}
