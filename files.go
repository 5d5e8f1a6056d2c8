package lyonkit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ListFiles returns the stored files of the namespace, restricted to those
// tagged with tag when tag is not empty.
func (c *ReadOnlyClient) ListFiles(ctx context.Context, tag string) ([]File, error) {
	cl := &call{id: "listFiles", method: http.MethodGet, path: "/file"}
	if tag != "" {
		cl.query = url.Values{"tag": {tag}}
	}
	return list[File](ctx, c.t, cl)
}

// CreateFile registers a file and returns a presigned upload URL. Send the
// content with UploadFileContent before the URL expires.
func (c *WriteClient) CreateFile(ctx context.Context, input FileInput) (*FileUpload, error) {
	if input.Tags == nil {
		input.Tags = []string{}
	}
	if input.Metadata == nil {
		input.Metadata = map[string]string{}
	}
	return do[FileUpload](ctx, c.t, &call{
		id:     "createFile",
		method: http.MethodPost,
		path:   "/file",
		body:   input,
	})
}

// UpdateFile changes the tags or metadata of a file. When update.File is
// set the returned record carries a new upload URL.
func (c *WriteClient) UpdateFile(ctx context.Context, fileID int64, update FileUpdate) (*FileUpload, error) {
	return do[FileUpload](ctx, c.t, &call{
		id:     "updateFile",
		method: http.MethodPut,
		path:   "/file/{id}",
		params: idParam(fileID),
		body:   update,
	})
}

// DeleteFile deletes a file and its stored content.
func (c *WriteClient) DeleteFile(ctx context.Context, fileID int64) (*FileDeletion, error) {
	return do[FileDeletion](ctx, c.t, &call{
		id:     "deleteFile",
		method: http.MethodDelete,
		path:   "/file/{id}",
		params: idParam(fileID),
	})
}

// UploadFileContent PUTs content to a presigned upload URL returned by
// CreateFile or UpdateFile. size must match the declared ContentLength.
// The API key is not sent to the storage provider.
func (c *WriteClient) UploadFileContent(ctx context.Context, uploadURL, contentType string, content io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, content)
	if err != nil {
		return newError("REQUEST_FAILED", "failed to create upload request", 0, err)
	}
	req.ContentLength = size
	req.Header.Set("x-amz-acl", "public-read")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.t.httpClient.Do(req)
	if err != nil {
		return handleError(err, "file upload failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errorFromResponse(resp.StatusCode, resp.Body)
		apiErr.Message = fmt.Sprintf("file upload failed: %s", apiErr.Message)
		return apiErr
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
