package lyonkit

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

func gitJSONFileCall(id, method, path string) *call {
	pattern, params := segmentParams(strings.TrimPrefix(path, "/"))
	return &call{id: id, method: method, path: "/git/json-file" + pattern, params: params}
}

// GetGitJSONFile returns the JSON document stored at path in the
// namespace repository. Use GetGitJSONFileAs to decode into a known type.
func (c *WriteClient) GetGitJSONFile(ctx context.Context, path string) (any, error) {
	out, err := GetGitJSONFileAs[any](ctx, c, path)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// GetGitJSONFileAs returns the JSON document stored at path decoded into T.
//
//	type Settings struct {
//	    Theme string `json:"theme"`
//	}
//	settings, err := lyonkit.GetGitJSONFileAs[Settings](ctx, client, "config/settings.json")
func GetGitJSONFileAs[T any](ctx context.Context, c *WriteClient, path string) (*T, error) {
	return do[T](ctx, c.t, gitJSONFileCall("getGitJsonFile", http.MethodGet, path))
}

// UpdateGitJSONFile replaces the whole document stored at path with doc
// and returns the document as stored by the server.
func (c *WriteClient) UpdateGitJSONFile(ctx context.Context, path string, doc any) (any, error) {
	out, err := UpdateGitJSONFileAs[any](ctx, c, path, doc)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// UpdateGitJSONFileAs is UpdateGitJSONFile decoding the result into T.
func UpdateGitJSONFileAs[T any](ctx context.Context, c *WriteClient, path string, doc any) (*T, error) {
	var body any = doc
	if doc == nil {
		body = json.RawMessage("null")
	}
	cl := gitJSONFileCall("updateGitJsonFile", http.MethodPut, path)
	cl.body = body
	return do[T](ctx, c.t, cl)
}
