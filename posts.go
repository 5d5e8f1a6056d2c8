package lyonkit

import (
	"context"
	"net/http"
)

// ListPosts returns every post of the namespace.
func (c *ReadOnlyClient) ListPosts(ctx context.Context) ([]Post, error) {
	return list[Post](ctx, c.t, &call{id: "listPosts", method: http.MethodGet, path: "/post"})
}

// GetPost returns a post by id.
func (c *ReadOnlyClient) GetPost(ctx context.Context, postID int64) (*Post, error) {
	return do[Post](ctx, c.t, &call{
		id:     "getPost",
		method: http.MethodGet,
		path:   "/post/{id}",
		params: idParam(postID),
	})
}

// GetPostBySlug returns a post by slug.
func (c *ReadOnlyClient) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	return do[Post](ctx, c.t, &call{
		id:     "getPostBySlug",
		method: http.MethodGet,
		path:   "/post/s/{slug}",
		params: map[string]string{"slug": slug},
	})
}

// CreatePost creates a post. The namespace is assigned by the server.
func (c *WriteClient) CreatePost(ctx context.Context, post PostInput) (*Post, error) {
	return do[Post](ctx, c.t, &call{
		id:     "createPost",
		method: http.MethodPost,
		path:   "/post",
		body:   post,
	})
}

// UpdatePost replaces the title, description, slug and body of a post.
func (c *WriteClient) UpdatePost(ctx context.Context, postID int64, update PostInput) (*Post, error) {
	return do[Post](ctx, c.t, &call{
		id:     "updatePost",
		method: http.MethodPut,
		path:   "/post/{id}",
		params: idParam(postID),
		body:   update,
	})
}

// DeletePost deletes a post and returns its last representation.
func (c *WriteClient) DeletePost(ctx context.Context, postID int64) (*Post, error) {
	return do[Post](ctx, c.t, &call{
		id:     "deletePost",
		method: http.MethodDelete,
		path:   "/post/{id}",
		params: idParam(postID),
	})
}
