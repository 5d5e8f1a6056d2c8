package lyonkit

import (
	"encoding/json"
	"io"
	"sort"
	"time"

	"github.com/go-openapi/strfmt"
)

// Object is an open JSON mapping of string keys to arbitrary JSON values
// (nil, bool, json.Number, string, []any or map[string]any). The API treats
// it as an opaque payload.
type Object map[string]any

// Timestamps holds the creation and update times of a record as sent by
// the server (ISO-8601 strings, kept verbatim).
type Timestamps struct {
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Created parses CreatedAt.
func (t Timestamps) Created() (time.Time, error) {
	return parseTimestamp(t.CreatedAt)
}

// Updated parses UpdatedAt.
func (t Timestamps) Updated() (time.Time, error) {
	return parseTimestamp(t.UpdatedAt)
}

func parseTimestamp(s string) (time.Time, error) {
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Time(dt), nil
}

// Pong is the response of [ReadOnlyClient.Ping].
type Pong struct {
	Message string `json:"message"`
}

// ----------------------------------------------------------------------------
// Images
// ----------------------------------------------------------------------------

// Image is an uploaded image together with its lazy-loading variant.
type Image struct {
	ID        int64     `json:"id"`
	PublicURL string    `json:"publicUrl"`
	LazyImage LazyImage `json:"lazyImage"`

	// Alt is the alternative text, nil when none was given.
	Alt *string `json:"alt"`

	Timestamps
}

// LazyImage is the small placeholder variant derived from an uploaded image.
type LazyImage struct {
	ID        int64   `json:"id"`
	PublicURL string  `json:"publicUrl"`
	Alt       *string `json:"alt"`

	Timestamps
}

// ImageInput is the payload of [WriteClient.CreateImage].
type ImageInput struct {
	// Image is the binary content, sent as the "image" multipart field.
	Image io.Reader

	// FileName is the name given to the multipart part. Defaults to "image".
	FileName string

	// Alt is the optional alternative text.
	Alt *string
}

// ----------------------------------------------------------------------------
// Pages
// ----------------------------------------------------------------------------

// Page is a routable page of a namespace.
type Page struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`

	// Namespace is assigned by the server from the API key.
	Namespace string `json:"namespace"`

	// Path is the unique addressing key of the page within its namespace,
	// for example "/about/me".
	Path string `json:"path"`

	Timestamps
}

// PageWithBloks is a page returned together with its bloks.
type PageWithBloks struct {
	Page
	Bloks []Blok `json:"bloks"`
}

// SortedBloks returns a copy of the page bloks ordered by ascending
// priority, ties broken by ascending id. The Bloks field itself keeps the
// server order.
func (p *PageWithBloks) SortedBloks() []Blok {
	out := make([]Blok, len(p.Bloks))
	copy(out, p.Bloks)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// PageInput is the payload used to create or fully replace a page.
type PageInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Path        string  `json:"path"`
}

// ----------------------------------------------------------------------------
// Bloks
// ----------------------------------------------------------------------------

// Blok is a content block attached to a page.
type Blok struct {
	ID     int64 `json:"id"`
	PageID int64 `json:"pageId"`

	// ComponentID names the UI component rendering the blok.
	ComponentID string `json:"componentId"`
	Props       Object `json:"props"`

	// Priority orders the bloks of a page.
	Priority int64 `json:"priority"`

	Timestamps
}

// BlokInput is the payload used to create or fully replace a blok.
type BlokInput struct {
	PageID      int64  `json:"pageId"`
	ComponentID string `json:"componentId"`
	Props       Object `json:"props"`

	// Priority is optional; the server appends the blok after the others
	// of the page when nil.
	Priority *int64 `json:"priority,omitempty"`
}

// BlokPatch is a partial blok update. Only non-nil fields are sent and the
// server merges them into the stored blok.
//
//	client.PatchBlok(ctx, blokID, lyonkit.BlokPatch{Priority: swag.Int64(0)})
type BlokPatch struct {
	PageID      *int64
	ComponentID *string
	Props       Object
	Priority    *int64
}

// MarshalJSON encodes only the fields that are set.
func (p BlokPatch) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 4)
	if p.PageID != nil {
		m["pageId"] = *p.PageID
	}
	if p.ComponentID != nil {
		m["componentId"] = *p.ComponentID
	}
	if p.Props != nil {
		m["props"] = p.Props
	}
	if p.Priority != nil {
		m["priority"] = *p.Priority
	}
	return json.Marshal(m)
}

// ----------------------------------------------------------------------------
// Posts
// ----------------------------------------------------------------------------

// Post is a blog post, addressable by id or by slug.
type Post struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Slug        string  `json:"slug"`
	Namespace   string  `json:"namespace"`

	// Body is an arbitrary JSON document, typically a rich text tree.
	Body any `json:"body"`

	Timestamps
}

// PostInput is the payload used to create or fully replace a post.
type PostInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Slug        string  `json:"slug"`
	Body        any     `json:"body"`
}

// ----------------------------------------------------------------------------
// Quotes
// ----------------------------------------------------------------------------

// Quote is a quotation.
type Quote struct {
	ID        int64  `json:"id"`
	Namespace string `json:"namespace"`
	Author    string `json:"author"`
	Message   string `json:"message"`

	Timestamps
}

// QuoteInput is the payload used to create or fully replace a quote.
type QuoteInput struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

// ----------------------------------------------------------------------------
// Locales
// ----------------------------------------------------------------------------

// LocaleMessages maps a language code to its translation messages. Values
// are usually JSON objects but the server accepts any JSON document, so
// they are kept untyped; use Lang for the object form.
type LocaleMessages map[string]any

// Lang returns the messages of lang when they are a JSON object, nil
// otherwise.
func (m LocaleMessages) Lang(lang string) Object {
	switch v := m[lang].(type) {
	case map[string]any:
		return Object(v)
	case Object:
		return v
	}
	return nil
}

// Locale is the translation bundle of one language.
type Locale struct {
	ID        int64  `json:"id"`
	Namespace string `json:"namespace"`
	Lang      string `json:"lang"`
	Messages  Object `json:"messages"`

	Timestamps
}

// ----------------------------------------------------------------------------
// Files
// ----------------------------------------------------------------------------

// File is a stored file.
type File struct {
	ID        int64    `json:"id"`
	Key       string   `json:"key"`
	PublicURL string   `json:"publicUrl"`
	Tags      []string `json:"tags"`
	Metadata  Object   `json:"metadata"`

	Timestamps
}

// FileUpload is a file record returned by create and update. UploadURL is
// a short-lived presigned URL to PUT the content to, nil when no content
// change was requested.
type FileUpload struct {
	File
	UploadURL *string `json:"uploadUrl"`
}

// FilePayload describes the content about to be uploaded.
type FilePayload struct {
	FileName      string  `json:"fileName"`
	ContentType   *string `json:"contentType,omitempty"`
	ContentLength int64   `json:"contentLength"`
}

// FileInput is the payload of [WriteClient.CreateFile].
type FileInput struct {
	File     FilePayload       `json:"file"`
	Tags     []string          `json:"tags"`
	Metadata map[string]string `json:"metadata"`
}

// FileUpdate is the payload of [WriteClient.UpdateFile]. Nil fields are
// left unchanged; a non-nil File requests a new upload URL.
type FileUpdate struct {
	File     *FilePayload      `json:"file,omitempty"`
	Tags     []string          `json:"tags,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// FileDeletion is returned by [WriteClient.DeleteFile].
type FileDeletion struct {
	ID int64 `json:"id"`
}
