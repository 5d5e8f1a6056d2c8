package fakelyonkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type image struct {
	ID        int64     `json:"id"`
	PublicURL string    `json:"publicUrl"`
	LazyImage lazyImage `json:"lazyImage"`
	Alt       *string   `json:"alt"`
	timestamps

	namespace string
}

type lazyImage struct {
	ID        int64   `json:"id"`
	PublicURL string  `json:"publicUrl"`
	Alt       *string `json:"alt"`
	timestamps
}

type file struct {
	ID        int64             `json:"id"`
	Key       string            `json:"key"`
	PublicURL string            `json:"publicUrl"`
	Tags      []string          `json:"tags"`
	Metadata  map[string]string `json:"metadata"`
	timestamps

	namespace string
}

type fileUpload struct {
	file
	UploadURL *string `json:"uploadUrl"`
}

type filePayload struct {
	FileName      string  `json:"fileName"`
	ContentType   *string `json:"contentType"`
	ContentLength int64   `json:"contentLength"`
}

type fileInput struct {
	File     *filePayload      `json:"file"`
	Tags     []string          `json:"tags"`
	Metadata map[string]string `json:"metadata"`
}

const maxFileSize = 50_000_000

func (s *Server) storageURL(key string) string {
	return s.URL + "/storage/" + key
}

func (s *Server) putStorage(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	key := strings.TrimPrefix(c.Param("key"), "/")
	s.mu.Lock()
	s.storage[key] = data
	s.mu.Unlock()
	c.Status(http.StatusOK)
}

func (s *Server) getStorage(c *gin.Context) {
	data, ok := s.Stored(strings.TrimPrefix(c.Param("key"), "/"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

// ----------------------------------------------------------------------------
// Images
// ----------------------------------------------------------------------------

func (s *Server) listImages(c *gin.Context) {
	ns := namespace(c)
	s.mu.Lock()
	out := []image{}
	for _, img := range s.images {
		if img.namespace == ns {
			out = append(out, *img)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) createImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		abort(c, http.StatusBadRequest, "FLMIS", `Missing field "image"`)
		return
	}
	f, err := header.Open()
	if err != nil {
		abort(c, http.StatusUnprocessableEntity, "IMGND", "Provided image is not decodable")
		return
	}
	defer f.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil || buf.Len() == 0 {
		abort(c, http.StatusUnprocessableEntity, "IMGND", "Provided image is not decodable")
		return
	}

	var alt *string
	if v, ok := c.GetQuery("alt"); ok {
		alt = &v
	}

	key := "images/" + uuid.NewString()
	lazyKey := key + "-lazy"

	s.mu.Lock()
	defer s.mu.Unlock()
	s.storage[key] = buf.Bytes()
	s.storage[lazyKey] = buf.Bytes()
	img := &image{
		ID:        s.newID(),
		PublicURL: s.storageURL(key),
		Alt:       alt,
		LazyImage: lazyImage{
			ID:         s.newID(),
			PublicURL:  s.storageURL(lazyKey),
			Alt:        alt,
			timestamps: newTimestamps(),
		},
		timestamps: newTimestamps(),
		namespace:  namespace(c),
	}
	s.images[img.ID] = img
	c.JSON(http.StatusOK, *img)
}

func (s *Server) deleteImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.images[id]
	if !ok || img.namespace != namespace(c) {
		notFound(c)
		return
	}
	delete(s.images, id)
	c.JSON(http.StatusOK, *img)
}

// ----------------------------------------------------------------------------
// Files
// ----------------------------------------------------------------------------

func (s *Server) listFiles(c *gin.Context) {
	ns, tag := namespace(c), c.Query("tag")
	s.mu.Lock()
	out := []file{}
	for _, f := range s.files {
		if f.namespace != ns {
			continue
		}
		if tag == "" || containsTag(f.Tags, tag) {
			out = append(out, *f)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (s *Server) createFile(c *gin.Context) {
	var in fileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}
	if in.File == nil {
		abort(c, http.StatusBadRequest, "FLMIS", `Missing field "file"`)
		return
	}
	if in.File.ContentLength > maxFileSize {
		abort(c, http.StatusBadRequest, "FLTBG", fmt.Sprintf("File is too big, max size is %d", maxFileSize))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("files/%s/%s", uuid.NewString(), in.File.FileName)
	f := &file{
		ID:         s.newID(),
		Key:        key,
		PublicURL:  s.storageURL(key),
		Tags:       in.Tags,
		Metadata:   in.Metadata,
		timestamps: newTimestamps(),
		namespace:  namespace(c),
	}
	s.files[f.ID] = f
	uploadURL := s.storageURL(key)
	c.JSON(http.StatusOK, fileUpload{file: *f, UploadURL: &uploadURL})
}

func (s *Server) updateFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in fileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[id]
	if !ok || f.namespace != namespace(c) {
		notFound(c)
		return
	}
	if in.Tags != nil {
		f.Tags = in.Tags
	}
	if in.Metadata != nil {
		f.Metadata = in.Metadata
	}
	f.touch()

	out := fileUpload{file: *f}
	if in.File != nil {
		uploadURL := s.storageURL(f.Key)
		out.UploadURL = &uploadURL
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[id]
	if !ok || f.namespace != namespace(c) {
		notFound(c)
		return
	}
	delete(s.files, id)
	delete(s.storage, f.Key)
	c.JSON(http.StatusOK, gin.H{"id": f.ID})
}
