// Package fakelyonkit is an in-memory implementation of the Lyonkit REST
// API for tests. It follows the behavior of the real service: resources are
// partitioned by the namespace of the API key, read-only keys cannot write,
// blok priorities are assigned and shifted like the database trigger does,
// and deleted records answer 404.
package fakelyonkit

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxNamespace = "namespace"
	ctxReadOnly  = "readOnly"
)

type apiKey struct {
	namespace string
	readOnly  bool
}

// Server is a running fake Lyonkit service. URL is the endpoint to give to
// the SDK (requests go to URL + "/api").
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   int64
	keys     map[string]apiKey
	images   map[int64]*image
	pages    map[int64]*page
	bloks    map[int64]*blok
	posts    map[int64]*post
	quotes   map[int64]*quote
	locales  map[string]map[string]*locale
	gitFiles map[string]map[string][]byte
	files    map[int64]*file
	storage  map[string][]byte

	requests []Request
}

// Request is a request received by the fake server.
type Request struct {
	Method string
	Path   string
	APIKey string
}

// New starts a fake server. Close it when done.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		keys:     make(map[string]apiKey),
		images:   make(map[int64]*image),
		pages:    make(map[int64]*page),
		bloks:    make(map[int64]*blok),
		posts:    make(map[int64]*post),
		quotes:   make(map[int64]*quote),
		locales:  make(map[string]map[string]*locale),
		gitFiles: make(map[string]map[string][]byte),
		files:    make(map[int64]*file),
		storage:  make(map[string][]byte),
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

// AddAPIKey registers a new API key for namespace and returns it.
func (s *Server) AddAPIKey(namespace string, readOnly bool) string {
	key := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = apiKey{namespace: namespace, readOnly: readOnly}
	return key
}

// PutGitJSONFile seeds a git-backed JSON document.
func (s *Server) PutGitJSONFile(namespace, path string, content []byte) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gitFiles[namespace] == nil {
		s.gitFiles[namespace] = make(map[string][]byte)
	}
	s.gitFiles[namespace][path] = content
}

// Stored returns the content uploaded to the storage key, if any.
func (s *Server) Stored(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.storage[key]
	return data, ok
}

// Requests returns the API requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.PUT("/storage/*key", s.putStorage)
	r.GET("/storage/*key", s.getStorage)

	api := r.Group("/api")
	api.Use(s.record, s.authenticate)
	write := s.requireWrite

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello LyonKit API !"})
	})

	api.GET("/image", s.listImages)
	api.POST("/image", write, s.createImage)
	api.DELETE("/image/:id", write, s.deleteImage)

	api.GET("/page", s.listPages)
	api.GET("/page/wb/*path", s.getPageWithBloks)
	api.POST("/page", write, s.createPage)
	api.PUT("/page/:id", write, s.updatePage)
	api.DELETE("/page/:id", write, s.deletePage)

	api.GET("/blok/:id", s.getBlok)
	api.POST("/blok", write, s.createBlok)
	api.PUT("/blok/:id", write, s.updateBlok)
	api.PATCH("/blok/:id", write, s.patchBlok)
	api.DELETE("/blok/:id", write, s.deleteBlok)

	api.GET("/post", s.listPosts)
	api.GET("/post/:id", s.getPost)
	api.GET("/post/s/:slug", s.getPostBySlug)
	api.POST("/post", write, s.createPost)
	api.PUT("/post/:id", write, s.updatePost)
	api.DELETE("/post/:id", write, s.deletePost)

	api.GET("/quote", s.listQuotes)
	api.GET("/quote/:id", s.getQuote)
	api.POST("/quote", write, s.createQuote)
	api.PUT("/quote/:id", write, s.updateQuote)
	api.DELETE("/quote/:id", write, s.deleteQuote)

	api.GET("/locale", s.getLocales)
	api.PUT("/locale/:lang", write, s.updateLocale)

	api.GET("/git/json-file/*path", write, s.getGitJSONFile)
	api.PUT("/git/json-file/*path", write, s.updateGitJSONFile)

	api.GET("/file", s.listFiles)
	api.POST("/file", write, s.createFile)
	api.PUT("/file/:id", write, s.updateFile)
	api.DELETE("/file/:id", write, s.deleteFile)

	return r
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		APIKey: c.GetHeader("x-api-key"),
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) authenticate(c *gin.Context) {
	header := c.GetHeader("x-api-key")
	if header == "" {
		abort(c, http.StatusForbidden, "AKNPV", "ApiKeyError: API key was not provided")
		return
	}
	if _, err := uuid.Parse(header); err != nil {
		abort(c, http.StatusForbidden, "AKINV", "ApiKeyError: Invalid API key")
		return
	}

	s.mu.Lock()
	key, ok := s.keys[header]
	s.mu.Unlock()
	if !ok {
		abort(c, http.StatusForbidden, "AKINV", "ApiKeyError: Invalid API key")
		return
	}

	c.Set(ctxNamespace, key.namespace)
	c.Set(ctxReadOnly, key.readOnly)
	c.Next()
}

func (s *Server) requireWrite(c *gin.Context) {
	if c.GetBool(ctxReadOnly) {
		abort(c, http.StatusUnauthorized, "AKIRO", "ApiKeyError: This API key is readonly")
		return
	}
	c.Next()
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"code": code, "message": message})
}

func notFound(c *gin.Context) {
	abort(c, http.StatusNotFound, "NTFND", "Not found")
}

func badJSON(c *gin.Context, err error) {
	abort(c, http.StatusBadRequest, "JSNER", err.Error())
}

func namespace(c *gin.Context) string {
	return c.GetString(ctxNamespace)
}

// pathID parses the :id parameter. Non-numeric ids do not match a route
// on the real service, so they answer 404.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return 0, false
	}
	return id, true
}

// newID must be called with s.mu held.
func (s *Server) newID() int64 {
	s.nextID++
	return s.nextID
}

type timestamps struct {
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func newTimestamps() timestamps {
	t := now()
	return timestamps{CreatedAt: t, UpdatedAt: t}
}

func (t *timestamps) touch() {
	t.UpdatedAt = now()
}
