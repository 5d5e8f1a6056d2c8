package fakelyonkit

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

type post struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Slug        string  `json:"slug"`
	Namespace   string  `json:"namespace"`
	Body        any     `json:"body"`
	timestamps
}

type postInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Slug        string  `json:"slug"`
	Body        any     `json:"body"`
}

type quote struct {
	ID        int64  `json:"id"`
	Namespace string `json:"namespace"`
	Author    string `json:"author"`
	Message   string `json:"message"`
	timestamps
}

type quoteInput struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

type locale struct {
	ID        int64  `json:"id"`
	Namespace string `json:"namespace"`
	Lang      string `json:"lang"`
	Messages  any    `json:"messages"`
	timestamps
}

// ----------------------------------------------------------------------------
// Posts
// ----------------------------------------------------------------------------

func (s *Server) listPosts(c *gin.Context) {
	ns := namespace(c)
	s.mu.Lock()
	out := []post{}
	for _, p := range s.posts {
		if p.Namespace == ns {
			out = append(out, *p)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) getPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || p.Namespace != namespace(c) {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, *p)
}

func (s *Server) getPostBySlug(c *gin.Context) {
	ns, slug := namespace(c), c.Param("slug")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.Namespace == ns && p.Slug == slug {
			c.JSON(http.StatusOK, *p)
			return
		}
	}
	notFound(c)
}

func (s *Server) createPost(c *gin.Context) {
	var in postInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := &post{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Slug:        in.Slug,
		Namespace:   namespace(c),
		Body:        in.Body,
		timestamps:  newTimestamps(),
	}
	s.posts[p.ID] = p
	c.JSON(http.StatusOK, *p)
}

func (s *Server) updatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in postInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || p.Namespace != namespace(c) {
		notFound(c)
		return
	}
	p.Title, p.Description, p.Slug, p.Body = in.Title, in.Description, in.Slug, in.Body
	p.touch()
	c.JSON(http.StatusOK, *p)
}

func (s *Server) deletePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || p.Namespace != namespace(c) {
		notFound(c)
		return
	}
	delete(s.posts, id)
	c.JSON(http.StatusOK, *p)
}

// ----------------------------------------------------------------------------
// Quotes
// ----------------------------------------------------------------------------

func (s *Server) listQuotes(c *gin.Context) {
	ns := namespace(c)
	s.mu.Lock()
	out := []quote{}
	for _, q := range s.quotes {
		if q.Namespace == ns {
			out = append(out, *q)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) getQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[id]
	if !ok || q.Namespace != namespace(c) {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, *q)
}

func (s *Server) createQuote(c *gin.Context) {
	var in quoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	q := &quote{
		ID:         s.newID(),
		Namespace:  namespace(c),
		Author:     in.Author,
		Message:    in.Message,
		timestamps: newTimestamps(),
	}
	s.quotes[q.ID] = q
	c.JSON(http.StatusOK, *q)
}

func (s *Server) updateQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in quoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[id]
	if !ok || q.Namespace != namespace(c) {
		notFound(c)
		return
	}
	q.Author, q.Message = in.Author, in.Message
	q.touch()
	c.JSON(http.StatusOK, *q)
}

func (s *Server) deleteQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[id]
	if !ok || q.Namespace != namespace(c) {
		notFound(c)
		return
	}
	delete(s.quotes, id)
	c.JSON(http.StatusOK, *q)
}

// ----------------------------------------------------------------------------
// Locales
// ----------------------------------------------------------------------------

func (s *Server) getLocales(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]any{}
	for lang, l := range s.locales[namespace(c)] {
		out[lang] = l.Messages
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) updateLocale(c *gin.Context) {
	var messages any
	if err := c.ShouldBindJSON(&messages); err != nil {
		badJSON(c, err)
		return
	}
	ns, lang := namespace(c), c.Param("lang")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locales[ns] == nil {
		s.locales[ns] = make(map[string]*locale)
	}
	l, ok := s.locales[ns][lang]
	if !ok {
		l = &locale{ID: s.newID(), Namespace: ns, Lang: lang, timestamps: newTimestamps()}
		s.locales[ns][lang] = l
	}
	l.Messages = messages
	l.touch()
	c.JSON(http.StatusOK, *l)
}

// ----------------------------------------------------------------------------
// Git JSON files
// ----------------------------------------------------------------------------

func (s *Server) getGitJSONFile(c *gin.Context) {
	ns, path := namespace(c), c.Param("path")

	s.mu.Lock()
	content, ok := s.gitFiles[ns][path]
	s.mu.Unlock()
	if !ok {
		notFound(c)
		return
	}
	c.Data(http.StatusOK, "application/json", content)
}

func (s *Server) updateGitJSONFile(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(raw) {
		abort(c, http.StatusBadRequest, "JSNER", "invalid JSON body")
		return
	}
	s.PutGitJSONFile(namespace(c), c.Param("path"), raw)
	c.Data(http.StatusOK, "application/json", raw)
}
