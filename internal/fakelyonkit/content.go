package fakelyonkit

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

type page struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Namespace   string  `json:"namespace"`
	Path        string  `json:"path"`
	timestamps
}

type pageWithBloks struct {
	page
	Bloks []blok `json:"bloks"`
}

type pageInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Path        string  `json:"path"`
}

type blok struct {
	ID          int64          `json:"id"`
	PageID      int64          `json:"pageId"`
	ComponentID string         `json:"componentId"`
	Props       map[string]any `json:"props"`
	Priority    int64          `json:"priority"`
	timestamps

	namespace string
}

type blokInput struct {
	PageID      int64          `json:"pageId"`
	ComponentID string         `json:"componentId"`
	Props       map[string]any `json:"props"`
	Priority    *int64         `json:"priority"`
}

// ----------------------------------------------------------------------------
// Pages
// ----------------------------------------------------------------------------

func (s *Server) listPages(c *gin.Context) {
	ns := namespace(c)
	s.mu.Lock()
	out := []page{}
	for _, p := range s.pages {
		if p.Namespace == ns {
			out = append(out, *p)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) getPageWithBloks(c *gin.Context) {
	ns := namespace(c)
	path := c.Param("path")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pages {
		if p.Namespace == ns && p.Path == path {
			c.JSON(http.StatusOK, pageWithBloks{page: *p, Bloks: s.pageBloks(p.ID)})
			return
		}
	}
	notFound(c)
}

func (s *Server) createPage(c *gin.Context) {
	var in pageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	p := &page{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Namespace:   namespace(c),
		Path:        in.Path,
		timestamps:  newTimestamps(),
	}
	s.pages[p.ID] = p
	out := *p
	s.mu.Unlock()

	c.JSON(http.StatusOK, out)
}

func (s *Server) updatePage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in pageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[id]
	if !ok || p.Namespace != namespace(c) {
		notFound(c)
		return
	}
	p.Title, p.Description, p.Path = in.Title, in.Description, in.Path
	p.touch()
	c.JSON(http.StatusOK, *p)
}

func (s *Server) deletePage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[id]
	if !ok || p.Namespace != namespace(c) {
		notFound(c)
		return
	}
	delete(s.pages, id)
	for bid, b := range s.bloks {
		if b.PageID == id {
			delete(s.bloks, bid)
		}
	}
	c.JSON(http.StatusOK, *p)
}

// ----------------------------------------------------------------------------
// Bloks
// ----------------------------------------------------------------------------

// pageBloks returns the bloks of a page by ascending priority then id.
// Must be called with s.mu held.
func (s *Server) pageBloks(pageID int64) []blok {
	out := []blok{}
	for _, b := range s.bloks {
		if b.PageID == pageID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// placeBlok assigns a priority to b on pageID: the end of the page when
// priority is nil, otherwise priority, shifting the bloks at or after it.
// Must be called with s.mu held.
func (s *Server) placeBlok(b *blok, priority *int64) {
	if priority == nil {
		var last int64 = -1
		for _, other := range s.bloks {
			if other.PageID == b.PageID && other.ID != b.ID && other.Priority > last {
				last = other.Priority
			}
		}
		b.Priority = last + 1
		return
	}

	b.Priority = *priority
	collides := false
	for _, other := range s.bloks {
		if other.PageID == b.PageID && other.ID != b.ID && other.Priority == b.Priority {
			collides = true
			break
		}
	}
	if !collides {
		return
	}
	for _, other := range s.bloks {
		if other.PageID == b.PageID && other.ID != b.ID && other.Priority >= b.Priority {
			other.Priority++
		}
	}
}

// pageInNamespace must be called with s.mu held.
func (s *Server) pageInNamespace(pageID int64, ns string) bool {
	p, ok := s.pages[pageID]
	return ok && p.Namespace == ns
}

func (s *Server) getBlok(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bloks[id]
	if !ok || b.namespace != namespace(c) {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, *b)
}

func (s *Server) createBlok(c *gin.Context) {
	var in blokInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}
	ns := namespace(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pageInNamespace(in.PageID, ns) {
		abort(c, http.StatusBadRequest, "REFNF", `Reference to "pageId" not found`)
		return
	}
	b := &blok{
		ID:          s.newID(),
		PageID:      in.PageID,
		ComponentID: in.ComponentID,
		Props:       in.Props,
		timestamps:  newTimestamps(),
		namespace:   ns,
	}
	s.placeBlok(b, in.Priority)
	s.bloks[b.ID] = b
	c.JSON(http.StatusOK, *b)
}

func (s *Server) updateBlok(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in blokInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}
	ns := namespace(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bloks[id]
	if !ok || b.namespace != ns {
		notFound(c)
		return
	}
	if !s.pageInNamespace(in.PageID, ns) {
		abort(c, http.StatusBadRequest, "REFNF", `Reference to "pageId" not found`)
		return
	}
	b.PageID, b.ComponentID, b.Props = in.PageID, in.ComponentID, in.Props
	if in.Priority != nil && *in.Priority != b.Priority {
		s.placeBlok(b, in.Priority)
	}
	b.touch()
	c.JSON(http.StatusOK, *b)
}

func (s *Server) patchBlok(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var fields map[string]json.RawMessage
	if err := c.ShouldBindJSON(&fields); err != nil {
		badJSON(c, err)
		return
	}
	if len(fields) == 0 {
		abort(c, http.StatusBadRequest, "PTHOF", "Patch should have at least one field")
		return
	}
	ns := namespace(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bloks[id]
	if !ok || b.namespace != ns {
		notFound(c)
		return
	}

	patched := *b
	var priority *int64
	for name, raw := range fields {
		var err error
		switch name {
		case "pageId":
			err = json.Unmarshal(raw, &patched.PageID)
		case "componentId":
			err = json.Unmarshal(raw, &patched.ComponentID)
		case "props":
			patched.Props = nil
			err = json.Unmarshal(raw, &patched.Props)
		case "priority":
			err = json.Unmarshal(raw, &priority)
		}
		if err != nil {
			badJSON(c, err)
			return
		}
	}
	if patched.PageID != b.PageID && !s.pageInNamespace(patched.PageID, ns) {
		abort(c, http.StatusBadRequest, "REFNF", `Reference to "pageId" not found`)
		return
	}

	*b = patched
	if priority != nil && *priority != b.Priority {
		s.placeBlok(b, priority)
	}
	b.touch()
	c.JSON(http.StatusOK, *b)
}

func (s *Server) deleteBlok(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bloks[id]
	if !ok || b.namespace != namespace(c) {
		notFound(c)
		return
	}
	delete(s.bloks, id)
	c.JSON(http.StatusOK, *b)
}
