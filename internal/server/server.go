// internal/server/server.go
//
// REST API over the design library, for syncing designs in and out of
// the studio from other tools. Started with `patchwork serve`.

package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"patchwork/internal/design"
	"patchwork/internal/logbook"
	"patchwork/internal/store"
)

// maxDocumentBytes caps request bodies. Even a dense 30x30 pattern
// serializes well under this.
const maxDocumentBytes = 1 << 20

// Server exposes the library over HTTP.
type Server struct {
	library *store.Library
	log     *logbook.Logbook
	router  *gin.Engine
}

// entryResponse is the JSON shape for a library entry.
type entryResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      design.DocKind  `json:"kind"`
	Published bool            `json:"published"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Document  design.Document `json:"document"`
}

// New builds a server around the given library. The logbook may be nil.
func New(library *store.Library, log *logbook.Logbook) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		library: library,
		log:     log,
		router:  gin.New(),
	}
	s.router.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/designs", s.handleList)
	s.router.POST("/designs", s.handleSave)
	s.router.GET("/designs/:id", s.handleGet)
	s.router.PUT("/designs/:id", s.handleUpdate)
	s.router.DELETE("/designs/:id", s.handleDelete)
	s.router.POST("/designs/:id/publish", s.handlePublish)
	s.router.POST("/designs/:id/unpublish", s.handleUnpublish)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info("serving design API on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleList(c *gin.Context) {
	filter := store.ListFilter{
		PublishedOnly: c.Query("published") == "true",
	}
	if kind := c.Query("kind"); kind != "" {
		k := design.DocKind(kind)
		if k != design.DocBlock && k != design.DocPattern {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be block or pattern"})
			return
		}
		filter.Kind = k
	}
	entries, err := s.library.List(filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleSave(c *gin.Context) {
	doc, ok := s.decodeBody(c)
	if !ok {
		return
	}
	if err := s.library.Save(doc); err != nil {
		s.fail(c, err)
		return
	}
	s.log.Info("api saved %s %q", doc.Kind, doc.Name())
	entry, err := s.library.Get(doc.ID())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(entry))
}

func (s *Server) handleGet(c *gin.Context) {
	entry, err := s.library.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(entry))
}

func (s *Server) handleUpdate(c *gin.Context) {
	doc, ok := s.decodeBody(c)
	if !ok {
		return
	}
	if doc.ID() != c.Param("id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document id does not match the path"})
		return
	}
	if err := s.library.Save(doc); err != nil {
		s.fail(c, err)
		return
	}
	entry, err := s.library.Get(doc.ID())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(entry))
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")
	if err := s.library.Delete(id); err != nil {
		s.fail(c, err)
		return
	}
	s.log.Info("api deleted design %s", id)
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePublish(c *gin.Context) {
	s.setPublished(c, true)
}

func (s *Server) handleUnpublish(c *gin.Context) {
	s.setPublished(c, false)
}

func (s *Server) setPublished(c *gin.Context, published bool) {
	id := c.Param("id")
	var err error
	if published {
		err = s.library.Publish(id)
	} else {
		err = s.library.Unpublish(id)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	entry, err := s.library.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(entry))
}

// decodeBody reads and validates a document payload, writing the error
// response itself when the payload is unusable.
func (s *Server) decodeBody(c *gin.Context) (design.Document, bool) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDocumentBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return design.Document{}, false
	}
	if len(data) > maxDocumentBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "document too large"})
		return design.Document{}, false
	}
	doc, err := design.DecodeDocument(data)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return design.Document{}, false
	}
	if doc.ID() == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "document has no id"})
		return design.Document{}, false
	}
	return doc, true
}

func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "design not found"})
		return
	}
	s.log.Error("api: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func toResponse(e store.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		Name:      e.Name,
		Kind:      e.Kind,
		Published: e.Published,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		Document:  e.Document,
	}
}
