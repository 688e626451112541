package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/knst/site-services/internal/content"
	"github.com/knst/site-services/internal/content/provider"
	"github.com/knst/site-services/internal/uploads"
)

// RegisterContentRoutes registers the public read surface: the merged content
// document, the section manifest, and a live watch stream.
func RegisterContentRoutes(r *gin.Engine, prov *provider.Provider) {
	r.GET("/api/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"content": prov.Snapshot(),
			"loading": prov.Loading(),
		})
	})

	r.GET("/api/content/sections", func(c *gin.Context) {
		c.JSON(http.StatusOK, content.Sections())
	})

	// Server-sent events: one snapshot immediately, one after every change.
	// No timeout; the client drops the connection when it navigates away.
	r.GET("/api/content/watch", func(c *gin.Context) {
		ch, cancel := prov.Subscribe()
		defer cancel()

		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.SSEvent("content", prov.Snapshot())
		c.Writer.Flush()

		for {
			select {
			case <-c.Request.Context().Done():
				return
			case <-ch:
				c.SSEvent("content", prov.Snapshot())
				c.Writer.Flush()
			}
		}
	})
}

// SaveRequest is one path-addressed partial update from the admin surface.
type SaveRequest struct {
	Path  string `json:"path" binding:"required"`
	Value any    `json:"value"`
}

// RegisterAdminRoutes registers the edit surface under the (authenticated)
// group: path writes and image uploads. pipeline may be nil when no blob
// store is configured; uploads then report unavailability.
func RegisterAdminRoutes(rg *gin.RouterGroup, prov *provider.Provider, pipeline *uploads.Pipeline) {
	rg.PATCH("/content", func(c *gin.Context) {
		var req SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p, err := parseKnownPath(req.Path)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := content.ValidateValue(p, req.Value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := prov.Save(c.Request.Context(), p, req.Value); err != nil {
			// the optimistic in-memory value is kept; only the store write failed
			c.JSON(http.StatusBadGateway, gin.H{"error": "save failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "path": p.String()})
	})

	rg.POST("/content/images", func(c *gin.Context) {
		if pipeline == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads not configured"})
			return
		}
		p, err := parseKnownPath(c.PostForm("path"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if content.KindOf(p.Leaf()) != content.KindImage {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target field is not an image field"})
			return
		}
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer f.Close()

		url, err := pipeline.UploadImage(c.Request.Context(), p, fh.Filename, fh.Size,
			fh.Header.Get("Content-Type"), f)
		if err != nil {
			if errors.Is(err, uploads.ErrTooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "path": p.String(), "url": url})
	})
}

// parseKnownPath validates shape and rejects paths the schema doesn't know,
// so a typo'd address can never become a silent write nothing reads. Record
// addresses are rejected too: one write there would flatten a whole section.
func parseKnownPath(raw string) (content.Path, error) {
	p, err := content.ParsePath(raw)
	if err != nil {
		return content.Path{}, err
	}
	v, ok := content.Defaults().Lookup(p)
	if !ok {
		return content.Path{}, errors.New("unknown content path: " + raw)
	}
	if content.IsRecord(v) {
		return content.Path{}, errors.New("path addresses a record, not a field: " + raw)
	}
	return p, nil
}
