package devbackend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/middleware"
)

// DevUser owns all data when the routes run without a verifier.
const DevUser = "dev-user"

type documentBody struct {
	Title    string           `json:"title"`
	Label    *string          `json:"label"`
	Sections []resume.Section `json:"sections"`
}

// updateBody keeps label raw so that an absent label leaves it unchanged
// while null or "" clears it.
type updateBody struct {
	Title    string           `json:"title"`
	Label    json.RawMessage  `json:"label"`
	Sections []resume.Section `json:"sections"`
}

func (u updateBody) label() (*string, error) {
	if len(u.Label) == 0 {
		return nil, nil
	}
	var s *string
	if err := json.Unmarshal(u.Label, &s); err != nil {
		return nil, err
	}
	if s == nil {
		empty := resume.NoLabel
		return &empty, nil
	}
	return s, nil
}

type labelBody struct {
	Name  string       `json:"name"`
	Color resume.Color `json:"color"`
}

// RegisterRoutes mounts the documents, versions and labels endpoints on r.
func RegisterRoutes(r gin.IRouter, b *Backend, ver middleware.Verifier) {
	g := r.Group("/api")
	if ver != nil {
		g.Use(middleware.AuthMiddleware(ver))
	}

	g.GET("/documents", func(c *gin.Context) {
		c.JSON(http.StatusOK, b.ListDocuments(userOf(c)))
	})

	g.POST("/documents", func(c *gin.Context) {
		var req documentBody
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		if req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "title is required"})
			return
		}
		label := ""
		if req.Label != nil {
			label = *req.Label
		}
		d, err := b.CreateDocument(userOf(c), req.Title, label, req.Sections)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	})

	g.GET("/documents/:id", func(c *gin.Context) {
		d, err := b.GetDocument(userOf(c), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	})

	g.PUT("/documents/:id", func(c *gin.Context) {
		var req updateBody
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		label, err := req.label()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "label must be a string"})
			return
		}
		d, err := b.UpdateDocument(userOf(c), c.Param("id"), req.Title, req.Sections, label)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	})

	g.DELETE("/documents/:id", func(c *gin.Context) {
		if err := b.DeleteDocument(userOf(c), c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	g.GET("/documents/:id/versions", func(c *gin.Context) {
		vs, err := b.ListVersions(userOf(c), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, vs)
	})

	g.POST("/documents/:id/versions/:n/restore", func(c *gin.Context) {
		n, err := strconv.Atoi(c.Param("n"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "version must be a number"})
			return
		}
		d, err := b.RestoreVersion(userOf(c), c.Param("id"), n)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	})

	g.GET("/labels", func(c *gin.Context) {
		c.JSON(http.StatusOK, b.ListLabels(userOf(c)))
	})

	g.POST("/labels", func(c *gin.Context) {
		var req labelBody
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		if req.Name == "" || !req.Color.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "name and a valid color are required"})
			return
		}
		l, err := b.CreateLabel(userOf(c), req.Name, req.Color)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, l)
	})

	g.PUT("/labels/:id", func(c *gin.Context) {
		var req labelBody
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		if req.Color != "" && !req.Color.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid color"})
			return
		}
		l, err := b.UpdateLabel(userOf(c), c.Param("id"), req.Name, req.Color)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, l)
	})

	g.DELETE("/labels/:id", func(c *gin.Context) {
		if err := b.DeleteLabel(userOf(c), c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Label deleted successfully"})
	})
}

func userOf(c *gin.Context) string {
	if id := middleware.UserID(c); id != "" {
		return id
	}
	return DevUser
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, ErrInvalidLabel), errors.Is(err, ErrDuplicateLabel):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
