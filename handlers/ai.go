package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/ai"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/middleware"
)

// AIHandler serves the /api/ai endpoints.
type AIHandler struct {
	svc *ai.Service
}

func NewAIHandler(svc *ai.Service) *AIHandler {
	return &AIHandler{svc: svc}
}

// RegisterAIRoutes mounts the AI endpoints. With a nil verifier the
// analysis routes are open; extra runs before each analysis handler.
func RegisterAIRoutes(r gin.IRouter, svc *ai.Service, ver middleware.Verifier, extra ...gin.HandlerFunc) {
	h := NewAIHandler(svc)
	g := r.Group("/api/ai")
	g.GET("/status", middleware.OptionalAuth(ver), h.Status)

	var chain []gin.HandlerFunc
	if ver != nil {
		chain = append(chain, middleware.AuthMiddleware(ver))
	}
	chain = append(chain, extra...)
	with := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc(nil), chain...), fn)
	}
	g.POST("/chat", with(h.Chat)...)
	g.POST("/section", with(h.Section)...)
	g.POST("/ats", with(h.ATS)...)
}

// Status reports whether a model is configured.
func (h *AIHandler) Status(c *gin.Context) {
	if h.svc == nil {
		c.JSON(http.StatusOK, ai.Status{Model: "None"})
		return
	}
	c.JSON(http.StatusOK, h.svc.Status(c.Request.Context(), middleware.UserID(c)))
}

func (h *AIHandler) unavailable(c *gin.Context) bool {
	if h.svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service unavailable"})
		return true
	}
	return false
}

func (h *AIHandler) respond(c *gin.Context, reply ai.Reply, err error) {
	switch {
	case errors.Is(err, ai.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, reply)
	}
}

// Chat accepts { message, resume_data } and returns { message, edits }.
func (h *AIHandler) Chat(c *gin.Context) {
	if h.unavailable(c) {
		return
	}
	var req ai.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := h.svc.Chat(c.Request.Context(), middleware.UserID(c), req)
	h.respond(c, reply, err)
}

// Section accepts { section_content, user_question, resume_data }.
func (h *AIHandler) Section(c *gin.Context) {
	if h.unavailable(c) {
		return
	}
	var req ai.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := h.svc.Section(c.Request.Context(), middleware.UserID(c), req)
	h.respond(c, reply, err)
}

// ATS accepts { resume_data, job_description }.
func (h *AIHandler) ATS(c *gin.Context) {
	if h.unavailable(c) {
		return
	}
	var req ai.ATSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := h.svc.ATS(c.Request.Context(), middleware.UserID(c), req)
	h.respond(c, reply, err)
}
