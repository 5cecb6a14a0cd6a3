package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/application"
	"github.com/devlinkhq/devlink/internal/domain/entity"
	"github.com/devlinkhq/devlink/internal/interface/middleware"
	"github.com/devlinkhq/devlink/pkg/response"
	"github.com/devlinkhq/devlink/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type postRequest struct {
	Text string `json:"text"`
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, validation.ToFieldErrors(err))
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), uid, req.Text)
	if err != nil {
		serviceError(c, h.Logger, err, "User not found")
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// ListAll GET /api/posts
func (h *PostHandler) ListAll(c *gin.Context) {
	posts, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		serviceError(c, h.Logger, err, "Post not found")
		return
	}
	if posts == nil {
		posts = []*entity.Post{}
	}
	response.JSON(c, http.StatusOK, posts)
}

// GetByID GET /api/posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	p, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, h.Logger, err, "Post not found")
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Delete DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeleteByID(c.Request.Context(), uid, c.Param("id")); err != nil {
		serviceError(c, h.Logger, err, "Post not found")
		return
	}
	response.Msg(c, http.StatusOK, "Post removed")
}

// Like PUT /api/posts/like/:id
func (h *PostHandler) Like(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Like(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		serviceError(c, h.Logger, err, "Post not found")
		return
	}
	response.JSON(c, http.StatusOK, p.Likes)
}

// Unlike PUT /api/posts/unlike/:id
func (h *PostHandler) Unlike(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Unlike(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		serviceError(c, h.Logger, err, "Post not found")
		return
	}
	response.JSON(c, http.StatusOK, p.Likes)
}

// AddComment POST /api/posts/comment/:id
func (h *PostHandler) AddComment(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, validation.ToFieldErrors(err))
		return
	}

	p, err := h.Svc.AddComment(c.Request.Context(), uid, c.Param("id"), req.Text)
	if err != nil {
		serviceError(c, h.Logger, err, "Post not found")
		return
	}
	response.JSON(c, http.StatusOK, p.Comments)
}

// RemoveComment DELETE /api/posts/comment/:id/:comment_id
func (h *PostHandler) RemoveComment(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.RemoveComment(c.Request.Context(), uid, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		serviceError(c, h.Logger, err, "Comment does not exist")
		return
	}
	response.JSON(c, http.StatusOK, p.Comments)
}
