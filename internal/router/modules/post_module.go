package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/internal/container"
	handlers "github.com/devlinkhq/devlink/internal/interface/http"
	"github.com/devlinkhq/devlink/internal/interface/middleware"
	"github.com/devlinkhq/devlink/pkg/helpers"
)

// PostModule wires the post routes; the whole surface is private, including
// the feed.
type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	// Per-user write limiter; reads stay unthrottled.
	writeLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil)
	{
		auth.POST("/posts", writeLimiter, m.Handler.Create)
		auth.GET("/posts", m.Handler.ListAll)
		auth.GET("/posts/:id", m.Handler.GetByID)
		auth.DELETE("/posts/:id", m.Handler.Delete)
		auth.PUT("/posts/like/:id", m.Handler.Like)
		auth.PUT("/posts/unlike/:id", m.Handler.Unlike)
		auth.POST("/posts/comment/:id", writeLimiter, m.Handler.AddComment)
		auth.DELETE("/posts/comment/:id/:comment_id", m.Handler.RemoveComment)
	}
}
