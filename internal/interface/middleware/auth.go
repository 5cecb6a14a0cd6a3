package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/pkg/helpers"
	"github.com/devlinkhq/devlink/pkg/response"
)

// CtxUserIDKey is the gin context key carrying the verified caller id.
const CtxUserIDKey = "userID"

// TokenHeader is the request header carrying the signed credential.
const TokenHeader = "x-auth-token"

// Auth reads the x-auth-token header, verifies it, and injects the caller id
// into the gin context. Missing and invalid tokens both answer 401 but with
// distinct messages so clients can tell which happened.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			response.Msg(c, http.StatusUnauthorized, "No token, authorization denied")
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Msg(c, http.StatusUnauthorized, "Token is not valid")
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
