package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The wire shapes mirror the public API contract: auth/ownership/not-found
// failures carry {"msg": "..."}, validation failures carry {"errors": [...]},
// unexpected failures are a plain-text 500 with no internal detail.

// FieldError is one entry of a validation failure response.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// Msg writes a {"msg": ...} body with the given status.
func Msg(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"msg": msg})
}

// JSON writes data as-is with the given status.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// ValidationErrors writes a 400 with the per-field messages.
func ValidationErrors(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

// ServerError writes the opaque 500 body. Callers log the real error.
func ServerError(c *gin.Context) {
	c.String(http.StatusInternalServerError, "server error")
}
