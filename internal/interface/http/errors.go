package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/application"
	"github.com/devlinkhq/devlink/pkg/response"
)

// serviceError maps the application error taxonomy onto the HTTP surface:
// validation and like/unlike misuse → 400, ownership → 403, missing → 404,
// anything unexpected → opaque 500 with the detail logged server-side.
// notFoundMsg lets each endpoint keep its own "not found" wording.
func serviceError(c *gin.Context, logger *logrus.Logger, err error, notFoundMsg string) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationErrors(c, toFieldErrors(verr))
	case errors.Is(err, application.ErrNotFound):
		response.Msg(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, application.ErrForbidden):
		response.Msg(c, http.StatusForbidden, "User not authorized")
	case errors.Is(err, application.ErrAlreadyLiked):
		response.Msg(c, http.StatusBadRequest, "Post already liked")
	case errors.Is(err, application.ErrNotLiked):
		response.Msg(c, http.StatusBadRequest, "Post has not yet been liked")
	case errors.Is(err, application.ErrEmailTaken):
		response.ValidationErrors(c, []response.FieldError{{Param: "email", Msg: "User already exists"}})
	case errors.Is(err, application.ErrInvalidCredentials):
		response.ValidationErrors(c, []response.FieldError{{Param: "password", Msg: "Invalid credentials"}})
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		response.ServerError(c)
	}
}

func toFieldErrors(verr *application.ValidationError) []response.FieldError {
	out := make([]response.FieldError, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		out = append(out, response.FieldError{Param: v.Field, Msg: v.Message})
	}
	return out
}
