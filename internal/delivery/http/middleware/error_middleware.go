package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-cvbuilder-backend/internal/delivery/http/response"
	"go-cvbuilder-backend/pkg/apperror"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, response.ErrorBody{
					Code:   string(appErr.Kind),
					Fields: appErr.Fields,
				})
				return
			}
			// Never expose internal error details to clients. Log the
			// actual error server-side and send a generic message.
			slog.Error("unhandled error", "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
