package middleware

import (
	"log/slog"
	"net/http"

	"doctor-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the response for handlers that recorded an error with
// c.Error but wrote no body. The newest public error wins. A handler that
// neither wrote nor set a status is a bug and answers 500.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if resp, ok := lastPublicResponse(c.Errors); ok {
			c.JSON(resp.Status, resp)
			return
		}
		if c.Writer.Status() != http.StatusOK {
			c.Writer.WriteHeaderNow()
			return
		}

		logger.Error("handler finished without a response",
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"errors", c.Errors.String())
		abortInternal(c)
	}
}

// Recovery turns a panic anywhere below it into a 500. It must be the
// outermost middleware.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("recovered from panic",
					"panic", r,
					"request_id", GetRequestID(c),
					"method", c.Request.Method,
					"path", c.Request.URL.Path)
				if c.Writer.Written() {
					c.Abort()
					return
				}
				abortInternal(c)
			}
		}()
		c.Next()
	}
}

func lastPublicResponse(errs []*gin.Error) (httperr.Response, bool) {
	for i := len(errs) - 1; i >= 0; i-- {
		if !errs[i].IsType(gin.ErrorTypePublic) {
			continue
		}
		if resp, ok := errs[i].Meta.(httperr.Response); ok {
			return resp, true
		}
	}
	return httperr.Response{}, false
}

func abortInternal(c *gin.Context) {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Message = "Internal server error"
	c.AbortWithStatusJSON(resp.Status, resp)
}
