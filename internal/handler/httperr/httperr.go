package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errors.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Result is the body shape of the appointment endpoints.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AbortWithResult records err and writes a {success:false, message} body.
func AbortWithResult(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		err = errors.New(msg)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, Result{Success: false, Message: msg})
}
