package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"autohub-api/internal/core/apperr"
)

// Resp is the wire envelope: success flag, optional payload, optional
// human-readable message. The HTTP status code always matches.
type Resp struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{Success: true, Data: data})
}

func Created(c *gin.Context, data any, msg string) {
	c.JSON(http.StatusCreated, Resp{Success: true, Data: data, Message: msg})
}

func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Resp{Success: true, Message: msg})
}

// Err maps the error through the taxonomy; unclassified failures become a
// generic 500 so driver detail never reaches a client.
func Err(c *gin.Context, err error) {
	status := apperr.Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		var ae *apperr.E
		if errors.As(err, &ae) && ae.Msg != "" {
			msg = ae.Msg
		} else {
			msg = "internal server error"
		}
		_ = c.Error(err) // full cause goes to the access log only
	}
	c.AbortWithStatusJSON(status, Resp{Success: false, Message: msg})
}

func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Resp{Success: false, Message: msg})
}
