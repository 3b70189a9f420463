package utils

import (
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondError writes {message, error?}. The error detail is dropped for 5xx
// responses so storage internals never reach the client.
func RespondError(c *gin.Context, code int, message string, err error) {
	resp := ErrorResponse{Message: message}
	if err != nil && code < 500 {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(code, resp)
}

// RespondMessage writes {message} merged with extra top-level fields.
func RespondMessage(c *gin.Context, code int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(code, body)
}
