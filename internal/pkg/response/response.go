// internal/pkg/response/response.go
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Data     interface{}       `json:"data,omitempty"`
	Error    string            `json:"error,omitempty"`
	Conflict string            `json:"conflict,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error, data ...interface{}) {
	// Abort before writing so later handlers don't append to the body
	c.Abort()

	response := Response{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	if len(data) > 0 {
		response.Data = data[0]
	}

	c.JSON(code, response)
}

// Conflict sends a 409 naming the unique field(s) that collided.
func Conflict(c *gin.Context, message, reason string) {
	c.Abort()
	c.JSON(http.StatusConflict, Response{
		Success:  false,
		Message:  message,
		Conflict: reason,
	})
}

// Unprocessable sends a 422 with one message per failing field.
func Unprocessable(c *gin.Context, message string, fields map[string]string) {
	c.Abort()
	c.JSON(http.StatusUnprocessableEntity, Response{
		Success: false,
		Message: message,
		Fields:  fields,
	})
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// TooManyRequests sends a 429.
func TooManyRequests(c *gin.Context, message string, err error) {
	Error(c, http.StatusTooManyRequests, message, err)
}
