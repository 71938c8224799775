package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the standard success wrapper returned by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK response wrapped in the success envelope.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, Envelope{Success: true, Data: data})
}
