package respond

import (
	"github.com/gin-gonic/gin"

	"voice-backend/internal/shared/telemetry"
)

// ErrorResponse is the standardized error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Fail sends a standardized error response.
func Fail(c *gin.Context, status int, message string) {
	FailWithDetail(c, status, message, "")
}

// FailWithDetail sends a standardized error response including the raw error
// text. Callers must only pass detail in development-mode configuration.
func FailWithDetail(c *gin.Context, status int, message, detail string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Message: message,
		Error:   detail,
	})
}
