package response

import (
	"github.com/gin-gonic/gin"
)

type ApiEnvelope struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
	})
}

// Message writes a success envelope that only carries a confirmation text.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, ApiEnvelope{
		Ok:      true,
		Message: message,
	})
}

// Error mirrors the message at the top level so clients reading only
// {"message": ...} keep working.
func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Ok:      false,
		Message: message,
		Error: map[string]any{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

func AbortError(c *gin.Context, status int, errorCode string, message string) {
	Error(c, status, errorCode, message, nil)
	c.Abort()
}
