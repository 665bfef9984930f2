package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends the auction API's success envelope. Every endpoint
// wraps its payload the same way so clients can rely on the shape.
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends the auction API's error envelope. The message carries the
// mapped rejection reason; the error field keeps the wrapped detail.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}
