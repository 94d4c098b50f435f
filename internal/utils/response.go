package utils

import "github.com/gin-gonic/gin"

// Success writes the JSON envelope used by the status endpoints.
func Success(c *gin.Context, data gin.H) {
	c.JSON(200, gin.H{
		"success": true,
		"data":    data,
	})
}

// Text writes a plain-text reply. Webhook callers receive plain text on every
// path, including errors.
func Text(c *gin.Context, code int, msg string) {
	c.String(code, msg)
}

// AbortText writes a plain-text reply and stops the handler chain.
func AbortText(c *gin.Context, code int, msg string) {
	c.Abort()
	c.String(code, msg)
}
