package response

import "github.com/gin-gonic/gin"

// OK renders the flat {"success":true, ...payload} envelope every API
// endpoint uses. Keys in payload land at the top level of the object.
func OK(c *gin.Context, statusCode int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// AbortError is Error for middleware, stopping the handler chain.
func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
