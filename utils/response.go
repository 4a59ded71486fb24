package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
    c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONWarning is a success response carrying a non-fatal warning, e.g. when
// an order persisted but its receipt could not be written.
func JSONWarning(c *gin.Context, code int, data interface{}, warning string) {
    c.JSON(code, gin.H{"success": true, "data": data, "warning": warning})
}

func JSONError(c *gin.Context, code int, message string) {
    c.JSON(code, gin.H{"success": false, "error": message})
}
