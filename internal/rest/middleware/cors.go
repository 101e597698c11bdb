package middleware

import (
	"net/http"
	"strings"

	"github.com/finbooks/finbooks/internal/types"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware answers preflight requests and stamps the CORS headers
// every browser client needs.
func CORSMiddleware(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", strings.Join([]string{
		"Authorization",
		"Content-Type",
		types.HeaderRequestID,
	}, ", "))
	c.Writer.Header().Set("Access-Control-Expose-Headers", types.HeaderRequestID)
	c.Writer.Header().Set("Access-Control-Max-Age", "86400")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(http.StatusOK)
		return
	}
	c.Next()
}
