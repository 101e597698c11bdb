package middleware

import (
	"context"

	"github.com/finbooks/finbooks/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// PyroscopeMiddleware tags request processing with the route so profiles
// can be sliced per endpoint. A no-op when profiling is disabled.
func PyroscopeMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Pyroscope.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		labels := []string{
			"method", c.Request.Method,
			"endpoint", c.FullPath(),
		}
		for _, param := range c.Params {
			labels = append(labels, "param_"+param.Key, param.Value)
		}

		pyroscope.TagWrapper(context.Background(), pyroscope.Labels(labels...), func(ctx context.Context) {
			c.Next()
		})
	}
}
