package middleware

import (
	"context"

	"github.com/finbooks/finbooks/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware tags every request with an ID, honouring one the
// caller already sent so IDs survive proxy hops.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	// Echo the ID so callers can correlate responses with logs
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
