package testutil

import (
	"context"

	"github.com/finbooks/finbooks/internal/types"
)

// SetupContext returns a context carrying the default tenant and user,
// the way the auth middleware would populate a real request.
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxTenantID, types.DefaultTenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
