package testutil

import (
	"context"

	"github.com/michaello/backoffice/internal/types"
)

// SetupContext returns a context carrying the identity values requests
// normally get from middleware.
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetUserID(ctx, "user_test")
	ctx = types.SetRequestID(ctx, types.GenerateUUID())
	return ctx
}
