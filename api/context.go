package api

import (
	"context"

	"github.com/aesthetic-webworks/agency-site-backend/auth"
)

type keyType string

const identityKey keyType = "identity"

// ctxWithIdentity adds the authenticated identity to the context
func ctxWithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// identityFromCtx retrieves the authenticated identity set by the auth middleware
func identityFromCtx(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
