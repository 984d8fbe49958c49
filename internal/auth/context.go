package auth

import "context"

type contextKey struct{}

// Identity is the resolved requesting identity, carried through the request
// context by the auth middleware. Every service call takes its fields as
// explicit arguments; nothing below the handler layer reads the context.
type Identity struct {
	UserID int64
	Name   string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

func UserID(ctx context.Context) int64 {
	id, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return id.UserID
}
