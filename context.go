package databus

import "context"

type keyCtx struct{}

// withKey attaches the publishing key to the handler context.
func withKey[K comparable](ctx context.Context, key K) context.Context {
	return context.WithValue(ctx, keyCtx{}, key)
}

// KeyFromContext extracts the key a handler is being invoked for.
// Returns the zero value and false if the context was not created by Publish
// or the key has a different type.
func KeyFromContext[K comparable](ctx context.Context) (K, bool) {
	key, ok := ctx.Value(keyCtx{}).(K)
	return key, ok
}

// keyValue returns the publishing key without knowing its type. Used for logging.
func keyValue(ctx context.Context) any {
	return ctx.Value(keyCtx{})
}
