package idempotency

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// WithKey attaches the caller-supplied idempotency key to the context. The
// saga forwards it to the payment gateway and stamps it on published
// events, so resubmitting the same request cannot double-charge.
func WithKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ctxKey{}, key)
}

// GetKey returns the key from the context, or a fresh one when the caller
// did not supply any.
func GetKey(ctx context.Context) string {
	key, ok := ctx.Value(ctxKey{}).(string)
	if !ok {
		return uuid.NewString()
	}

	return key
}
