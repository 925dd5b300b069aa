package session

import "context"

type payloadContextKey struct{}

// WithPayload adds a verified payload to the context
func WithPayload(ctx context.Context, p *Payload) context.Context {
	return context.WithValue(ctx, payloadContextKey{}, p)
}

// FromContext retrieves the verified payload from the context
func FromContext(ctx context.Context) (*Payload, bool) {
	p, ok := ctx.Value(payloadContextKey{}).(*Payload)
	return p, ok && p != nil
}

// MustFromContext retrieves the verified payload from the context or panics
func MustFromContext(ctx context.Context) *Payload {
	p, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return p
}

// UserIDFromContext retrieves the user ID of the verified session in context
func UserIDFromContext(ctx context.Context) (string, bool) {
	p, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return p.UserID, true
}
