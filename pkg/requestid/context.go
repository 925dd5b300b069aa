package requestid

import "context"

type contextKey struct{}

// WithContext returns a copy of ctx carrying id. Outgoing identity API calls
// made with the returned context forward it in the Header.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
