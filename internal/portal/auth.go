package portal

import "context"

type ctxKey string

const authTokenKey ctxKey = "authToken"

// WithAuthToken attaches the caller's Authorization header value to ctx.
// The client forwards it unchanged on every backend call.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

// AuthTokenFromContext returns the Authorization value carried by ctx
func AuthTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(authTokenKey).(string)
	return token
}
