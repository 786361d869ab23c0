package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tabledine/internal/rpc"
	"github.com/mmynk/tabledine/internal/session"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// SessionKey is the context key for the caller's cart session.
const SessionKey contextKey = "session"

// GetSession extracts the cart session from the context.
// The second result is false if the request was not authenticated.
func GetSession(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(SessionKey).(session.Session)
	return s, ok
}

// GetSessionID returns the session ID from the context, or "" if absent.
func GetSessionID(ctx context.Context) string {
	s, _ := GetSession(ctx)
	return s.ID
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s session.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// RequireSession returns an interceptor that validates the Bearer session token
// and stores the session in the request context. StartSession is let through
// since it is how a diner obtains a token.
func RequireSession(manager *session.Manager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().Procedure == rpc.CartServiceStartSessionProcedure {
				return next(ctx, req)
			}

			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, session.ErrMissingToken)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return nil, connect.NewError(connect.CodeUnauthenticated, session.ErrInvalidToken)
			}

			s, err := manager.Validate(parts[1])
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithSession(ctx, s), req)
		}
	}
}
