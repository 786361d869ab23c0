package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC with its
// procedure, cart session and duration. Install it after RequireSession so the
// session is visible.
//
// Failures are logged by severity: caller mistakes (bad input, missing items,
// expired tokens) at Warn, everything else at Error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if s, ok := GetSession(ctx); ok {
				attrs = append(attrs,
					slog.String("session_id", s.ID),
					slog.String("restaurant", s.Restaurant),
					slog.String("table", s.Table),
				)
			}

			if err == nil {
				slog.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, slog.String("code", code.String()))
			if connectErr, ok := asConnectError(err); ok {
				attrs = append(attrs, slog.String("error", connectErr.Message()))
			} else {
				attrs = append(attrs, slog.Any("error", err))
			}
			slog.LogAttrs(ctx, levelFor(code), "RPC error", attrs...)
			return resp, err
		}
	}
}

func levelFor(code connect.Code) slog.Level {
	switch code {
	case connect.CodeInvalidArgument,
		connect.CodeNotFound,
		connect.CodeFailedPrecondition,
		connect.CodeUnauthenticated,
		connect.CodePermissionDenied,
		connect.CodeCanceled:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func asConnectError(err error) (*connect.Error, bool) {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr, true
	}
	return nil, false
}
