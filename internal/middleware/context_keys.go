package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/inkpad-app/inkpad-backend/internal/core/domain"
)

// contextKey is a private key type to avoid collisions in context values.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userCtxKey   = contextKey("user")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It falls back to slog.Default when none is present, so service code can call
// it unconditionally.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetUserFromContext retrieves the authenticated user set by the auth
// middleware. The second return reports whether a user is present.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	user, ok := c.Request.Context().Value(userCtxKey).(*domain.User)
	return user, ok && user != nil
}

// WithUser stores the authenticated user and an enriched logger in the request
// context. Exposed for handler tests that bypass the auth middleware.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	ctx = context.WithValue(ctx, userCtxKey, user)
	enriched := GetLoggerFromCtx(ctx).With(slog.String("user_id", user.UserID))
	return context.WithValue(ctx, loggerCtxKey, enriched)
}
