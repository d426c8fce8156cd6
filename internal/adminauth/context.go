package adminauth

import (
	"context"

	"github.com/fmhgames/reward-service/internal/domain"
)

type contextKey string

const userContextKey contextKey = "admin_user"

// WithUser attaches an authenticated admin identity to the context
func WithUser(ctx context.Context, user domain.AdminUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the authenticated admin identity placed by
// the auth middleware
func UserFromContext(ctx context.Context) (domain.AdminUser, bool) {
	user, ok := ctx.Value(userContextKey).(domain.AdminUser)
	return user, ok
}
