package service

import (
	"context"

	"raceplanner/internal/models"
)

type contextKeyUserType struct{}
type contextKeyClaimsType struct{}

var (
	contextKeyUser   = &contextKeyUserType{}
	contextKeyClaims = &contextKeyClaimsType{}
)

// WithUser returns a context carrying the authenticated user and the token claims it was resolved from.
func WithUser(ctx context.Context, user *models.User, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, contextKeyUser, user)
	return context.WithValue(ctx, contextKeyClaims, claims)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(contextKeyUser).(*models.User)
	return user, ok && user != nil
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKeyClaims).(*Claims)
	return claims, ok && claims != nil
}
