package service

import (
	"context"

	"github.com/google/uuid"
)

type usageScopeKey struct{}

type usageScope struct {
	userID    uuid.UUID
	projectID uuid.UUID
}

// WithUsageScope tags ctx so that usage events recorded under it are attributed to the
// user and, when not uuid.Nil, the project.
func WithUsageScope(ctx context.Context, userID, projectID uuid.UUID) context.Context {
	return context.WithValue(ctx, usageScopeKey{}, usageScope{userID: userID, projectID: projectID})
}

func usageScopeFrom(ctx context.Context) (usageScope, bool) {
	s, ok := ctx.Value(usageScopeKey{}).(usageScope)
	return s, ok
}
