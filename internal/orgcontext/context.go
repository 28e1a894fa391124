package orgcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type contextKey string

const orgIDKey contextKey = "org_id"

// WithOrgID attaches the scoping organization to the context.
func WithOrgID(ctx context.Context, orgID snowflake.ID) context.Context {
	if orgID == 0 {
		return ctx
	}
	return context.WithValue(ctx, orgIDKey, orgID)
}

// OrgIDFromContext returns the scoping organization, zero when absent.
func OrgIDFromContext(ctx context.Context) snowflake.ID {
	if ctx == nil {
		return 0
	}
	value, _ := ctx.Value(orgIDKey).(snowflake.ID)
	return value
}
