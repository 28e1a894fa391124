package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/paperpress/internal/auditcontext"
	obscontext "github.com/smallbiznis/paperpress/internal/observability/context"
	"github.com/smallbiznis/paperpress/internal/orgcontext"
)

const orgIDHeader = "X-Org-ID"

// OrgScope resolves the calling organization from the X-Org-ID header and
// attaches it, plus audit metadata, to the request context. Every /api route
// is org-scoped; requests without a valid org are rejected up front.
func (s *Server) OrgScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(orgIDHeader))
		if raw == "" {
			AbortWithError(c, newValidationError("X-Org-ID", "required", "X-Org-ID header is required"))
			return
		}
		orgID, err := snowflake.ParseString(raw)
		if err != nil || orgID == 0 {
			AbortWithError(c, newValidationError("X-Org-ID", "invalid", "X-Org-ID header is not a valid id"))
			return
		}

		ctx := orgcontext.WithOrgID(c.Request.Context(), orgID)
		ctx = obscontext.WithOrgID(ctx, raw)
		ctx = auditcontext.WithIPAddress(ctx, c.ClientIP())
		ctx = auditcontext.WithUserAgent(ctx, c.Request.UserAgent())
		if userID := strings.TrimSpace(c.GetHeader("X-User-ID")); userID != "" {
			ctx = auditcontext.WithActor(ctx, "user", userID)
		}
		c.Set("org_id", raw)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
