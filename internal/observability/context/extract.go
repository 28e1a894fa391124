package context

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// OrgIDFromGin resolves the scoping org from the request context, falling
// back to the value the org middleware stashed on the gin context.
func OrgIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if ctx := c.Request.Context(); ctx != nil {
		if value := OrgIDFromContext(ctx); value != "" {
			return value
		}
	}
	if raw, ok := c.Get("org_id"); ok {
		switch value := raw.(type) {
		case string:
			return strings.TrimSpace(value)
		case int64:
			if value != 0 {
				return strconv.FormatInt(value, 10)
			}
		}
	}
	return ""
}
