package metrics

import (
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// Config identifies the service in emitted metrics.
type Config struct {
	ServiceName string
	Environment string
}

var allowedAttributeKeys = map[string]struct{}{
	"endpoint":    {},
	"status_code": {},
	"result":      {},
	"view_mode":   {},
}

// FilterAttributes keeps only low-cardinality attributes on the allow list.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		key := strings.ToLower(strings.TrimSpace(string(attr.Key)))
		if _, ok := allowedAttributeKeys[key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
