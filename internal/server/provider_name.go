package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-tonight/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, preferring the
// provider's own Name and falling back to the configured value or its type.
func normalizeProviderName(raw string, provider providers.ScheduleProvider) string {
	if named, ok := provider.(interface{ Name() string }); ok {
		if name := named.Name(); name != "" {
			return strings.ToLower(name)
		}
	}
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
