package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key identifies a cached upstream response.
type Key struct {
	// Endpoint is the upstream endpoint path (e.g. "daily-ohlcv").
	Endpoint string

	// Query holds the query parameters of the request.
	Query url.Values
}

// String generates a deterministic cache key string.
// Format: tm:endpoint:param1=val1:param2=val2
//
// Example:
//
//	tm:daily-ohlcv:endDate=2023-06-30:startDate=2023-06-01:symbol=BTC
func (k Key) String() string {
	parts := []string{"tm"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Sort query params for determinism.
	if len(k.Query) > 0 {
		names := make([]string, 0, len(k.Query))
		for name := range k.Query {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%s", name, k.Query.Get(name)))
		}
	}

	return strings.Join(parts, ":")
}
