package pagination

// LimitTable maps endpoint identifiers to their default maximum page size.
// It is constructed once at startup and never mutated, so it is safe for
// concurrent callers.
type LimitTable struct {
	limits       map[string]int
	defaultLimit int
}

// DefaultLimitTable returns the per-endpoint page limits observed to work
// against the upstream API. Daily series are capped at 100 records per
// request; everything else takes the 1000-record default.
func DefaultLimitTable() LimitTable {
	return NewLimitTable(map[string]int{
		"daily-ohlcv":     100,
		"hourly-ohlcv":    1000,
		"trader-grades":   1000,
		"investor-grades": 1000,
		"market-metrics":  1000,
		"trader-indices":  1000,
		"trading-signals": 1000,
	}, 1000)
}

// NewLimitTable builds a limit table from explicit entries plus a default
// for unlisted endpoints. The entries map is copied.
func NewLimitTable(entries map[string]int, defaultLimit int) LimitTable {
	limits := make(map[string]int, len(entries))
	for endpoint, limit := range entries {
		limits[endpoint] = limit
	}
	return LimitTable{
		limits:       limits,
		defaultLimit: defaultLimit,
	}
}

// Limit returns the page limit for an endpoint, falling back to the
// table's default for unlisted endpoints.
func (t LimitTable) Limit(endpoint string) int {
	if limit, ok := t.limits[endpoint]; ok {
		return limit
	}
	return t.defaultLimit
}
