// Package pagination implements the request orchestration layer for the
// Token Metrics API: date-range chunking plus sequential multi-request
// aggregation.
//
// The upstream page query parameter does not behave as its documentation
// implies for large windows, so pagination is reimplemented entirely via
// date chunking: long ranges are split into windows of at most 29 days,
// each window is fetched once with a high endpoint-specific limit, and the
// per-window payloads are merged into one logical response.
//
// Example usage:
//
//	agg := pagination.NewAggregator(tmClient, pagination.DefaultLimitTable())
//	result, err := agg.Fetch(ctx, http.MethodGet, "daily-ohlcv", client.Params{
//		"symbol":    "BTC",
//		"startDate": "2023-01-01",
//		"endDate":   "2023-03-15",
//	})
//
// The aggregator:
//   - Resolves the effective page limit from the endpoint limit table
//   - Splits the date range into shared-boundary windows
//   - Issues one request per window, strictly in order
//   - Merges record arrays and top-level metadata (last write wins)
//   - Fails fast on the first transport or HTTP error
package pagination
