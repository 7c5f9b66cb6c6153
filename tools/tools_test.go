package tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/client"
	"github.com/cryptodata-labs/tokenmetrics-go/pkg/pagination"
)

// stubFetcher returns a canned result and records the last request.
type stubFetcher struct {
	result       pagination.Result
	err          error
	lastEndpoint string
	lastMethod   string
	lastParams   client.Params
	calls        int
}

func (s *stubFetcher) Fetch(ctx context.Context, method, endpoint string, params client.Params, opts ...pagination.FetchOption) (pagination.Result, error) {
	s.calls++
	s.lastMethod = method
	s.lastEndpoint = endpoint
	s.lastParams = params.Clone()
	return s.result, s.err
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "expected text content")
	return tc.Text
}

func findTool(t *testing.T, defs []Definition, name string) Definition {
	t.Helper()
	for _, def := range defs {
		if def.Tool.Name == name {
			return def
		}
	}
	t.Fatalf("tool %q not registered", name)
	return Definition{}
}

func TestAllRegistersEveryEndpointTool(t *testing.T) {
	defs := All(&stubFetcher{})

	assert.Len(t, defs, 19)

	seen := map[string]bool{}
	for _, def := range defs {
		assert.NotEmpty(t, def.Tool.Name)
		assert.NotEmpty(t, def.Tool.Description)
		assert.NotNil(t, def.Handler)
		assert.False(t, seen[def.Tool.Name], "duplicate tool name %s", def.Tool.Name)
		seen[def.Tool.Name] = true
	}
}

func TestDailyOHLCVFormatsRecords(t *testing.T) {
	fetcher := &stubFetcher{result: pagination.Result{
		Kind: pagination.KindDocument,
		Records: []any{map[string]any{
			"TOKEN_ID":     float64(3375),
			"TOKEN_NAME":   "Bitcoin",
			"TOKEN_SYMBOL": "BTC",
			"DATE":         "2023-06-01",
			"OPEN":         float64(27000.5),
			"HIGH":         float64(27500),
			"LOW":          float64(26800),
			"CLOSE":        float64(27300),
			"VOLUME":       float64(1234567),
		}},
	}}

	def := findTool(t, All(fetcher), "get_tokens_daily_ohlcv")
	res, err := def.Handler(context.Background(), callRequest(def.Tool.Name, map[string]any{
		"symbol":    "BTC",
		"startDate": "2023-06-01",
		"endDate":   "2023-06-07",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := textOf(t, res)
	assert.Contains(t, text, "Token: Bitcoin (BTC)")
	assert.Contains(t, text, "Date: 2023-06-01")
	assert.Contains(t, text, "Open: $27000.5")
	assert.Contains(t, text, "Close: $27300")

	assert.Equal(t, "daily-ohlcv", fetcher.lastEndpoint)
	assert.Equal(t, "GET", fetcher.lastMethod)
	assert.Equal(t, "BTC", fetcher.lastParams["symbol"])
	assert.Equal(t, "2023-06-01", fetcher.lastParams["startDate"])
	assert.Equal(t, "2023-06-07", fetcher.lastParams["endDate"])
}

func TestDailyOHLCVRejectsMalformedDate(t *testing.T) {
	fetcher := &stubFetcher{}
	def := findTool(t, All(fetcher), "get_tokens_daily_ohlcv")

	res, err := def.Handler(context.Background(), callRequest(def.Tool.Name, map[string]any{
		"startDate": "06/01/2023",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "startDate must be in YYYY-MM-DD format")
	assert.Zero(t, fetcher.calls, "no request should be issued for malformed dates")
}

func TestToolRendersFetchErrorAsDiagnostic(t *testing.T) {
	fetcher := &stubFetcher{err: &client.APIError{StatusCode: 401, Body: `{"message":"invalid key"}`}}
	def := findTool(t, All(fetcher), "get_tokens_price")

	res, err := def.Handler(context.Background(), callRequest(def.Tool.Name, map[string]any{
		"token_id": "3375",
	}))
	require.NoError(t, err, "fetch failures must not propagate to the transport")
	assert.True(t, res.IsError)

	text := textOf(t, res)
	assert.Contains(t, text, "API error")
	assert.Contains(t, text, "401")
}

func TestToolAbsentParamsNotForwarded(t *testing.T) {
	fetcher := &stubFetcher{result: pagination.Result{Kind: pagination.KindDocument}}
	def := findTool(t, All(fetcher), "get_tokens_trader_grades")

	_, err := def.Handler(context.Background(), callRequest(def.Tool.Name, map[string]any{
		"symbol": "BTC",
	}))
	require.NoError(t, err)

	assert.Equal(t, client.Params{"symbol": "BTC"}, fetcher.lastParams)
}

func TestToolEmptyResultMessage(t *testing.T) {
	fetcher := &stubFetcher{result: pagination.Result{Kind: pagination.KindDocument}}
	def := findTool(t, All(fetcher), "get_tokens_trading_signals")

	res, err := def.Handler(context.Background(), callRequest(def.Tool.Name, nil))
	require.NoError(t, err)
	assert.Contains(t, textOf(t, res), "No trading signals found")
}

func TestIndicesHoldingsRequiresID(t *testing.T) {
	fetcher := &stubFetcher{}
	def := findTool(t, All(fetcher), "get_indices_holdings")

	res, err := def.Handler(context.Background(), callRequest(def.Tool.Name, nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "id is required")
	assert.Zero(t, fetcher.calls)
}

func TestSignalDescriptions(t *testing.T) {
	assert.Equal(t, "Bullish (1)", describeSignal(float64(1)))
	assert.Equal(t, "Bearish (-1)", describeSignal(float64(-1)))
	assert.Equal(t, "Neutral (0)", describeSignal(float64(0)))
	assert.Equal(t, "<nil>", describeSignal(nil))
}

func TestFallbackTextRendersJSON(t *testing.T) {
	result := pagination.Result{
		Kind:    pagination.KindDocument,
		Records: []any{map[string]any{"DATE": "2023-06-01"}},
		Meta:    map[string]any{"total": float64(1)},
	}

	text := fallbackText(result)
	assert.Contains(t, text, `"total": 1`)
	assert.Contains(t, text, `"DATE": "2023-06-01"`)
}
