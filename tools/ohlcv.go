package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/client"
)

// ohlcvTool builds the shared daily/hourly OHLCV tool shape; the two
// endpoints differ only in name, granularity, and the record's date field.
func ohlcvTool(f Fetcher, name, endpoint, granularity, dateField string) Definition {
	tool := mcp.NewTool(name,
		mcp.WithDescription(fmt.Sprintf(
			"Get %s OHLCV (Open, High, Low, Close, Volume) data for cryptocurrencies. "+
				"Useful for analyzing historical price movements and trading volume.", granularity)),
		mcp.WithString("token_id", mcp.Description("Comma-separated Token IDs (e.g. '3375' for BTC)")),
		mcp.WithString("symbol", mcp.Description("Comma-separated Token Symbols (e.g. 'BTC,ETH')")),
		mcp.WithString("token_name", mcp.Description("Comma-separated Token Names (e.g. 'Bitcoin,Ethereum')")),
		mcp.WithString("startDate", mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("endDate", mcp.Description("End date in YYYY-MM-DD format")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startDate := req.GetString("startDate", "")
		endDate := req.GetString("endDate", "")
		if msg := checkDates(startDate, endDate); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}

		params := client.Params{}
		setIfPresent(params, "token_id", req.GetString("token_id", ""))
		setIfPresent(params, "symbol", req.GetString("symbol", ""))
		setIfPresent(params, "token_name", req.GetString("token_name", ""))
		setIfPresent(params, "startDate", startDate)
		setIfPresent(params, "endDate", endDate)

		result, err := f.Fetch(ctx, http.MethodGet, endpoint, params)
		if err != nil {
			return errorResult(err), nil
		}

		empty := fmt.Sprintf("No %s OHLCV data found for the specified criteria.", granularity)
		text := recordBlocks(result, empty, func(rec map[string]any) []string {
			return []string{
				"Token ID: " + num(rec, "TOKEN_ID"),
				fmt.Sprintf("Token: %s (%s)", field(rec, "TOKEN_NAME"), field(rec, "TOKEN_SYMBOL")),
				"Date: " + field(rec, dateField),
				"Open: $" + num(rec, "OPEN"),
				"High: $" + num(rec, "HIGH"),
				"Low: $" + num(rec, "LOW"),
				"Close: $" + num(rec, "CLOSE"),
				"Volume: " + num(rec, "VOLUME"),
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}

func dailyOHLCVTool(f Fetcher) Definition {
	return ohlcvTool(f, "get_tokens_daily_ohlcv", "daily-ohlcv", "daily", "DATE")
}

func hourlyOHLCVTool(f Fetcher) Definition {
	return ohlcvTool(f, "get_tokens_hourly_ohlcv", "hourly-ohlcv", "hourly", "TIMESTAMP")
}
