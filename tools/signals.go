package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/client"
)

func tradingSignalsTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_tokens_trading_signals",
		mcp.WithDescription("Get AI-generated trading signals for cryptocurrencies. Signal 1 is bullish, -1 is bearish, 0 is neutral."),
		mcp.WithString("token_id", mcp.Description("Comma-separated Token IDs (e.g. '3375' for BTC)")),
		mcp.WithString("symbol", mcp.Description("Comma-separated Token Symbols (e.g. 'BTC,ETH')")),
		mcp.WithString("startDate", mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("endDate", mcp.Description("End date in YYYY-MM-DD format")),
		mcp.WithString("category", mcp.Description("Comma-separated category names (e.g. 'layer-1,nft')")),
		mcp.WithString("exchange", mcp.Description("Comma-separated exchange names (e.g. 'binance,gate')")),
		mcp.WithString("marketcap", mcp.Description("Minimum market cap in $")),
		mcp.WithString("volume", mcp.Description("Minimum 24h trading volume in $")),
		mcp.WithString("fdv", mcp.Description("Minimum fully diluted valuation in $")),
		mcp.WithString("signal", mcp.Description("Current signal value: 1 bullish, -1 bearish, 0 neutral")),
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
		setIfPresent(params, "startDate", startDate)
		setIfPresent(params, "endDate", endDate)
		setIfPresent(params, "category", req.GetString("category", ""))
		setIfPresent(params, "exchange", req.GetString("exchange", ""))
		setIfPresent(params, "marketcap", req.GetString("marketcap", ""))
		setIfPresent(params, "volume", req.GetString("volume", ""))
		setIfPresent(params, "fdv", req.GetString("fdv", ""))
		setIfPresent(params, "signal", req.GetString("signal", ""))

		result, err := f.Fetch(ctx, http.MethodGet, "trading-signals", params)
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No trading signals found for the specified criteria.", func(rec map[string]any) []string {
			return []string{
				"Token ID: " + num(rec, "TOKEN_ID"),
				fmt.Sprintf("Token: %s (%s)", field(rec, "TOKEN_NAME"), field(rec, "TOKEN_SYMBOL")),
				"Date: " + field(rec, "DATE"),
				"Signal: " + describeSignal(rec["TRADING_SIGNAL"]),
				"Token Trend: " + num(rec, "TOKEN_TREND"),
				"Trading Signals Returns: " + num(rec, "TRADING_SIGNALS_RETURNS"),
				"Holding Returns: " + num(rec, "HOLDING_RETURNS"),
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}

// describeSignal translates the numeric signal into the wording agents
// expect.
func describeSignal(value any) string {
	switch value {
	case float64(1):
		return "Bullish (1)"
	case float64(-1):
		return "Bearish (-1)"
	case float64(0):
		return "Neutral (0)"
	default:
		return fmt.Sprint(value)
	}
}

func resistanceSupportTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_tokens_resistance_support",
		mcp.WithDescription("Get historical resistance and support levels for cryptocurrencies."),
		mcp.WithString("token_id", mcp.Description("Comma-separated Token IDs (e.g. '3375' for BTC)")),
		mcp.WithString("symbol", mcp.Description("Comma-separated Token Symbols (e.g. 'BTC,ETH')")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := client.Params{}
		setIfPresent(params, "token_id", req.GetString("token_id", ""))
		setIfPresent(params, "symbol", req.GetString("symbol", ""))

		result, err := f.Fetch(ctx, http.MethodGet, "resistance-support", params)
		if err != nil {
			return errorResult(err), nil
		}

		if len(result.Records) == 0 {
			return mcp.NewToolResultText("No resistance and support data found for the specified criteria."), nil
		}
		return mcp.NewToolResultText(fallbackText(result)), nil
	}

	return Definition{Tool: tool, Handler: handler}
}
