package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/client"
)

func traderGradesTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_tokens_trader_grades",
		mcp.WithDescription("Get short-term trader grades for cryptocurrencies, including the overall TM Trader Grade and its TA and quant components."),
		mcp.WithString("token_id", mcp.Description("Comma-separated Token IDs (e.g. '3375' for BTC)")),
		mcp.WithString("symbol", mcp.Description("Comma-separated Token Symbols (e.g. 'BTC,ETH')")),
		mcp.WithString("startDate", mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("endDate", mcp.Description("End date in YYYY-MM-DD format")),
		mcp.WithString("category", mcp.Description("Comma-separated category names (e.g. 'layer-1,nft')")),
		mcp.WithString("exchange", mcp.Description("Comma-separated exchange names (e.g. 'binance,gate')")),
		mcp.WithString("marketcap", mcp.Description("Minimum market cap in $")),
		mcp.WithString("fdv", mcp.Description("Minimum fully diluted valuation in $")),
		mcp.WithString("volume", mcp.Description("Minimum 24h trading volume in $")),
		mcp.WithString("traderGrade", mcp.Description("Minimum TM Trader Grade")),
		mcp.WithString("traderGradePercentChange", mcp.Description("Minimum 24h percent change in TM Trader Grade")),
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
		setIfPresent(params, "fdv", req.GetString("fdv", ""))
		setIfPresent(params, "volume", req.GetString("volume", ""))
		setIfPresent(params, "traderGrade", req.GetString("traderGrade", ""))
		setIfPresent(params, "traderGradePercentChange", req.GetString("traderGradePercentChange", ""))

		result, err := f.Fetch(ctx, http.MethodGet, "trader-grades", params)
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No trader grades data found for the specified criteria.", func(rec map[string]any) []string {
			return []string{
				"Token ID: " + num(rec, "TOKEN_ID"),
				fmt.Sprintf("Token: %s (%s)", field(rec, "TOKEN_NAME"), field(rec, "TOKEN_SYMBOL")),
				"Date: " + field(rec, "DATE"),
				"TM Trader Grade: " + num(rec, "TM_TRADER_GRADE"),
				"TA Grade: " + num(rec, "TA_GRADE"),
				"Quant Grade: " + num(rec, "QUANT_GRADE"),
				"24h Grade Change: " + num(rec, "TM_TRADER_GRADE_24H_PCT_CHANGE") + "%",
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}

func investorGradesTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_tokens_investor_grades",
		mcp.WithDescription("Get long-term investor grades for cryptocurrencies, including technology, fundamental, and valuation components."),
		mcp.WithString("token_id", mcp.Description("Comma-separated Token IDs (e.g. '3375' for BTC)")),
		mcp.WithString("symbol", mcp.Description("Comma-separated Token Symbols (e.g. 'BTC,ETH')")),
		mcp.WithString("startDate", mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("endDate", mcp.Description("End date in YYYY-MM-DD format")),
		mcp.WithString("category", mcp.Description("Comma-separated category names (e.g. 'layer-1,nft')")),
		mcp.WithString("exchange", mcp.Description("Comma-separated exchange names (e.g. 'binance,gate')")),
		mcp.WithString("marketcap", mcp.Description("Minimum market cap in $")),
		mcp.WithString("fdv", mcp.Description("Minimum fully diluted valuation in $")),
		mcp.WithString("volume", mcp.Description("Minimum 24h trading volume in $")),
		mcp.WithString("investorGrade", mcp.Description("Minimum TM Investor Grade")),
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
		setIfPresent(params, "fdv", req.GetString("fdv", ""))
		setIfPresent(params, "volume", req.GetString("volume", ""))
		setIfPresent(params, "investorGrade", req.GetString("investorGrade", ""))

		result, err := f.Fetch(ctx, http.MethodGet, "investor-grades", params)
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No investor grades data found for the specified criteria.", func(rec map[string]any) []string {
			return []string{
				"Token ID: " + num(rec, "TOKEN_ID"),
				fmt.Sprintf("Token: %s (%s)", field(rec, "TOKEN_NAME"), field(rec, "TOKEN_SYMBOL")),
				"Date: " + field(rec, "DATE"),
				"TM Investor Grade: " + num(rec, "TM_INVESTOR_GRADE"),
				"Technology Grade: " + num(rec, "TECHNOLOGY_GRADE"),
				"Fundamental Grade: " + num(rec, "FUNDAMENTAL_GRADE"),
				"Valuation Grade: " + num(rec, "VALUATION_GRADE"),
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}
