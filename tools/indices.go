package tools

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/client"
)

func indicesTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_indices",
		mcp.WithDescription("Get active and passive crypto indices with their performance and market data."),
		mcp.WithString("indicesType", mcp.Description("Index type filter: 'active' or 'passive'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := client.Params{}
		setIfPresent(params, "indicesType", req.GetString("indicesType", ""))

		result, err := f.Fetch(ctx, http.MethodGet, "indices", params)
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No indices found for the specified criteria.", func(rec map[string]any) []string {
			return []string{
				"Index ID: " + num(rec, "ID"),
				"Name: " + field(rec, "NAME"),
				"Ticker: " + field(rec, "TICKER"),
				"24h Change: " + num(rec, "24H") + "%",
				"Market Cap: $" + num(rec, "MARKET_CAP"),
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}

func indicesHoldingsTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_indices_holdings",
		mcp.WithDescription("Get the current holdings of a crypto index with their respective weights."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Index ID (e.g. '1')")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return mcp.NewToolResultError("Error: id is required"), nil
		}

		params := client.Params{"id": id}

		result, err := f.Fetch(ctx, http.MethodGet, "indices-holdings", params)
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No holdings found for the specified index.", func(rec map[string]any) []string {
			return []string{
				"Token ID: " + num(rec, "TOKEN_ID"),
				"Token: " + field(rec, "TOKEN_NAME") + " (" + field(rec, "TOKEN_SYMBOL") + ")",
				"Weight: " + num(rec, "WEIGHT") + "%",
				"Price: $" + num(rec, "PRICE"),
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}

func indicesPerformanceTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_indices_performance",
		mcp.WithDescription("Get the historical performance of a crypto index, including cumulative return over time."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Index ID (e.g. '1')")),
		mcp.WithString("startDate", mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("endDate", mcp.Description("End date in YYYY-MM-DD format")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return mcp.NewToolResultError("Error: id is required"), nil
		}
		startDate := req.GetString("startDate", "")
		endDate := req.GetString("endDate", "")
		if msg := checkDates(startDate, endDate); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}

		params := client.Params{"id": id}
		setIfPresent(params, "startDate", startDate)
		setIfPresent(params, "endDate", endDate)

		result, err := f.Fetch(ctx, http.MethodGet, "indices-performance", params)
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No performance data found for the specified index.", func(rec map[string]any) []string {
			return []string{
				"Date: " + field(rec, "DATE"),
				"Index ID: " + num(rec, "ID"),
				"Cumulative ROI: " + num(rec, "INDEX_CUMULATIVE_ROI") + "%",
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}

func traderIndicesTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_trader_indices",
		mcp.WithDescription("Get AI-generated trader index portfolios for actively managed crypto allocation."),
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
		setIfPresent(params, "startDate", startDate)
		setIfPresent(params, "endDate", endDate)

		result, err := f.Fetch(ctx, http.MethodGet, "trader-indices", params)
		if err != nil {
			return errorResult(err), nil
		}

		if len(result.Records) == 0 {
			return mcp.NewToolResultText("No trader indices found for the specified criteria."), nil
		}
		return mcp.NewToolResultText(fallbackText(result)), nil
	}

	return Definition{Tool: tool, Handler: handler}
}
