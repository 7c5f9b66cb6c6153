package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/client"
)

func priceTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_tokens_price",
		mcp.WithDescription("Get the current price of cryptocurrencies by Token ID."),
		mcp.WithString("token_id", mcp.Description("Comma-separated Token IDs (e.g. '3375' for BTC)")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := client.Params{}
		setIfPresent(params, "token_id", req.GetString("token_id", ""))

		result, err := f.Fetch(ctx, http.MethodGet, "price", params)
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No price data found for the specified criteria.", func(rec map[string]any) []string {
			return []string{
				"Token ID: " + num(rec, "TOKEN_ID"),
				fmt.Sprintf("Token: %s (%s)", field(rec, "TOKEN_NAME"), field(rec, "TOKEN_SYMBOL")),
				"Price: $" + num(rec, "CURRENT_PRICE"),
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}

func scenarioAnalysisTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_tokens_scenario_analysis",
		mcp.WithDescription("Get price predictions for cryptocurrencies under different market scenarios."),
		mcp.WithString("token_id", mcp.Description("Comma-separated Token IDs (e.g. '3375' for BTC)")),
		mcp.WithString("symbol", mcp.Description("Comma-separated Token Symbols (e.g. 'BTC,ETH')")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := client.Params{}
		setIfPresent(params, "token_id", req.GetString("token_id", ""))
		setIfPresent(params, "symbol", req.GetString("symbol", ""))

		result, err := f.Fetch(ctx, http.MethodGet, "scenario-analysis", params)
		if err != nil {
			return errorResult(err), nil
		}

		if len(result.Records) == 0 {
			return mcp.NewToolResultText("No scenario analysis found for the specified criteria."), nil
		}
		return mcp.NewToolResultText(fallbackText(result)), nil
	}

	return Definition{Tool: tool, Handler: handler}
}

func correlationTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_tokens_correlation",
		mcp.WithDescription("Get the correlation of a cryptocurrency with the top 10 and top 100 market cap tokens."),
		mcp.WithString("token_id", mcp.Description("Comma-separated Token IDs (e.g. '3375' for BTC)")),
		mcp.WithString("symbol", mcp.Description("Comma-separated Token Symbols (e.g. 'BTC,ETH')")),
		mcp.WithString("category", mcp.Description("Comma-separated category names (e.g. 'layer-1,nft')")),
		mcp.WithString("exchange", mcp.Description("Comma-separated exchange names (e.g. 'binance,gate')")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := client.Params{}
		setIfPresent(params, "token_id", req.GetString("token_id", ""))
		setIfPresent(params, "symbol", req.GetString("symbol", ""))
		setIfPresent(params, "category", req.GetString("category", ""))
		setIfPresent(params, "exchange", req.GetString("exchange", ""))

		result, err := f.Fetch(ctx, http.MethodGet, "correlation", params)
		if err != nil {
			return errorResult(err), nil
		}

		if len(result.Records) == 0 {
			return mcp.NewToolResultText("No correlation data found for the specified criteria."), nil
		}
		return mcp.NewToolResultText(fallbackText(result)), nil
	}

	return Definition{Tool: tool, Handler: handler}
}

func cryptoInvestorsTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_crypto_investors",
		mcp.WithDescription("Get the latest list of crypto investors with their scores and investment round details."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := f.Fetch(ctx, http.MethodGet, "crypto-investors", client.Params{})
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No crypto investors data found.", func(rec map[string]any) []string {
			return []string{
				"Investor: " + field(rec, "INVESTOR_NAME"),
				"Score: " + num(rec, "INVESTOR_SCORE"),
				"Rounds: " + num(rec, "ROUND_COUNT"),
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}
