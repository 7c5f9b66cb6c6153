package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/client"
)

func tokensTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_tokens_data",
		mcp.WithDescription("Get information about cryptocurrencies including their IDs, names, symbols, exchanges, categories, and contract addresses."),
		mcp.WithString("token_id", mcp.Description("Comma-separated Token IDs (e.g. '3375' for BTC)")),
		mcp.WithString("token_name", mcp.Description("Comma-separated Token Names (e.g. 'Bitcoin,Ethereum')")),
		mcp.WithString("symbol", mcp.Description("Comma-separated Token Symbols (e.g. 'BTC,ETH')")),
		mcp.WithString("category", mcp.Description("Comma-separated category names (e.g. 'layer-1,nft')")),
		mcp.WithString("exchange", mcp.Description("Comma-separated exchange names (e.g. 'binance,gate')")),
		mcp.WithString("blockchain_address", mcp.Description("Blockchain name and contract address (e.g. 'binance-smart-chain:0x57185189118c7e786cafd5c71f35b16012fa95ad')")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := client.Params{}
		setIfPresent(params, "token_id", req.GetString("token_id", ""))
		setIfPresent(params, "token_name", req.GetString("token_name", ""))
		setIfPresent(params, "symbol", req.GetString("symbol", ""))
		setIfPresent(params, "category", req.GetString("category", ""))
		setIfPresent(params, "exchange", req.GetString("exchange", ""))
		setIfPresent(params, "blockchain_address", req.GetString("blockchain_address", ""))

		result, err := f.Fetch(ctx, http.MethodGet, "tokens", params)
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No tokens found for the specified criteria.", func(rec map[string]any) []string {
			return []string{
				"Token ID: " + num(rec, "TOKEN_ID"),
				fmt.Sprintf("Token: %s (%s)", field(rec, "TOKEN_NAME"), field(rec, "TOKEN_SYMBOL")),
				"Category: " + field(rec, "CATEGORY"),
				"Exchanges: " + field(rec, "EXCHANGE_LIST"),
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}

func topMarketCapTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_top_market_cap_tokens",
		mcp.WithDescription("Get the list of top cryptocurrencies by market capitalization."),
		mcp.WithNumber("top_k", mcp.Description("Number of top tokens to return (e.g. 10)")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := client.Params{}
		if topK := req.GetInt("top_k", 0); topK > 0 {
			params["top_k"] = topK
		}

		result, err := f.Fetch(ctx, http.MethodGet, "top-market-cap-tokens", params)
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No top market cap tokens found.", func(rec map[string]any) []string {
			return []string{
				"Token ID: " + num(rec, "TOKEN_ID"),
				fmt.Sprintf("Token: %s (%s)", field(rec, "TOKEN_NAME"), field(rec, "TOKEN_SYMBOL")),
				"Market Cap: $" + num(rec, "MARKET_CAP"),
				"Price: $" + num(rec, "CURRENT_PRICE"),
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}
