package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/client"
)

func marketMetricsTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_market_metrics",
		mcp.WithDescription("Get market-wide analytics including total crypto market cap and the bullish/bearish market indicator."),
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

		result, err := f.Fetch(ctx, http.MethodGet, "market-metrics", params)
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No market metrics found for the specified criteria.", func(rec map[string]any) []string {
			return []string{
				"Date: " + field(rec, "DATE"),
				"Total Crypto Market Cap: $" + num(rec, "TOTAL_CRYPTO_MCAP"),
				"High-Grade Coins: " + num(rec, "TM_GRADE_PERC_HIGH_COINS") + "%",
				"Market Indicator: " + num(rec, "TM_GRADE_SIGNAL"),
				"Last Indicator Value: " + num(rec, "LAST_TM_GRADE_SIGNAL"),
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}

func sentimentTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_sentiment_data",
		mcp.WithDescription("Get hourly market sentiment aggregated from news, Reddit, and Twitter."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := f.Fetch(ctx, http.MethodGet, "sentiments", client.Params{})
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No sentiment data found.", func(rec map[string]any) []string {
			return []string{
				"Date: " + field(rec, "DATETIME"),
				"Market Sentiment: " + num(rec, "MARKET_SENTIMENT_GRADE") + " (" + field(rec, "MARKET_SENTIMENT_LABEL") + ")",
				"News Sentiment: " + num(rec, "NEWS_SENTIMENT_GRADE") + " (" + field(rec, "NEWS_SENTIMENT_LABEL") + ")",
				"Reddit Sentiment: " + num(rec, "REDDIT_SENTIMENT_GRADE") + " (" + field(rec, "REDDIT_SENTIMENT_LABEL") + ")",
				"Twitter Sentiment: " + num(rec, "TWITTER_SENTIMENT_GRADE") + " (" + field(rec, "TWITTER_SENTIMENT_LABEL") + ")",
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}

func quantMetricsTool(f Fetcher) Definition {
	tool := mcp.NewTool("get_tokens_quant_metrics",
		mcp.WithDescription("Get quantitative metrics for cryptocurrencies: volatility, Sharpe ratio, max drawdown, CAGR, and more."),
		mcp.WithString("token_id", mcp.Description("Comma-separated Token IDs (e.g. '3375' for BTC)")),
		mcp.WithString("symbol", mcp.Description("Comma-separated Token Symbols (e.g. 'BTC,ETH')")),
		mcp.WithString("category", mcp.Description("Comma-separated category names (e.g. 'layer-1,nft')")),
		mcp.WithString("exchange", mcp.Description("Comma-separated exchange names (e.g. 'binance,gate')")),
		mcp.WithString("marketcap", mcp.Description("Minimum market cap in $")),
		mcp.WithString("volume", mcp.Description("Minimum 24h trading volume in $")),
		mcp.WithString("fdv", mcp.Description("Minimum fully diluted valuation in $")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := client.Params{}
		setIfPresent(params, "token_id", req.GetString("token_id", ""))
		setIfPresent(params, "symbol", req.GetString("symbol", ""))
		setIfPresent(params, "category", req.GetString("category", ""))
		setIfPresent(params, "exchange", req.GetString("exchange", ""))
		setIfPresent(params, "marketcap", req.GetString("marketcap", ""))
		setIfPresent(params, "volume", req.GetString("volume", ""))
		setIfPresent(params, "fdv", req.GetString("fdv", ""))

		result, err := f.Fetch(ctx, http.MethodGet, "quantmetrics", params)
		if err != nil {
			return errorResult(err), nil
		}

		text := recordBlocks(result, "No quant metrics found for the specified criteria.", func(rec map[string]any) []string {
			return []string{
				"Token ID: " + num(rec, "TOKEN_ID"),
				fmt.Sprintf("Token: %s (%s)", field(rec, "TOKEN_NAME"), field(rec, "TOKEN_SYMBOL")),
				"Volatility: " + num(rec, "VOLATILITY"),
				"Sharpe Ratio: " + num(rec, "SHARPE"),
				"Max Drawdown: " + num(rec, "MAX_DRAWDOWN"),
				"CAGR: " + num(rec, "CAGR"),
				"All-Time Return: " + num(rec, "ALL_TIME_RETURN"),
			}
		})
		return mcp.NewToolResultText(text), nil
	}

	return Definition{Tool: tool, Handler: handler}
}
