// Package tools exposes each Token Metrics endpoint as an MCP tool with a
// typed input schema and a text formatter. Tools build the parameter set,
// hand it to the pagination layer, and render the merged response; they
// never talk to the upstream directly.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/client"
	"github.com/cryptodata-labs/tokenmetrics-go/pkg/pagination"
)

// Fetcher is the orchestration surface tools consume.
// *pagination.Aggregator satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, method, endpoint string, params client.Params, opts ...pagination.FetchOption) (pagination.Result, error)
}

// Definition couples an MCP tool with its handler.
type Definition struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
}

// All returns every endpoint tool wired to the given fetcher.
func All(f Fetcher) []Definition {
	return []Definition{
		tokensTool(f),
		topMarketCapTool(f),
		dailyOHLCVTool(f),
		hourlyOHLCVTool(f),
		traderGradesTool(f),
		investorGradesTool(f),
		marketMetricsTool(f),
		tradingSignalsTool(f),
		resistanceSupportTool(f),
		priceTool(f),
		sentimentTool(f),
		quantMetricsTool(f),
		scenarioAnalysisTool(f),
		correlationTool(f),
		cryptoInvestorsTool(f),
		indicesTool(f),
		indicesHoldingsTool(f),
		indicesPerformanceTool(f),
		traderIndicesTool(f),
	}
}

// setIfPresent adds a parameter only when the value is non-empty; absent
// values are never transmitted.
func setIfPresent(params client.Params, key, value string) {
	if value != "" {
		params[key] = value
	}
}

// checkDates validates optional YYYY-MM-DD bounds at the tool boundary.
// Returns an error message for the agent, or "" when both are acceptable.
func checkDates(startDate, endDate string) string {
	if startDate != "" {
		if _, err := time.Parse(pagination.DateLayout, startDate); err != nil {
			return "Error: startDate must be in YYYY-MM-DD format"
		}
	}
	if endDate != "" {
		if _, err := time.Parse(pagination.DateLayout, endDate); err != nil {
			return "Error: endDate must be in YYYY-MM-DD format"
		}
	}
	return ""
}

// errorResult renders a fetch failure as a diagnostic tool result rather
// than propagating the error to the MCP transport.
func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("API error: %v", err))
}

// fallbackText renders a result as indented JSON, used by tools whose
// records have no fixed display shape.
func fallbackText(result pagination.Result) string {
	data, err := json.MarshalIndent(result.JSON(), "", "  ")
	if err != nil {
		return fmt.Sprint(result.JSON())
	}
	return string(data)
}

// field reads a display value from a record, with "Unknown" for missing
// text fields.
func field(rec map[string]any, key string) string {
	return fieldOr(rec, key, "Unknown")
}

// num reads a numeric display value from a record, with "0" when missing.
func num(rec map[string]any, key string) string {
	return fieldOr(rec, key, "0")
}

func fieldOr(rec map[string]any, key, fallback string) string {
	value, ok := rec[key]
	if !ok || value == nil {
		return fallback
	}
	if f, isFloat := value.(float64); isFloat {
		return trimFloat(f)
	}
	return fmt.Sprint(value)
}

// trimFloat renders JSON numbers without an exponent and without
// trailing zeros.
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.8f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// recordBlocks formats each record through format and joins the blocks,
// falling back to JSON when a record is not a keyed document.
func recordBlocks(result pagination.Result, empty string, format func(rec map[string]any) []string) string {
	if len(result.Records) == 0 {
		return empty
	}

	blocks := make([]string, 0, len(result.Records))
	for _, raw := range result.Records {
		rec, ok := raw.(map[string]any)
		if !ok {
			return fallbackText(result)
		}
		blocks = append(blocks, strings.Join(format(rec), "\n"))
	}
	return strings.Join(blocks, "\n\n")
}
