package pagination

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/client"
)

// Prometheus metrics for aggregation operations.
var (
	chunksFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tm_chunks_fetched_total",
		Help: "Total date-window chunks fetched by endpoint",
	}, []string{"endpoint"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tm_fetch_duration_seconds",
		Help:    "Aggregated fetch duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"endpoint"})
)

// DefaultMaxSpanDays is the widest date range the upstream serves reliably
// in a single request.
const DefaultMaxSpanDays = 29

// Issuer performs a single upstream request. *client.Client satisfies it.
type Issuer interface {
	Send(ctx context.Context, method, path string, params client.Params, body any) (any, error)
}

// Aggregator drives chunked, sequential fetches against the upstream API
// and merges the per-chunk payloads into one Result.
type Aggregator struct {
	issuer Issuer
	limits LimitTable
	logger zerolog.Logger
}

// NewAggregator creates an aggregator using the given issuer and limit
// table.
func NewAggregator(issuer Issuer, limits LimitTable) *Aggregator {
	return &Aggregator{
		issuer: issuer,
		limits: limits,
		logger: log.With().Str("component", "tm-paginator").Logger(),
	}
}

// FetchOption customizes a single Fetch call.
type FetchOption func(*fetchOptions)

type fetchOptions struct {
	maxSpanDays int
	customLimit int
	hasLimit    bool
	progress    func(done, total int)
}

// WithMaxSpanDays overrides the maximum days per date window.
func WithMaxSpanDays(days int) FetchOption {
	return func(o *fetchOptions) {
		if days > 0 {
			o.maxSpanDays = days
		}
	}
}

// WithLimit overrides the endpoint's table limit for this call.
func WithLimit(limit int) FetchOption {
	return func(o *fetchOptions) {
		o.customLimit = limit
		o.hasLimit = true
	}
}

// WithProgress registers a callback invoked after each chunk completes.
func WithProgress(fn func(done, total int)) FetchOption {
	return func(o *fetchOptions) {
		o.progress = fn
	}
}

// Fetch issues one request per date window and merges the responses.
//
// The effective page limit always comes from WithLimit or the endpoint
// limit table; a limit the caller placed in params is discarded, and any
// caller-supplied page value is stripped (every chunk is requested as
// page 0 with a limit high enough to cover the window in one call). The
// upstream's own page-parameter pagination is unreliable for large
// windows, which is why the caller cannot opt back into it.
//
// Chunks are processed strictly in window order, one at a time. The first
// transport or HTTP failure aborts the remaining chunks and is returned
// unmodified; partial results are never returned.
func (a *Aggregator) Fetch(ctx context.Context, method, endpoint string, params client.Params, opts ...FetchOption) (Result, error) {
	options := fetchOptions{maxSpanDays: DefaultMaxSpanDays}
	for _, opt := range opts {
		opt(&options)
	}

	limit := a.limits.Limit(endpoint)
	if options.hasLimit {
		limit = options.customLimit
	}

	base := params.Clone()
	if caller, ok := base["limit"]; ok {
		a.logger.Debug().
			Str("endpoint", endpoint).
			Any("caller_limit", caller).
			Int("limit", limit).
			Msg("Discarding caller-supplied limit")
	}
	base["limit"] = limit

	// Pagination is reimplemented via date chunking; the upstream page
	// parameter is never forwarded.
	if caller, ok := base["page"]; ok {
		a.logger.Debug().
			Str("endpoint", endpoint).
			Any("caller_page", caller).
			Msg("Stripping caller-supplied page")
		delete(base, "page")
	}

	startDate := stringParam(base, "startDate")
	endDate := stringParam(base, "endDate")
	windows := SplitRange(startDate, endDate, options.maxSpanDays)

	start := time.Now()
	defer func() {
		fetchDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	a.logger.Info().
		Str("endpoint", endpoint).
		Int("chunks", len(windows)).
		Int("limit", limit).
		Msg("Starting chunked fetch")

	var allData []any
	combinedMeta := map[string]any{}

	for i, window := range windows {
		chunkParams := base.Clone()
		if window.Start != "" {
			chunkParams["startDate"] = window.Start
		}
		if window.End != "" {
			chunkParams["endDate"] = window.End
		}
		chunkParams["limit"] = limit
		chunkParams["page"] = 0

		response, err := a.issuer.Send(ctx, method, endpoint, chunkParams, nil)
		if err != nil {
			a.logger.Warn().
				Err(err).
				Str("endpoint", endpoint).
				Int("chunk", i+1).
				Int("chunks", len(windows)).
				Msg("Chunk fetch failed, aborting")
			return Result{}, err
		}

		allData = mergeChunk(response, allData, combinedMeta)

		chunksFetchedTotal.WithLabelValues(endpoint).Inc()
		if options.progress != nil {
			options.progress(i+1, len(windows))
		}
		a.logger.Debug().
			Str("endpoint", endpoint).
			Int("chunk", i+1).
			Int("chunks", len(windows)).
			Int("records", len(allData)).
			Msg("Chunk complete")
	}

	a.logger.Info().
		Str("endpoint", endpoint).
		Int("chunks", len(windows)).
		Int("records", len(allData)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return buildResult(allData, combinedMeta), nil
}

// mergeChunk folds one chunk's payload into the running accumulator and
// metadata map, returning the extended accumulator.
func mergeChunk(response any, allData []any, combinedMeta map[string]any) []any {
	switch payload := response.(type) {
	case map[string]any:
		if data, ok := payload["data"]; ok {
			switch items := data.(type) {
			case []any:
				allData = append(allData, items...)
			case nil:
				// JSON null contributes nothing
			default:
				allData = append(allData, items)
			}
		}
		// Later chunks overwrite earlier metadata with the same key.
		for key, value := range payload {
			if key != "data" {
				combinedMeta[key] = value
			}
		}
	case []any:
		allData = append(allData, payload...)
	case nil:
		// empty body contributes nothing
	default:
		// A single non-document payload is carried wholesale as the
		// chunk's data.
		allData = append(allData, payload)
	}
	return allData
}

// buildResult assembles the final Result from the accumulated records and
// metadata.
func buildResult(allData []any, combinedMeta map[string]any) Result {
	if len(combinedMeta) > 0 {
		return Result{Kind: KindDocument, Records: allData, Meta: combinedMeta}
	}
	if len(allData) > 0 {
		if _, ok := allData[0].(map[string]any); ok {
			return Result{Kind: KindDocument, Records: allData}
		}
	}
	return Result{Kind: KindRecords, Records: allData}
}

// stringParam reads a string-typed parameter, treating anything else as
// absent.
func stringParam(params client.Params, key string) string {
	if value, ok := params[key].(string); ok {
		return value
	}
	return ""
}
