package pagination

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/client"
)

type issuedCall struct {
	method string
	path   string
	params client.Params
}

// fakeIssuer replays canned responses and records every outbound call.
type fakeIssuer struct {
	responses []any
	errs      []error
	calls     []issuedCall
}

func (f *fakeIssuer) Send(ctx context.Context, method, path string, params client.Params, body any) (any, error) {
	i := len(f.calls)
	f.calls = append(f.calls, issuedCall{method: method, path: path, params: params.Clone()})

	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return nil, nil
}

func newAggregator(issuer Issuer) *Aggregator {
	return NewAggregator(issuer, DefaultLimitTable())
}

func TestFetchOverridesCallerLimit(t *testing.T) {
	issuer := &fakeIssuer{responses: []any{map[string]any{"data": []any{}}}}
	agg := newAggregator(issuer)

	params := client.Params{"symbol": "BTC", "limit": 5}
	if _, err := agg.Fetch(context.Background(), http.MethodGet, "daily-ohlcv", params); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if len(issuer.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(issuer.calls))
	}
	if got := issuer.calls[0].params["limit"]; got != 100 {
		t.Errorf("issued limit = %v, want table limit 100", got)
	}

	// Caller's parameter set must not be mutated.
	if params["limit"] != 5 {
		t.Errorf("caller params mutated: limit = %v", params["limit"])
	}
}

func TestFetchCustomLimit(t *testing.T) {
	issuer := &fakeIssuer{responses: []any{map[string]any{"data": []any{}}}}
	agg := newAggregator(issuer)

	_, err := agg.Fetch(context.Background(), http.MethodGet, "tokens", client.Params{}, WithLimit(7))
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if got := issuer.calls[0].params["limit"]; got != 7 {
		t.Errorf("issued limit = %v, want custom limit 7", got)
	}
}

func TestFetchDefaultLimitForUnlistedEndpoint(t *testing.T) {
	issuer := &fakeIssuer{responses: []any{map[string]any{"data": []any{}}}}
	agg := newAggregator(issuer)

	if _, err := agg.Fetch(context.Background(), http.MethodGet, "sentiments", client.Params{}); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if got := issuer.calls[0].params["limit"]; got != 1000 {
		t.Errorf("issued limit = %v, want default 1000", got)
	}
}

func TestFetchStripsCallerPage(t *testing.T) {
	issuer := &fakeIssuer{responses: []any{
		map[string]any{"data": []any{}},
		map[string]any{"data": []any{}},
	}}
	agg := newAggregator(issuer)

	params := client.Params{
		"page":      7,
		"startDate": "2023-06-01",
		"endDate":   "2023-07-15",
	}
	if _, err := agg.Fetch(context.Background(), http.MethodGet, "trader-grades", params); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if len(issuer.calls) != 2 {
		t.Fatalf("expected 2 chunk calls, got %d", len(issuer.calls))
	}
	for i, call := range issuer.calls {
		if got := call.params["page"]; got != 0 {
			t.Errorf("chunk %d page = %v, want 0", i, got)
		}
	}
}

func TestFetchMergesMetadataLastWriteWins(t *testing.T) {
	issuer := &fakeIssuer{responses: []any{
		map[string]any{"data": []any{map[string]any{"DATE": "2023-06-01"}}, "note": "a"},
		map[string]any{"data": []any{map[string]any{"DATE": "2023-06-30"}}, "note": "b"},
	}}
	agg := newAggregator(issuer)

	result, err := agg.Fetch(context.Background(), http.MethodGet, "trader-grades", client.Params{
		"startDate": "2023-06-01",
		"endDate":   "2023-07-15",
	})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if result.Kind != KindDocument {
		t.Fatalf("result kind = %v, want KindDocument", result.Kind)
	}
	if got := result.Meta["note"]; got != "b" {
		t.Errorf("merged note = %v, want last chunk's \"b\"", got)
	}
	if len(result.Records) != 2 {
		t.Fatalf("merged records = %d, want 2", len(result.Records))
	}
	first, _ := result.Records[0].(map[string]any)
	if first["DATE"] != "2023-06-01" {
		t.Errorf("record order not chronological: first = %v", result.Records[0])
	}
}

func TestFetchFailsFast(t *testing.T) {
	chunkErr := &client.APIError{StatusCode: 502, Body: "bad gateway"}
	issuer := &fakeIssuer{
		responses: []any{
			map[string]any{"data": []any{map[string]any{"DATE": "2023-01-01"}}},
			nil,
			map[string]any{"data": []any{map[string]any{"DATE": "2023-03-01"}}},
		},
		errs: []error{nil, chunkErr, nil},
	}
	agg := newAggregator(issuer)

	_, err := agg.Fetch(context.Background(), http.MethodGet, "daily-ohlcv", client.Params{
		"startDate": "2023-01-01",
		"endDate":   "2023-03-15",
	})
	if err == nil {
		t.Fatal("expected error from second chunk")
	}

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 502 {
		t.Errorf("error = %v, want the chunk's APIError propagated unmodified", err)
	}
	if len(issuer.calls) != 2 {
		t.Errorf("issued %d calls, want 2 (remaining chunks aborted)", len(issuer.calls))
	}
}

func TestFetchEndToEnd(t *testing.T) {
	issuer := &fakeIssuer{responses: []any{
		map[string]any{"data": []any{map[string]any{"DATE": "2023-01-01"}}, "total": float64(1)},
		map[string]any{"data": []any{map[string]any{"DATE": "2023-01-30"}}, "total": float64(2)},
		map[string]any{"data": []any{map[string]any{"DATE": "2023-02-28"}}, "total": float64(3)},
	}}
	agg := newAggregator(issuer)

	var progress []int
	result, err := agg.Fetch(context.Background(), http.MethodGet, "daily-ohlcv",
		client.Params{
			"symbol":    "BTC",
			"startDate": "2023-01-01",
			"endDate":   "2023-03-15",
		},
		WithProgress(func(done, total int) { progress = append(progress, done) }),
	)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	// 73-day span at 29-day boundaries: three chunks.
	wantWindows := []Window{
		{Start: "2023-01-01", End: "2023-01-30"},
		{Start: "2023-01-30", End: "2023-02-28"},
		{Start: "2023-02-28", End: "2023-03-15"},
	}
	if len(issuer.calls) != len(wantWindows) {
		t.Fatalf("issued %d calls, want %d", len(issuer.calls), len(wantWindows))
	}
	for i, call := range issuer.calls {
		if call.method != http.MethodGet || call.path != "daily-ohlcv" {
			t.Errorf("call %d = %s %s, want GET daily-ohlcv", i, call.method, call.path)
		}
		if call.params["startDate"] != wantWindows[i].Start || call.params["endDate"] != wantWindows[i].End {
			t.Errorf("call %d window = %v..%v, want %v", i,
				call.params["startDate"], call.params["endDate"], wantWindows[i])
		}
		if call.params["limit"] != 100 || call.params["page"] != 0 {
			t.Errorf("call %d limit/page = %v/%v, want 100/0",
				i, call.params["limit"], call.params["page"])
		}
		if call.params["symbol"] != "BTC" {
			t.Errorf("call %d lost filter params", i)
		}
	}

	if len(result.Records) != 3 {
		t.Errorf("aggregated %d records, want one per chunk (3)", len(result.Records))
	}
	if got := result.Meta["total"]; got != float64(3) {
		t.Errorf("total = %v, want last chunk's 3", got)
	}
	if len(progress) != 3 || progress[2] != 3 {
		t.Errorf("progress = %v, want [1 2 3]", progress)
	}
}

func TestFetchWithoutDatesIsSingleChunk(t *testing.T) {
	issuer := &fakeIssuer{responses: []any{map[string]any{"data": []any{map[string]any{"ID": float64(1)}}}}}
	agg := newAggregator(issuer)

	result, err := agg.Fetch(context.Background(), http.MethodGet, "tokens", client.Params{"symbol": "BTC"})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if len(issuer.calls) != 1 {
		t.Fatalf("issued %d calls, want 1", len(issuer.calls))
	}
	if _, ok := issuer.calls[0].params["startDate"]; ok {
		t.Error("startDate appeared in a date-less request")
	}
	if result.Kind != KindDocument {
		t.Errorf("record maps without metadata should yield KindDocument, got %v", result.Kind)
	}
}

func TestFetchBareListResponse(t *testing.T) {
	issuer := &fakeIssuer{responses: []any{[]any{"BTC", "ETH"}}}
	agg := newAggregator(issuer)

	result, err := agg.Fetch(context.Background(), http.MethodGet, "tokens", client.Params{})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if result.Kind != KindRecords {
		t.Fatalf("result kind = %v, want KindRecords", result.Kind)
	}
	if len(result.Records) != 2 || result.Records[0] != "BTC" {
		t.Errorf("records = %v, want upstream order preserved", result.Records)
	}
}

func TestFetchSingleScalarResponse(t *testing.T) {
	issuer := &fakeIssuer{responses: []any{"maintenance"}}
	agg := newAggregator(issuer)

	result, err := agg.Fetch(context.Background(), http.MethodGet, "tokens", client.Params{})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if result.Kind != KindRecords || len(result.Records) != 1 || result.Records[0] != "maintenance" {
		t.Errorf("non-document payload should be carried wholesale, got %+v", result)
	}
}

func TestFetchEmptyResponses(t *testing.T) {
	issuer := &fakeIssuer{responses: []any{nil}}
	agg := newAggregator(issuer)

	result, err := agg.Fetch(context.Background(), http.MethodGet, "tokens", client.Params{})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if result.Kind != KindRecords || len(result.Records) != 0 {
		t.Errorf("empty fetch should yield empty bare records, got %+v", result)
	}
}

func TestFetchMaxSpanDaysOption(t *testing.T) {
	issuer := &fakeIssuer{responses: []any{
		map[string]any{"data": []any{}},
		map[string]any{"data": []any{}},
		map[string]any{"data": []any{}},
	}}
	agg := newAggregator(issuer)

	_, err := agg.Fetch(context.Background(), http.MethodGet, "hourly-ohlcv",
		client.Params{"startDate": "2023-06-01", "endDate": "2023-06-07"},
		WithMaxSpanDays(2),
	)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if len(issuer.calls) != 3 {
		t.Errorf("issued %d calls, want 3 with a 2-day span", len(issuer.calls))
	}
}
