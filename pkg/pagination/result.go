package pagination

import "encoding/json"

// Kind discriminates the two shapes an aggregated response can take.
type Kind int

const (
	// KindRecords is a bare ordered sequence of records, produced when no
	// chunk contributed metadata and the records are not keyed documents.
	KindRecords Kind = iota

	// KindDocument is a mapping with a "data" field holding the record
	// sequence plus zero or more sibling metadata fields accumulated
	// across chunks.
	KindDocument
)

// Result is the single logical response produced by merging all per-chunk
// payloads of one Fetch call. Record order follows chunk order; within a
// chunk the upstream order is preserved verbatim.
type Result struct {
	Kind    Kind
	Records []any
	Meta    map[string]any
}

// JSON renders the result in the upstream's wire shape: a document with a
// "data" array (plus metadata) for KindDocument, or the bare record
// sequence for KindRecords.
func (r Result) JSON() any {
	switch r.Kind {
	case KindDocument:
		doc := make(map[string]any, len(r.Meta)+1)
		for k, v := range r.Meta {
			doc[k] = v
		}
		doc["data"] = r.records()
		return doc
	default:
		return r.records()
	}
}

// MarshalJSON implements json.Marshaler using the wire shape from JSON.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.JSON())
}

// records never returns nil so an empty result renders as [] rather than
// null.
func (r Result) records() []any {
	if r.Records == nil {
		return []any{}
	}
	return r.Records
}
