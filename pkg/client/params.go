package client

import (
	"fmt"
	"net/url"
	"strconv"
)

// Params holds query parameters for an upstream request. Values are scalars
// (string or numeric); nil and empty-string values are never transmitted.
type Params map[string]any

// Clone returns a shallow copy of the parameter set. The paginator clones
// params before stamping chunk-specific values so callers never observe
// cross-chunk mutation.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Values serializes the parameters as URL query values, dropping absent
// entries.
func (p Params) Values() url.Values {
	values := url.Values{}
	for k, v := range p {
		s := formatScalar(v)
		if s == "" {
			continue
		}
		values.Set(k, s)
	}
	return values
}

// formatScalar renders a parameter value the way the upstream expects:
// integers without an exponent, floats in plain decimal notation.
func formatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
