package transport

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ganot/tlink/internal/repository"
)

// Record is one string-keyed record of a TestLink response.
type Record map[string]any

// Has reports whether key is present.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the value at key rendered as text. Missing and nil values
// render as the empty string.
func (r Record) String(key string) string {
	return stringify(r[key])
}

// Flag reports whether the value at key is the service's "true" marker.
// TestLink encodes booleans as "1"/"0" in most responses and as real
// booleans in a few.
func (r Record) Flag(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	default:
		return stringify(v) == "1"
	}
}

// Result is the uniform shape of every raw response: the decoded records,
// plus the raw value for responses that are not record-shaped.
type Result struct {
	Raw     any
	Records []Record
}

// Decode normalizes a raw response. A bare record becomes a one-element
// record list; a list keeps its record elements in order; anything else is
// kept only as Raw.
func Decode(raw any) Result {
	res := Result{Raw: raw}
	switch v := raw.(type) {
	case map[string]any:
		res.Records = []Record{Record(v)}
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				res.Records = append(res.Records, Record(m))
			}
		}
	}
	return res
}

// Err returns a RemoteError when the response has the error shape: its first
// record carries a message field.
func (r Result) Err() error {
	if len(r.Records) == 0 {
		return nil
	}
	first := r.Records[0]
	if first.Has("message") {
		return &repository.RemoteError{Message: first.String("message")}
	}
	return nil
}

// First returns the first record.
func (r Result) First() (Record, bool) {
	if len(r.Records) == 0 {
		return nil, false
	}
	return r.Records[0], true
}

// Keys returns the keys of an id-keyed map response in ascending order.
// Numeric keys sort numerically.
func (r Result) Keys() []string {
	m, ok := r.Raw.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortIDs(keys)
	return keys
}

// Values flattens an id-keyed map response into records ordered by key.
// List responses are returned as decoded.
func (r Result) Values() []Record {
	m, ok := r.Raw.(map[string]any)
	if !ok {
		return r.Records
	}
	var out []Record
	for _, k := range r.Keys() {
		if rec, ok := m[k].(map[string]any); ok {
			out = append(out, Record(rec))
		}
	}
	return out
}

// Scalar renders a non-record response as text.
func (r Result) Scalar() string {
	return stringify(r.Raw)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func sortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, aErr := strconv.ParseInt(ids[i], 10, 64)
		b, bErr := strconv.ParseInt(ids[j], 10, 64)
		if aErr == nil && bErr == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})
}
