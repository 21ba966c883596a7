package protocol

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Value holds the values of one query key in encounter order. A key seen once
// is a single value; a repeated key becomes a multiple value.
type Value struct {
	values []string
}

func (v Value) IsMultiple() bool {
	return len(v.values) > 1
}

// Single returns the value when the key occurred exactly once.
func (v Value) Single() (string, bool) {
	if len(v.values) != 1 {
		return "", false
	}
	return v.values[0], true
}

func (v Value) Values() []string {
	return slices.Clone(v.values)
}

// QueryString is the parsed form of a=1&b=2&b=3. It is read only after
// ParseQueryString returns.
type QueryString struct {
	data map[string]Value
}

// ParseQueryString splits s on '&' and each piece on its first '=' only, so
// "e===" yields key "e" with value "==". A piece without '=' maps to "".
func ParseQueryString(s string) *QueryString {
	data := make(map[string]Value)

	for _, piece := range strings.Split(s, "&") {
		key, val := piece, ""
		if i := strings.IndexByte(piece, '='); i >= 0 {
			key, val = piece[:i], piece[i+1:]
		}

		existing := data[key]
		existing.values = append(existing.values, val)
		data[key] = existing
	}

	return &QueryString{data: data}
}

func (q *QueryString) Get(key string) (Value, bool) {
	v, ok := q.data[key]
	return v, ok
}

func (q *QueryString) Len() int {
	return len(q.data)
}

// Keys returns the keys in lexical order.
func (q *QueryString) Keys() []string {
	keys := maps.Keys(q.data)
	slices.Sort(keys)
	return keys
}
