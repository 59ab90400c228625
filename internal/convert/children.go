package convert

import (
	"slices"
	"strconv"
)

// pair is one normalized child entry: an object key or stringified
// array index with its value.
type pair struct {
	key   string
	value any
}

// childPairs normalizes a container into ordered (key, value) pairs and
// reports whether the value is a container at all. Object keys are
// sorted lexicographically so output is stable regardless of input key
// order; array elements keep positional order.
func childPairs(value any) ([]pair, bool) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		pairs := make([]pair, 0, len(keys))
		for _, key := range keys {
			pairs = append(pairs, pair{key: key, value: v[key]})
		}
		return pairs, true
	case []any:
		pairs := make([]pair, 0, len(v))
		for i, item := range v {
			pairs = append(pairs, pair{key: strconv.Itoa(i), value: item})
		}
		return pairs, true
	default:
		return nil, false
	}
}
