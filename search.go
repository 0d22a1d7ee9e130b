package nextract

import (
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Match is a single hit produced by a search over a report.
type Match struct {
	// Result is the index of the ParsedResult the value came from.
	Result int `json:"result"`

	// Path is the dotted path to the value, e.g. "product.price".
	// Array elements contribute their numeric index.
	Path string `json:"path"`

	// Value is the matched value.
	Value any `json:"value"`
}

// Search returns the values stored under key across all parsed results in
// the report. Shallow search inspects only the top-level keys of each
// object (and of objects inside a top-level array); deep search walks
// nested structures. The sequence is lazy and restartable, and the walk is
// read-only. Object keys are visited in sorted order so match order is
// deterministic.
func (r *ExtractionReport) Search(key string, deep bool) iter.Seq[Match] {
	return r.search(func(k string) bool { return k == key }, deep)
}

// FindPattern returns every match whose key contains pattern,
// case-insensitively. The walk is always deep.
func (r *ExtractionReport) FindPattern(pattern string) []Match {
	needle := strings.ToLower(pattern)
	match := func(k string) bool { return strings.Contains(strings.ToLower(k), needle) }
	return slices.Collect(r.search(match, true))
}

// Keys returns a census of object keys across all parsed results, mapping
// key name to occurrence count. maxDepth bounds the walk; zero or negative
// means unlimited. Top-level keys are at depth 1.
func (r *ExtractionReport) Keys(maxDepth int) map[string]int {
	counts := make(map[string]int)
	for _, res := range r.Results {
		countKeys(res.Value, 1, maxDepth, counts)
	}
	return counts
}

func (r *ExtractionReport) search(match func(string) bool, deep bool) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		for i, res := range r.Results {
			if !searchValue(i, "", res.Value, match, deep, 0, yield) {
				return
			}
		}
	}
}

func searchValue(result int, path string, v any, match func(string) bool, deep bool, depth int, yield func(Match) bool) bool {
	switch val := v.(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(val)) {
			child := val[k]
			if match(k) {
				if !yield(Match{Result: result, Path: joinPath(path, k), Value: child}) {
					return false
				}
			}
			if deep {
				if !searchValue(result, joinPath(path, k), child, match, deep, depth+1, yield) {
					return false
				}
			}
		}
	case []any:
		// Arrays are transparent at the top level: a shallow search
		// still sees the top-level keys of objects inside them.
		if !deep && depth > 0 {
			return true
		}
		for i, child := range val {
			if !searchValue(result, joinPath(path, strconv.Itoa(i)), child, match, deep, depth, yield) {
				return false
			}
		}
	}
	return true
}

func countKeys(v any, depth, maxDepth int, counts map[string]int) {
	if maxDepth > 0 && depth > maxDepth {
		return
	}
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			counts[k]++
			countKeys(child, depth+1, maxDepth, counts)
		}
	case []any:
		for _, child := range val {
			countKeys(child, depth, maxDepth, counts)
		}
	}
}

func joinPath(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}
