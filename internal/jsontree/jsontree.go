// Package jsontree searches decoded JSON documents.
//
// Vendor responses are only partially modeled, so IDs generated by the APIs
// are mined from the generic form: objects are map[string]any, arrays are
// []any and numbers are json.Number.
package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Decode converts any JSON-marshalable value into its generic tree form.
func Decode(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	return Parse(data)
}

// Parse decodes raw JSON into the generic tree form.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	return tree, nil
}

// All returns every value stored under key. Arrays are visited in order and
// object keys in sorted order, the order encoding/json writes them. A matched
// value is not searched any further, its sibling values are.
func All(tree any, key string) []any {
	var out []any
	var find func(node any)
	find = func(node any) {
		switch n := node.(type) {
		case map[string]any:
			for _, k := range slices.Sorted(maps.Keys(n)) {
				if k == key {
					out = append(out, n[k])
				} else {
					find(n[k])
				}
			}
		case []any:
			for _, item := range n {
				find(item)
			}
		}
	}
	find(tree)
	return out
}

// First returns the first value stored under key.
func First(tree any, key string) (any, bool) {
	all := All(tree, key)
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

// Chunks returns every object holding key with a value equal to want.
// Numbers are compared by their textual form, so an int sheet id matches a
// decoded json.Number.
func Chunks(tree any, key string, want any) []map[string]any {
	var out []map[string]any
	walk(tree, func(obj map[string]any) bool {
		if v, ok := obj[key]; ok && equal(v, want) {
			out = append(out, obj)
			return false
		}
		return true
	})
	return out
}

// ChunksWithKey returns every object that holds key.
func ChunksWithKey(tree any, key string) []map[string]any {
	var out []map[string]any
	walk(tree, func(obj map[string]any) bool {
		if _, ok := obj[key]; ok {
			out = append(out, obj)
			return false
		}
		return true
	})
	return out
}

// Pairs maps obj[from] to obj[to] for every object holding both keys. Such
// an object is not searched any further. Keys are rendered with fmt so
// non-string values still produce a usable map.
func Pairs(tree any, from, to string) map[string]any {
	out := make(map[string]any)
	walk(tree, func(obj map[string]any) bool {
		k, okFrom := obj[from]
		v, okTo := obj[to]
		if okFrom && okTo {
			out[fmt.Sprint(k)] = v
			return false
		}
		return true
	})
	return out
}

// Int64 converts a decoded scalar into an int64.
func Int64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		return int64(n), n == float64(int64(n))
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

// String converts a decoded scalar into a string.
func String(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	}
	return "", false
}

// walk visits every object depth first. visit returns false to stop the
// descent into that object.
func walk(node any, visit func(map[string]any) bool) {
	switch n := node.(type) {
	case map[string]any:
		if !visit(n) {
			return
		}
		for _, k := range slices.Sorted(maps.Keys(n)) {
			walk(n[k], visit)
		}
	case []any:
		for _, item := range n {
			walk(item, visit)
		}
	}
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
