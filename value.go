package shapecheck

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Normalize coerces v into the canonical JSON-shaped representation: nil,
// bool, int64, float64, string, []any, map[string]any. Integral numbers stay
// integral and fractional numbers become float64, preserving the int/float
// distinction the primitive schemas depend on. Containers are copied one
// level per recursion; values already canonical are returned as-is. Values of
// unrecognized types pass through untouched and will fail type dispatch
// downstream.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case bool, string, int64, float64:
		return x
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return normalizeUint(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return normalizeUint(x)
	case float32:
		return float64(x)
	case json.Number:
		if n, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(string(x), 64); err == nil {
			return f
		}
		return string(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		// Some decoders key mappings by any; stringify for canonical form.
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	default:
		return v
	}
}

func normalizeUint(x uint64) any {
	if x > math.MaxInt64 {
		return float64(x)
	}
	return int64(x)
}

// valueDepth reports the container nesting depth of v; scalars are depth
// zero. Used to enforce MaxDepth on inputs decoded outside the token path.
func valueDepth(v any) int {
	switch x := v.(type) {
	case []any:
		deepest := 0
		for _, item := range x {
			if d := valueDepth(item); d > deepest {
				deepest = d
			}
		}
		return deepest + 1
	case map[string]any:
		deepest := 0
		for _, item := range x {
			if d := valueDepth(item); d > deepest {
				deepest = d
			}
		}
		return deepest + 1
	default:
		return 0
	}
}
