package tabular

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// TryParseFiniteNumber is the one numeric coercion rule of the pipeline.
// Numbers must be finite; strings must parse completely after trimming.
// Booleans, nil, arrays and objects are never numeric.
func TryParseFiniteNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, isFinite(n)
	case float32:
		f := float64(n)
		return f, isFinite(f)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !isFinite(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsPresent reports whether a value counts as non-empty: not nil and not "".
func IsPresent(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// CoerceCell converts a text cell into a float64 when it is a finite number,
// otherwise it returns the string unchanged.
func CoerceCell(s string) any {
	if s == "" {
		return s
	}
	if f, ok := TryParseFiniteNumber(s); ok {
		return f
	}
	return s
}

// FormatLabel converts a raw value into an axis label without locale rules.
func FormatLabel(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = FormatLabel(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(x)
	}
}

// ValueKey returns an equality key for a raw value. Values of different kinds
// never collide, so the number 1 and the string "1" are distinct.
func ValueKey(v any) string {
	switch x := v.(type) {
	case string:
		return "s:" + x
	case float64:
		return "n:" + strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return "b:" + strconv.FormatBool(x)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = ValueKey(item)
		}
		return "a:[" + strings.Join(parts, "|") + "]"
	case map[string]any:
		keys := sortedKeys(x)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + ValueKey(x[k])
		}
		return "o:{" + strings.Join(parts, "|") + "}"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T:%v", x, x)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
