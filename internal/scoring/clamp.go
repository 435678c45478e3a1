package scoring

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Clamp coerces value to a float64 bounded to [min, max].
// Values that cannot be read as a number, and NaN, yield min.
func Clamp(value any, min, max float64) float64 {
	v, ok := toFloat(value)
	if !ok || math.IsNaN(v) {
		return min
	}
	return clamp(v, min, max)
}

func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case json.Number:
		return parseFloat(string(v))
	case string:
		return parseFloat(strings.TrimSpace(v))
	default:
		return 0, false
	}
}

// parseFloat accepts decimal floats, keeping ±Inf on overflow. Hex floats
// are rejected.
func parseFloat(s string) (float64, bool) {
	if hasHexPrefix(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return f, true
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return f, true
	}
	return 0, false
}

func hasHexPrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// field is the single lookup-with-default over raw input maps.
func field(raw map[string]any, key string, def any) any {
	if v, ok := raw[key]; ok {
		return v
	}
	return def
}

// numberField reads key from raw and clamps it, using def when the key is absent.
func numberField(raw map[string]any, key string, def, min, max float64) float64 {
	return Clamp(field(raw, key, def), min, max)
}

// stringField reads key from raw; absent or non-string values yield def.
func stringField(raw map[string]any, key, def string) string {
	if s, ok := field(raw, key, def).(string); ok {
		return s
	}
	return def
}
