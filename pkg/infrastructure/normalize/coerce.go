package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// pick returns the first present, non-nil value among the candidate keys.
// The candidate order is the tolerance contract: earlier keys win.
func pick(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// ToDecimal coerces a loosely-typed numeric value. Strings tolerate
// surrounding whitespace and comma decimal separators ("12,50"). Anything
// unparseable yields zero; the source data is externally supplied and
// inconsistently shaped, so degradation beats rejection here.
func ToDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), " ", "")
		s = strings.ReplaceAll(s, ",", ".")
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// ToInt64 coerces a loosely-typed value to an integer, zero on failure.
func ToInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return i
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// ToString coerces a value to its display string, empty for nil.
func ToString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// ToBool coerces a loosely-typed flag: booleans pass through, numbers are
// true when non-zero, strings accept the usual spellings.
func ToBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case int:
		return b != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes", "si", "sì":
			return true
		}
		return false
	default:
		return false
	}
}

// asMap narrows a decoded JSON value to an object, nil otherwise.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asList narrows a decoded JSON value to an array, nil otherwise.
func asList(v any) []any {
	l, _ := v.([]any)
	return l
}
