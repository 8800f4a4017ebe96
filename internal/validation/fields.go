package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// FromValues flattens form-encoded data into the untyped field map Validate expects.
func FromValues(values url.Values) map[string]any {
	fields := make(map[string]any, len(values))
	for k := range values {
		fields[k] = values.Get(k)
	}
	return fields
}

// text reads a scalar field. Arrays and objects read as empty so they fail
// their rule instead of passing as Go-formatted text.
func text(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	case []any, map[string]any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// number reads an integer field. Values that are not whole numbers read as 0,
// which fails the minimum-count rule instead of being silently rounded.
func number(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v != math.Trunc(v) {
			return 0
		}
		return int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// flag reads a checkbox field. HTML checkboxes post "on" when ticked.
func flag(fields map[string]any, key string) bool {
	switch v := fields[key].(type) {
	case bool:
		return v
	case string:
		if strings.EqualFold(v, "on") {
			return true
		}
		b, err := strconv.ParseBool(v)
		return err == nil && b
	}
	return false
}
