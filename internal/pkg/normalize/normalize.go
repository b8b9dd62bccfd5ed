// Package normalize coerces loosely-typed request values (decoded JSON) into
// the shapes stored in the database.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// firstNumberRe matches the first signed decimal in a string once thousands
// separators are removed ("보증금 3,000" -> "3000").
var firstNumberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ToNull returns nil for nil or "" and v unchanged otherwise.
func ToNull(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	return v
}

// ToText is ToNull for text columns: non-string scalars are rendered with %v.
func ToText(v interface{}) *string {
	v = ToNull(v)
	if v == nil {
		return nil
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = fmt.Sprintf("%v", x)
	}
	return &s
}

// ToNumLoose extracts the first number found in v. Only the first numeric run
// is used, so " 1 200 " yields 1. Returns nil when nothing numeric is found or
// the value is not finite.
func ToNumLoose(v interface{}) *float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		m := firstNumberRe.FindString(strings.ReplaceAll(x, ",", ""))
		if m == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return ToNumLoose(fmt.Sprintf("%v", x))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ToBool is a truthiness cast: false for nil, false, 0, NaN and "";
// true for everything else (including the string "false").
func ToBool(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case int64:
		return x != 0
	}
	return true
}
