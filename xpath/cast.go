package xpath

import (
	"math"
	"strconv"
	"strings"
)

// toString renders an atomic value the way the string() function
// does. Numbers drop their decimal point when they hold an integral
// value; NaN and the infinities use the spelling of the query
// language, not the Go one.
func toString(value any) string {
	switch value := value.(type) {
	case string:
		return value
	case float64:
		return formatNumber(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

// toFloat converts an atomic value to a number. Values that can not
// be parsed become NaN, never an error.
func toFloat(value any) float64 {
	switch value := value.(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case int64:
		return float64(value)
	case bool:
		if value {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func toBool(value any) bool {
	switch value := value.(type) {
	case bool:
		return value
	case string:
		return value != ""
	case float64:
		return value != 0 && !math.IsNaN(value)
	case int:
		return value != 0
	case int64:
		return value != 0
	default:
		return false
	}
}

// stringValue coerces a sequence to a string: the string value of the
// first node in document order, or the atomic value itself. An empty
// sequence gives the empty string.
func stringValue(seq Sequence) string {
	if seq.Empty() {
		return ""
	}
	first := seq[0]
	if !first.Atomic() {
		ordered := seq.DocumentOrder()
		return ordered[0].Node().Value()
	}
	return toString(first.Value())
}

func numberValue(seq Sequence) float64 {
	if seq.Empty() {
		return math.NaN()
	}
	if !seq[0].Atomic() {
		return toFloat(stringValue(seq))
	}
	return toFloat(seq[0].Value())
}

// booleanValue is the effective boolean value of a sequence: a node
// set is true when non empty, atomic values follow their own rules.
func booleanValue(seq Sequence) bool {
	if seq.Empty() {
		return false
	}
	if !seq[0].Atomic() {
		return true
	}
	return toBool(seq[0].Value())
}

func formatNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
}
