package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders f the way the legacy data files store numbers:
// shortest round-trip decimal, a trailing ".0" on integral values, and
// exponent notation only below 1e-4 or at/above 1e16.
// Examples: 2 -> "2.0", 0.25 -> "0.25", 0.00001 -> "1e-05", 1e16 -> "1e+16"
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}

// FormatPoints renders data points as a bracketed list.
// Example: [1, 2.5] -> "[1.0, 2.5]"
func FormatPoints(points []float64) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = FormatFloat(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatOptional renders an optional statistic, "N/A" when absent.
// A negative decimals keeps full precision.
func FormatOptional(v *float64, decimals int) string {
	if v == nil {
		return "N/A"
	}
	return FormatFixed(*v, decimals)
}

// FormatFixed renders v with the given number of decimals.
// A negative decimals keeps full precision.
func FormatFixed(v float64, decimals int) string {
	if decimals < 0 {
		return FormatFloat(v)
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

// JSONFloat is a float64 that encodes NaN and ±Inf as JSON null, since JSON
// numbers cannot represent them.
type JSONFloat float64

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.AppendFloat(nil, v, 'e', -1, 64), nil
	}
	return strconv.AppendFloat(nil, v, 'f', -1, 64), nil
}

// JSONFloats converts points for JSON output. nil becomes an empty slice.
func JSONFloats(points []float64) []JSONFloat {
	out := make([]JSONFloat, len(points))
	for i, p := range points {
		out[i] = JSONFloat(p)
	}
	return out
}

// JSONOptional converts an optional value for JSON output.
func JSONOptional(v *float64) *JSONFloat {
	if v == nil {
		return nil
	}
	f := JSONFloat(*v)
	return &f
}
