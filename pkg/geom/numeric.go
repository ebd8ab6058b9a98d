package geom

import (
	"math"
	"strconv"

	"github.com/matzehuels/semichord/pkg/dataset"
)

// Numeric returns the numeric weight of a field value. Numbers are used as
// is, strings go through [NumericValue] and absent values count as 0.
func Numeric(v dataset.Value) float64 {
	if f, ok := v.Float(); ok {
		return f
	}
	return NumericValue(v.Text())
}

// NumericValue coerces a field value to a number. Numeric strings parse
// directly. Anything else has every character except digits and '.'
// removed and the longest leading number parsed, so "$1,234.50" is 1234.5
// and "12%" is 12. Nothing numeric yields 0.
func NumericValue(s string) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}

	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; (c >= '0' && c <= '9') || c == '.' {
			digits = append(digits, c)
		}
	}

	// Longest prefix of the form d*(.d*)? that contains a digit.
	end, dot, seen := 0, false, false
	for i, c := range digits {
		if c == '.' {
			if dot {
				break
			}
			dot = true
		} else {
			seen = true
		}
		end = i + 1
	}
	if !seen {
		return 0
	}
	f, err := strconv.ParseFloat(string(digits[:end]), 64)
	if err != nil {
		return 0
	}
	return f
}
