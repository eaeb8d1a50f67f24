package timestamp

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// plainRe matches bare seconds: "12", "12.5", ".5".
	plainRe = regexp.MustCompile(`^(?:\d+|\d+\.\d+|\.\d+)$`)
	// clockRe matches "[minutes:]seconds[.fraction]".
	clockRe = regexp.MustCompile(`^(?:(\d+):)?(\d+)(\.\d+)?$`)
)

// Parse converts user input into seconds rounded to milliseconds.
// It reports false when the input matches neither accepted form or the
// value does not fit in a float64.
func Parse(input string) (float64, bool) {
	s := strings.TrimSpace(input)

	if plainRe.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return Round(v), true
	}

	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	minutes := 0.0
	if m[1] != "" {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		minutes = n
	}
	seconds, err := strconv.ParseFloat(m[2]+m[3], 64)
	if err != nil {
		return 0, false
	}
	v := Round(minutes*60 + seconds)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Round rounds to 3 decimal places, half-to-even on the exact binary value.
func Round(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 3, 64), 64)
	return r
}

// Format renders seconds with exactly 3 decimal digits.
func Format(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
