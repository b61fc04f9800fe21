package recommend

import (
	"strconv"
	"strings"
	"unicode"
)

// DataAllowance is the parsed form of a plan's free-text data field,
// e.g. "2GB/day" or "100MB".
type DataAllowance struct {
	Magnitude float64
	Unit      string
}

// ParseDataAllowance extracts the leading decimal magnitude and trailing
// unit from a data string. It returns ok=false when no numeric magnitude
// is present; callers must treat that as matching no scoring condition.
func ParseDataAllowance(raw string) (DataAllowance, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DataAllowance{}, false
	}

	var digits strings.Builder
	rest := ""
	seenDot := false
	for i, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
			continue
		}
		if r == '.' && !seenDot {
			seenDot = true
			digits.WriteRune(r)
			continue
		}
		rest = s[i:]
		break
	}

	magnitude, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return DataAllowance{}, false
	}

	return DataAllowance{
		Magnitude: magnitude,
		Unit:      strings.TrimSpace(rest),
	}, true
}

// ParseValidityDays extracts the leading integer day count from a validity
// string such as "28 days". It returns ok=false when the string does not
// begin with digits.
func ParseValidityDays(raw string) (int, bool) {
	s := strings.TrimSpace(raw)

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	days, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return days, true
}
