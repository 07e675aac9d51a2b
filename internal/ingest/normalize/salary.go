package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var salaryRe = regexp.MustCompile(
	`\$\s?([\d,]+(?:\.\d+)?)\s*([kK])?(?:\s*(?:-|–|to)\s*\$?\s?([\d,]+(?:\.\d+)?)\s*([kK])?)?(?:\s*([A-Z]{3})\b)?`,
)

type Salary struct {
	Min      *float64
	Max      *float64
	Currency string
}

// ParseSalaryText reads "$<min>[ - $<max>][ CUR]" from free text, e.g.
// "$90,000 - $120,000 USD" or "$80k-$100k". ok is false when nothing matched.
func ParseSalaryText(s string) (Salary, bool) {
	m := salaryRe.FindStringSubmatch(s)
	if m == nil {
		return Salary{}, false
	}
	var out Salary
	if v, ok := salaryAmount(m[1], m[2]); ok {
		out.Min = &v
	} else {
		return Salary{}, false
	}
	if m[3] != "" {
		suffix := m[4]
		if suffix == "" && m[2] != "" {
			suffix = m[2]
		}
		if v, ok := salaryAmount(m[3], suffix); ok {
			out.Max = &v
		}
	}
	out.Currency = m[5]
	return out, true
}

func salaryAmount(digits, suffix string) (float64, bool) {
	digits = strings.ReplaceAll(digits, ",", "")
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	if suffix != "" {
		v *= 1000
	}
	return v, true
}
