package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"jobsearch-engine/internal/domain"
)

var zipRe = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

var usStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming", "PR": "Puerto Rico",
}

// StateName returns the full name for a two-letter US state code.
func StateName(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if len(code) != 2 {
		return "", false
	}
	name, ok := usStates[strings.ToUpper(code)]
	return name, ok
}

// ParseLocation splits "City, ST, ZIP, Country" style text into parts.
// At most four comma separated segments are considered.
func ParseLocation(s string) domain.Location {
	var loc domain.Location
	s = CleanWhitespace(s)
	if s == "" {
		return loc
	}

	raw := strings.Split(s, ",")
	parts := make([]string, 0, 4)
	for _, p := range raw {
		if len(parts) == 4 {
			break
		}
		parts = append(parts, strings.TrimSpace(p))
	}

	loc.City = parts[0]

	if len(parts) > 1 && parts[1] != "" {
		switch name, ok := StateName(parts[1]); {
		case ok:
			loc.State = name
		case len(parts) == 2:
			loc.Country = parts[1]
		default:
			loc.State = parts[1]
		}
	}

	if len(parts) > 2 && parts[2] != "" {
		if zipRe.MatchString(parts[2]) {
			loc.Zip = parts[2]
		} else {
			loc.Country = parts[2]
		}
	}

	if len(parts) > 3 && parts[3] != "" {
		switch {
		case zipRe.MatchString(parts[3]):
			if loc.Zip == "" {
				loc.Zip = parts[3]
			}
		case isAlphabetic(parts[3]):
			if loc.Country == "" {
				loc.Country = parts[3]
			}
		}
	}

	return loc
}

func isAlphabetic(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case r == ' ' || r == '.' || r == '-':
		default:
			return false
		}
	}
	return hasLetter
}

// LooksRemote reports whether free text advertises remote work.
func LooksRemote(texts ...string) bool {
	for _, t := range texts {
		low := strings.ToLower(t)
		if strings.Contains(low, "remote") || strings.Contains(low, "anywhere") {
			return true
		}
	}
	return false
}
