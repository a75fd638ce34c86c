// Package phonex converts the phone number formats parents and staff type
// into the canonical digit-only form the WhatsApp Cloud API accepts.
package phonex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// CountryCode is the calling code assumed for local numbers.
const CountryCode = "62"

var (
	indonesianMobile = regexp.MustCompile(`^628\d{8,11}$`)
	international    = regexp.MustCompile(`^[1-9]\d{9,14}$`)
)

// Normalize returns the canonical form of raw, e.g. "0812-3456-7890" and
// "+62 812 3456 7890" both become "6281234567890". ok is false when the
// result is not a deliverable number; callers must not send in that case.
func Normalize(raw string) (string, bool) {
	cleaned := clean(raw)

	// A leading '+' means the country code is already present; the API takes
	// digits only, so it is dropped for every country, not just 62.
	if strings.HasPrefix(cleaned, "+") {
		cleaned = cleaned[1:]
	} else {
		switch {
		case strings.HasPrefix(cleaned, "0"):
			cleaned = CountryCode + cleaned[1:]
		case strings.HasPrefix(cleaned, "8"):
			cleaned = CountryCode + cleaned
		}
	}

	if indonesianMobile.MatchString(cleaned) || international.MatchString(cleaned) {
		return cleaned, true
	}
	return "", false
}

// IsValid reports whether raw normalizes to a deliverable number.
func IsValid(raw string) bool {
	_, ok := Normalize(raw)
	return ok
}

// clean keeps digits and a leading '+'
func clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Info describes a normalized number.
type Info struct {
	Number   string `json:"number"`
	E164     string `json:"e164"`
	Region   string `json:"region,omitempty"`
	LineType string `json:"line_type,omitempty"`
	Valid    bool   `json:"valid"`
}

// Lookup normalizes raw and resolves its region and line type from the
// libphonenumber metadata. Valid reflects the metadata's opinion, which is
// stricter than Normalize.
func Lookup(raw string) (*Info, error) {
	number, ok := Normalize(raw)
	if !ok {
		return nil, fmt.Errorf("invalid phone number: %q", raw)
	}

	parsed, err := phonenumbers.Parse("+"+number, "")
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", number, err)
	}

	return &Info{
		Number:   number,
		E164:     phonenumbers.Format(parsed, phonenumbers.E164),
		Region:   phonenumbers.GetRegionCodeForNumber(parsed),
		LineType: lineType(phonenumbers.GetNumberType(parsed)),
		Valid:    phonenumbers.IsValidNumber(parsed),
	}, nil
}

func lineType(t phonenumbers.PhoneNumberType) string {
	switch t {
	case phonenumbers.MOBILE:
		return "mobile"
	case phonenumbers.FIXED_LINE:
		return "fixed_line"
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return "fixed_line_or_mobile"
	case phonenumbers.TOLL_FREE:
		return "toll_free"
	case phonenumbers.VOIP:
		return "voip"
	default:
		return "unknown"
	}
}
