package phone

import (
	"github.com/nyaruka/phonenumbers"
)

// Normalize parses a raw phone number and returns it in E.164 format.
// defaultRegion supplies the country for national-format input (e.g. "IN").
// Returns ("", false) when the number does not parse or is not valid.
func Normalize(raw, defaultRegion string) (string, bool) {
	num, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}

// Mask redacts the middle of a phone number for logging (e.g. +91*******210).
// Full phone numbers are never logged.
func Mask(p string) string {
	if len(p) < 6 {
		return "***"
	}
	return p[:3] + "*******" + p[len(p)-3:]
}
