package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Text collapses line breaks and runs of spaces and NFC-normalizes, so the
// same title typed or scraped twice compares equal.
func Text(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
