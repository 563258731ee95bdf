package utils

import (
	"strings"

	"rebelcal/src-server/normalize"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// same as normalize.Text, the store keys on it
func CleanupString(s string) string {
	return normalize.Text(s)
}

// CleanupOptional is CleanupString for optional fields; blank becomes nil.
func CleanupOptional(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := CleanupString(*s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// "MEN'S BASKETBALL" -> "Men's Basketball", remove trailing period
func TitleCase(s string) string {
	s = CleanupString(s)
	s = cases.Title(language.English).String(strings.ToLower(s))
	s = strings.TrimSuffix(s, ".")
	return s
}
