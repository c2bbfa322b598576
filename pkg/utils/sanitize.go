package utils

import (
	"regexp"
	"strings"
)

// --- Problem-Code Sanitization ---
var invalidPathChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`) // Characters invalid in Windows/Unix filenames
var consecutiveUnderscores = regexp.MustCompile(`_+`)              // Pattern to replace multiple underscores with one
const maxComponentLength = 100                                     // Max length for a sanitized path component

// SanitizeProblemCode cleans a problem code scraped from page text so it is
// safe to use as a directory or file name component
func SanitizeProblemCode(code string) string {
	sanitized := invalidPathChars.ReplaceAllString(code, "_")           // Replace invalid chars with underscore
	sanitized = consecutiveUnderscores.ReplaceAllString(sanitized, "_") // Collapse multiple underscores
	sanitized = strings.Trim(sanitized, "_ ")                           // Remove leading/trailing underscores or spaces

	if len(sanitized) > maxComponentLength {
		sanitized = sanitized[:maxComponentLength]
		sanitized = strings.Trim(sanitized, "_ ")
	}

	if sanitized == "" { // Handle cases where sanitization results in an empty string
		sanitized = "unknown"
	}
	return sanitized
}

var whitespaceRun = regexp.MustCompile(` +`)

// CleanText collapses whitespace runs, drops non-ASCII bytes and trims the
// result. Mirrors how page text is normalized before it becomes a field value
func CleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' {
			continue
		}
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(b.String(), " "))
}
