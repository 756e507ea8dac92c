// Package normalize cleans chat-surface text before any matching or
// embedding. Chat messages arrive with emoji, direction-control marks, and
// full-width spacing that only add noise to similarity search.
package normalize

import (
	"regexp"
	"strings"
)

var (
	// Emoji blocks commonly seen in chat messages: emoticons, symbols &
	// pictographs, transport & map symbols, regional indicator flags.
	emojiRe = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}]+`)

	// Bidi and direction-control marks that copy in from rich-text sources.
	bidiRe = regexp.MustCompile(`[\x{200E}\x{200F}\x{202A}-\x{202E}\x{2066}-\x{2069}]`)

	spaceRunRe = regexp.MustCompile(` +`)
)

// CleanControls strips direction-control characters, converts full-width
// spaces to half-width, collapses space runs, and trims. Unlike Normalize
// it keeps emoji: this is the ingestion-side cleanup, where stored content
// should stay as the author wrote it.
func CleanControls(text string) string {
	cleaned := bidiRe.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, "　", " ")
	cleaned = spaceRunRe.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Normalize strips emoji and direction-control characters, flattens
// newlines, converts full-width spaces to half-width, collapses space runs,
// and trims. Pure and total: never fails, may return "".
func Normalize(text string) string {
	cleaned := emojiRe.ReplaceAllString(text, "")
	cleaned = bidiRe.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, "　", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = spaceRunRe.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
