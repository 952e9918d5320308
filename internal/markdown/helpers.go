// Package markdown renders the trace model and asset map into the eight
// output Markdown files (index, metadata, timeline, errors, console,
// network, filmstrip, attachments) plus README. Every function here is a
// pure string producer: given a model.TraceContext and an asset map, it
// returns a complete file's contents.
package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// StripANSI removes ANSI color escape sequences from s, so console/error
// text from the browser displays cleanly inside Markdown.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// EscapePipes escapes literal "|" so a string can sit inside a Markdown
// table cell without breaking column alignment.
func EscapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// Truncate shortens s to at most n runes, appending an ellipsis marker
// when it does.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

var (
	anchorPunct = regexp.MustCompile(`[^\w\s-]`)
	anchorSpace = regexp.MustCompile(`\s`)
)

// GenerateAnchor produces a GitHub-flavored table-of-contents anchor:
// lowercase, drop anything that isn't a word character, whitespace, or
// hyphen, then replace each remaining whitespace character with a hyphen
// without collapsing runs.
func GenerateAnchor(s string) string {
	s = strings.ToLower(s)
	s = anchorPunct.ReplaceAllString(s, "")
	s = anchorSpace.ReplaceAllString(s, "-")
	return s
}

// FormatDuration renders a millisecond duration as a short human string
// ("123ms", "1.23s", "1m02s").
func FormatDuration(ms float64) string {
	if ms < 0 {
		ms = 0
	}
	switch {
	case ms < 1000:
		return fmt.Sprintf("%dms", int64(ms))
	case ms < 60000:
		return fmt.Sprintf("%.2fs", ms/1000)
	default:
		totalSec := int64(ms / 1000)
		m := totalSec / 60
		s := totalSec % 60
		return fmt.Sprintf("%dm%02ds", m, s)
	}
}

// FormatBytes renders a byte count using SI-ish units, matching the rest
// of the pack's use of dustin/go-humanize for human-facing sizes.
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// FormatRelativeMS renders the offset from a trace's start time (both in
// epoch milliseconds) as a short elapsed-time string.
func FormatRelativeMS(eventMS, startMS float64) string {
	return FormatDuration(eventMS - startMS)
}
