package render

import "regexp"

// url( <quote>? <body> <quote>? ). Kept as regexes (rather than a full CSS
// tokenizer) so behavior on malformed or partial CSS stays predictable.
// Go's regexp (RE2) has no backreferences, so "matching quote must be
// closed" cannot be expressed as one pattern — one alternative per quote
// style instead.
var (
	cssURLDoubleQuoted = regexp.MustCompile(`url\(\s*"([^"]*)"\s*\)`)
	cssURLSingleQuoted = regexp.MustCompile(`url\(\s*'([^']*)'\s*\)`)
	cssURLUnquoted     = regexp.MustCompile(`url\(\s*([^'")\s][^)]*?)\s*\)`)
)

// rewriteCSSURLs rewrites every url(...) occurrence in css using rw to
// resolve each URL body, emitting the result in single-quoted form:
// url('<rewritten>').
func rewriteCSSURLs(css string, rw func(string) string) string {
	rewrite := func(re *regexp.Regexp) func(string) string {
		return func(m string) string {
			sub := re.FindStringSubmatch(m)
			return "url('" + rw(sub[1]) + "')"
		}
	}
	// Quoted forms first so quoted bodies containing ')' aren't clipped
	// by the unquoted pattern.
	out := cssURLDoubleQuoted.ReplaceAllStringFunc(css, rewrite(cssURLDoubleQuoted))
	out = cssURLSingleQuoted.ReplaceAllStringFunc(out, rewrite(cssURLSingleQuoted))
	out = cssURLUnquoted.ReplaceAllStringFunc(out, rewrite(cssURLUnquoted))
	return out
}
