package crawlers

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// minImageURLLength drops values too short to be a real image reference.
const minImageURLLength = 5

var cssURLRe = regexp.MustCompile(`url\(\s*['"]?([^'")]+?)['"]?\s*\)`)

// CSSURLs returns every url(...) reference in a CSS value or stylesheet.
func CSSURLs(css string) []string {
	var out []string
	for _, m := range cssURLRe.FindAllStringSubmatch(css, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// FilterImageURLs resolves raw image references against pageURL and drops
// data: URIs, trivially short values, non-http(s) results and duplicates.
// Discovery order is kept.
func FilterImageURLs(raw []string, pageURL string) []string {
	out := make([]string, 0, len(raw))
	base, err := url.Parse(pageURL)
	if err != nil {
		return out
	}

	seen := make(map[string]bool, len(raw))
	for _, src := range raw {
		src = strings.TrimSpace(html.UnescapeString(src))
		if len(src) < minImageURLLength || strings.HasPrefix(strings.ToLower(src), "data:") {
			continue
		}
		abs, ok := resolveLink(base, src)
		if !ok || seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
	}
	return out
}

// DedupeStrings keeps the first occurrence of each value.
func DedupeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
