package crawlers

import (
	"net/url"
	"strings"

	"github.com/dope-playground/brandscout/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// DiscoverLinks resolves anchors against pageURL and keeps those whose
// absolute URL starts with baseURL. The first occurrence of each URL wins.
//
// The baseURL check is a plain string prefix, so https://example.com also
// admits https://example.com-other.net. Callers that need a strict origin
// comparison must filter the result themselves.
func DiscoverLinks(anchors []RawAnchor, pageURL, baseURL string) []models.DiscoveredLink {
	links := make([]models.DiscoveredLink, 0, len(anchors))

	base, err := url.Parse(pageURL)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("cannot parse page URL, no links discovered")
		return links
	}

	seen := make(map[string]bool, len(anchors))
	for _, a := range anchors {
		abs, ok := resolveLink(base, a.Href)
		if !ok {
			continue
		}
		if !strings.HasPrefix(abs, baseURL) {
			continue
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true

		links = append(links, models.DiscoveredLink{
			URL:   abs,
			Text:  collapseSpace(a.Text),
			Title: collapseSpace(a.Title),
		})
	}
	return links
}

// resolveLink turns href into an absolute http(s) URL.
func resolveLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(html.UnescapeString(href))
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	if abs.Host == "" {
		return "", false
	}
	return abs.String(), true
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
