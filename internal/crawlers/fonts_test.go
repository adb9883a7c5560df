package crawlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterFonts(t *testing.T) {
	declarations := []string{
		`"Open Sans", Arial, sans-serif`,
		`Lato, -apple-system, BlinkMacSystemFont, "Segoe UI"`,
		`'Font Awesome 5 Free'`,
		`Brandon, serif`,
		`open sans`,
		`var(--heading-font), inherit`,
		`"Gilroy-Bold" !important`,
		`dashicons`,
		``,
	}

	got := FilterFonts(declarations)

	assert.Equal(t, []string{"Open Sans", "Lato", "Gilroy-Bold", "Brandon"}, got)
}

func TestFilterFonts_Empty(t *testing.T) {
	got := FilterFonts(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCSSURLs(t *testing.T) {
	css := `background-image: url("https://x.com/a.jpg"), url( 'b.png' ), url(c.webp)`
	assert.Equal(t, []string{"https://x.com/a.jpg", "b.png", "c.webp"}, CSSURLs(css))
}

func TestFilterImageURLs(t *testing.T) {
	raw := []string{
		"/img/logo.png",
		"data:image/png;base64,AAAA",
		"a.gi",
		"https://cdn.x.com/hero.jpg",
		"/img/logo.png",
		"javascript:alert(1)",
		"photos/team.jpg?w=200&amp;h=100",
	}

	got := FilterImageURLs(raw, "https://x.com/about/")

	assert.Equal(t, []string{
		"https://x.com/img/logo.png",
		"https://cdn.x.com/hero.jpg",
		"https://x.com/about/photos/team.jpg?w=200&h=100",
	}, got)
}

func TestDedupeStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, DedupeStrings([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, DedupeStrings(nil))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "héllo", truncateRunes("héllo", 10))
	assert.Equal(t, "héllo", truncateRunes("héllo", 0))
}
