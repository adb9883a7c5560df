package crawlers

import (
	"strings"
)

// genericFonts are CSS generic families and browser/OS system fonts.
var genericFonts = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "ui-serif": true, "ui-sans-serif": true,
	"ui-monospace": true, "ui-rounded": true, "math": true, "emoji": true,
	"fangsong": true, "inherit": true, "initial": true, "unset": true,
	"revert": true, "revert-layer": true, "-apple-system": true,
	"blinkmacsystemfont": true, "segoe ui": true, "segoe ui emoji": true,
	"segoe ui symbol": true, "apple color emoji": true, "noto color emoji": true,
	"helvetica": true, "helvetica neue": true, "arial": true, "times": true,
	"times new roman": true, "courier": true, "courier new": true,
	"verdana": true, "tahoma": true, "georgia": true, "sfmono-regular": true,
	"menlo": true, "monaco": true, "consolas": true, "liberation sans": true,
	"liberation mono": true, "dejavu sans": true, "ubuntu": true,
	"cantarell": true, "oxygen": true, "oxygen-sans": true, "fira sans": true,
	"droid sans": true, "lucida grande": true, "trebuchet ms": true,
}

// iconFontMarkers identify icon fonts by substring.
var iconFontMarkers = []string{
	"awesome", "icon", "glyph", "material symbols", "dashicons", "eicons",
	"ionicons", "feather", "fontello", "icomoon", "simple-line", "themify",
	"elementskit", "slick", "swiper", "revicons", "etmodules",
}

// knownBrandFonts are web fonts commonly chosen as brand typography.
var knownBrandFonts = map[string]bool{
	"montserrat": true, "roboto": true, "open sans": true, "lato": true,
	"poppins": true, "raleway": true, "oswald": true, "playfair display": true,
	"merriweather": true, "nunito": true, "source sans pro": true,
	"work sans": true, "inter": true, "rubik": true, "barlow": true,
	"josefin sans": true, "bebas neue": true, "dm sans": true, "mulish": true,
	"quicksand": true, "karla": true, "archivo": true, "manrope": true,
	"futura": true, "proxima nova": true, "avenir": true, "gotham": true,
}

// FilterFonts splits raw font-family declarations into family names, drops
// generic, system and icon fonts, deduplicates case-insensitively and moves
// likely brand fonts (multi-word, hyphenated or well known) to the front.
func FilterFonts(declarations []string) []string {
	var promoted, rest []string
	seen := make(map[string]bool)

	for _, decl := range declarations {
		for _, family := range strings.Split(decl, ",") {
			name := cleanFontName(family)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] || genericFonts[key] || isIconFont(key) || strings.HasPrefix(key, "var(") {
				continue
			}
			seen[key] = true

			if isLikelyBrandFont(key) {
				promoted = append(promoted, name)
			} else {
				rest = append(rest, name)
			}
		}
	}

	return append(append(make([]string, 0, len(promoted)+len(rest)), promoted...), rest...)
}

func cleanFontName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "!important")
	s = strings.Trim(s, `"' `)
	return strings.Join(strings.Fields(s), " ")
}

func isIconFont(key string) bool {
	for _, m := range iconFontMarkers {
		if strings.Contains(key, m) {
			return true
		}
	}
	return false
}

func isLikelyBrandFont(key string) bool {
	return knownBrandFonts[key] || strings.Contains(key, " ") || strings.Contains(key, "-")
}
