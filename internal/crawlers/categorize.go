package crawlers

import (
	"strings"

	"github.com/dope-playground/brandscout/internal/models"
)

// HighPriorityKeywords mark pages that usually carry company facts.
var HighPriorityKeywords = []string{
	"about",
	"service",
	"team",
	"staff",
	"contact",
	"testimonial",
	"review",
	"portfolio",
	"gallery",
	"our-work",
	"projects",
	"award",
	"certif",
	"why-us",
	"why-choose",
	"history",
	"mission",
	"company",
	"who-we-are",
	"what-we-do",
	"areas",
	"locations",
	"faq",
}

// MediumPriorityKeywords mark pages worth a visit once high ones are taken.
var MediumPriorityKeywords = []string{
	"blog",
	"news",
	"pricing",
	"price",
	"quote",
	"estimate",
	"consultation",
	"specials",
	"offers",
	"coupon",
	"financing",
	"careers",
	"events",
	"resources",
}

// ClassifyLink returns the priority of one link. High keywords are checked
// before medium keywords.
func ClassifyLink(link models.DiscoveredLink) models.Priority {
	haystack := strings.ToLower(link.Text + " " + link.URL + " " + link.Title)

	if containsAny(haystack, HighPriorityKeywords) {
		return models.PriorityHigh
	}
	if containsAny(haystack, MediumPriorityKeywords) {
		return models.PriorityMedium
	}
	return models.PriorityLow
}

// CategorizeLinks partitions links into priority buckets without dropping
// or reordering any of them.
func CategorizeLinks(links []models.DiscoveredLink) models.LinkBuckets {
	buckets := models.NewLinkBuckets()
	for _, link := range links {
		buckets.Add(ClassifyLink(link), link)
	}
	return buckets
}

// PageType names a link by the first priority keyword it matches, such as
// "about" or "pricing". Links matching nothing are "page".
func PageType(link models.DiscoveredLink) string {
	haystack := strings.ToLower(link.Text + " " + link.URL + " " + link.Title)
	if k := firstMatch(haystack, HighPriorityKeywords); k != "" {
		return k
	}
	if k := firstMatch(haystack, MediumPriorityKeywords); k != "" {
		return k
	}
	return "page"
}

func containsAny(s string, keywords []string) bool {
	return firstMatch(s, keywords) != ""
}

func firstMatch(s string, keywords []string) string {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return k
		}
	}
	return ""
}
