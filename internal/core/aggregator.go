package core

import (
	"strings"

	"github.com/dope-playground/brandscout/internal/models"
)

// orderedSet is an insertion-ordered set of normalized strings.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}), items: make([]string, 0)}
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) addAll(values []string) {
	for _, v := range values {
		s.add(normalize(v))
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Aggregate merges page records into one result. Error records contribute
// only their URL. Every array field is lower-cased, trimmed and
// deduplicated in first-seen order, so aggregating the same records again
// gives the same result. Image URLs are only trimmed since paths are case
// sensitive. yearFounded keeps the first non-empty value.
func Aggregate(records []models.PageRecord) models.AggregatedResult {
	lists := make([]*orderedSet, len(models.PageListFields))
	for i := range lists {
		lists[i] = newOrderedSet()
	}
	scalars := make(map[string]*orderedSet, len(models.PageScalarFields))
	for _, field := range models.PageScalarFields {
		scalars[field.Name] = newOrderedSet()
	}
	images := newOrderedSet()
	fonts := newOrderedSet()
	urls := newOrderedSet()

	for i := range records {
		rec := &records[i]
		if u := strings.TrimSpace(rec.URL); u != "" {
			urls.add(u)
		}
		if rec.Failed() {
			continue
		}

		for j, field := range models.PageListFields {
			lists[j].addAll(field.Get(&rec.MarketingFacts))
		}
		for _, field := range models.PageScalarFields {
			if v := field.Get(rec); v != nil {
				scalars[field.Name].add(strings.TrimSpace(*v))
			}
		}
		for _, img := range rec.Images {
			images.add(strings.TrimSpace(img))
		}
		fonts.addAll(rec.Fonts)
	}

	tones := newOrderedSet()
	tones.addAll(scalars[models.FieldTone].items)

	var yearFounded *string
	if years := scalars[models.FieldYearFounded].items; len(years) > 0 {
		yearFounded = &years[0]
	}

	result := models.AggregatedResult{
		Tones:              tones.items,
		YearFounded:        yearFounded,
		Images:             images.items,
		Fonts:              fonts.items,
		ScrapedURLs:        urls.items,
		ScrapedPagesLength: len(records),
		LowPriorityLinks:   make([]models.DiscoveredLink, 0),
	}
	for j, field := range models.PageListFields {
		field.Set(&result.MarketingFacts, lists[j].items)
	}
	return result
}
