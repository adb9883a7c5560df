package models

import "encoding/json"

// PageTypeHomepage labels the record extracted from the crawl's entry URL.
const PageTypeHomepage = "homepage"

// MarketingFacts holds the model-extracted string-array fields shared by
// PageRecord and AggregatedResult.
type MarketingFacts struct {
	Headlines          []string `json:"headlines"`
	SubHeaders         []string `json:"subHeaders"`
	Taglines           []string `json:"taglines"`
	CoreServices       []string `json:"coreServices"`
	AllServices        []string `json:"allServices"`
	Offers             []string `json:"offers"`
	Actions            []string `json:"actions"`
	CTAs               []string `json:"ctas"`
	CompanyFacts       []string `json:"companyFacts"`
	Awards             []string `json:"awards"`
	Benefits           []string `json:"benefits"`
	HighlightList      []string `json:"highlightList"`
	Testimonials       []string `json:"testimonials"`
	Reviews            []string `json:"reviews"`
	ServiceAreas       []string `json:"serviceAreas"`
	MarketingQuestions []string `json:"marketingQuestions"`
}

// PageRecord is the structured marketing-fact extraction of one visited page.
// A failed extraction keeps only PageType, URL and Error.
type PageRecord struct {
	PageType string `json:"pageType"`
	URL      string `json:"url"`
	Error    string `json:"error,omitempty"`

	Tone        *string `json:"tone"`
	YearFounded *string `json:"yearFounded"`

	MarketingFacts

	// Images and Fonts come from direct DOM reads, never from the model.
	Images []string `json:"images"`
	Fonts  []string `json:"fonts"`
}

type errorRecord struct {
	PageType string `json:"pageType"`
	URL      string `json:"url"`
	Error    string `json:"error"`
}

// MarshalJSON encodes error records as {pageType, url, error} only.
func (r PageRecord) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(errorRecord{PageType: r.PageType, URL: r.URL, Error: r.Error})
	}
	type plain PageRecord
	return json.Marshal(plain(r))
}

// NewErrorRecord builds the degraded record for a page whose extraction failed.
func NewErrorRecord(pageType, url string, err error) PageRecord {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return PageRecord{PageType: pageType, URL: url, Error: msg}
}

// Failed reports whether the record is an error record.
func (r PageRecord) Failed() bool {
	return r.Error != ""
}

// ListField describes one string-array field of MarketingFacts. The extraction
// schema and the aggregator are both built from PageListFields.
type ListField struct {
	Name        string
	Description string
	Get         func(*MarketingFacts) []string
	Set         func(*MarketingFacts, []string)
}

// PageListFields enumerates the model-extracted array fields in output order.
var PageListFields = []ListField{
	{
		Name:        "headlines",
		Description: "Main headlines shown prominently on the page. Each must be 3 to 15 words. Never full paragraphs or navigation labels.",
		Get:         func(r *MarketingFacts) []string { return r.Headlines },
		Set:         func(r *MarketingFacts, v []string) { r.Headlines = v },
	},
	{
		Name:        "subHeaders",
		Description: "Secondary headings that introduce page sections. Short phrases, not body copy.",
		Get:         func(r *MarketingFacts) []string { return r.SubHeaders },
		Set:         func(r *MarketingFacts, v []string) { r.SubHeaders = v },
	},
	{
		Name:        "taglines",
		Description: "Slogans or brand taglines, usually near the logo or hero section.",
		Get:         func(r *MarketingFacts) []string { return r.Taglines },
		Set:         func(r *MarketingFacts, v []string) { r.Taglines = v },
	},
	{
		Name:        "coreServices",
		Description: "The three to six primary services the business is known for.",
		Get:         func(r *MarketingFacts) []string { return r.CoreServices },
		Set:         func(r *MarketingFacts, v []string) { r.CoreServices = v },
	},
	{
		Name:        "allServices",
		Description: "Every distinct service or product line named on the page.",
		Get:         func(r *MarketingFacts) []string { return r.AllServices },
		Set:         func(r *MarketingFacts, v []string) { r.AllServices = v },
	},
	{
		Name:        "offers",
		Description: "Concrete promotions, discounts, guarantees or financing offers. Exclude generic claims like \"quality service\".",
		Get:         func(r *MarketingFacts) []string { return r.Offers },
		Set:         func(r *MarketingFacts, v []string) { r.Offers = v },
	},
	{
		Name:        "actions",
		Description: "Actions the visitor is invited to take, phrased as verbs (schedule an inspection, request a quote).",
		Get:         func(r *MarketingFacts) []string { return r.Actions },
		Set:         func(r *MarketingFacts, v []string) { r.Actions = v },
	},
	{
		Name:        "ctas",
		Description: "Exact call-to-action button or link labels.",
		Get:         func(r *MarketingFacts) []string { return r.CTAs },
		Set:         func(r *MarketingFacts, v []string) { r.CTAs = v },
	},
	{
		Name:        "companyFacts",
		Description: "Verifiable facts about the company: years in business, team size, licenses, locations, ownership.",
		Get:         func(r *MarketingFacts) []string { return r.CompanyFacts },
		Set:         func(r *MarketingFacts, v []string) { r.CompanyFacts = v },
	},
	{
		Name:        "awards",
		Description: "Named awards, certifications or recognitions.",
		Get:         func(r *MarketingFacts) []string { return r.Awards },
		Set:         func(r *MarketingFacts, v []string) { r.Awards = v },
	},
	{
		Name:        "benefits",
		Description: "Customer benefits of choosing this business.",
		Get:         func(r *MarketingFacts) []string { return r.Benefits },
		Set:         func(r *MarketingFacts, v []string) { r.Benefits = v },
	},
	{
		Name:        "highlightList",
		Description: "Short bullet-style selling points highlighted on the page.",
		Get:         func(r *MarketingFacts) []string { return r.HighlightList },
		Set:         func(r *MarketingFacts, v []string) { r.HighlightList = v },
	},
	{
		Name:        "testimonials",
		Description: "Customer testimonial quotes, verbatim, without the author name.",
		Get:         func(r *MarketingFacts) []string { return r.Testimonials },
		Set:         func(r *MarketingFacts, v []string) { r.Testimonials = v },
	},
	{
		Name:        "reviews",
		Description: "Review summaries or ratings such as \"4.9 stars on Google\".",
		Get:         func(r *MarketingFacts) []string { return r.Reviews },
		Set:         func(r *MarketingFacts, v []string) { r.Reviews = v },
	},
	{
		Name:        "serviceAreas",
		Description: "Specific place names served: cities, counties, neighborhoods, zip codes. Never vague phrases like \"surrounding areas\".",
		Get:         func(r *MarketingFacts) []string { return r.ServiceAreas },
		Set:         func(r *MarketingFacts, v []string) { r.ServiceAreas = v },
	},
	{
		Name:        "marketingQuestions",
		Description: "Questions the page asks the reader or answers in an FAQ.",
		Get:         func(r *MarketingFacts) []string { return r.MarketingQuestions },
		Set:         func(r *MarketingFacts, v []string) { r.MarketingQuestions = v },
	},
}

// Names of the nullable single-value fields.
const (
	FieldTone        = "tone"
	FieldYearFounded = "yearFounded"
)

// ScalarField describes a nullable single-string field of PageRecord.
type ScalarField struct {
	Name        string
	Description string
	Get         func(*PageRecord) *string
}

// PageScalarFields enumerates the nullable single-value fields.
var PageScalarFields = []ScalarField{
	{
		Name:        FieldTone,
		Description: "One or two words describing the brand voice, for example friendly, professional, premium.",
		Get:         func(r *PageRecord) *string { return r.Tone },
	},
	{
		Name:        FieldYearFounded,
		Description: "Four-digit year the company was founded, only if stated on the page.",
		Get:         func(r *PageRecord) *string { return r.YearFounded },
	},
}
