// Package crawlers loads website pages and reads what the brand pipeline
// needs from them.
//
// # Page drivers
//
// PageDriver is the page-automation capability. Two implementations exist:
//
//   - RodDriver renders pages in headless Chrome (go-rod) and reads anchors,
//     images, computed background images, stylesheet fonts and innerText by
//     evaluating scripts in the page.
//   - StaticDriver fetches server-rendered HTML with colly and reads it with
//     goquery. It cannot see computed styles or script-inserted content.
//
// A driver holds one page at a time; reads always apply to the page loaded
// by the most recent Navigate.
//
// # Links
//
// DiscoverLinks resolves raw anchors against the page URL and keeps those
// whose absolute URL starts with the crawl's base URL. CategorizeLinks then
// partitions them into high, medium and low priority by keyword matching on
// text, URL and title, high keywords first.
//
//	anchors, _ := driver.Anchors(ctx)
//	links := DiscoverLinks(anchors, driver.CurrentURL(), "https://example.com")
//	buckets := CategorizeLinks(links)
//
// # Extraction
//
// PageExtractor combines DOM reads (images, fonts) with one schema-constrained
// model call over the page's visible text. Any failure of the model call
// yields an error record instead of an error.
//
// # Images
//
// ImageFetcher downloads images with bounded concurrency sized by
// ResourceMonitor and returns successes in input order.
package crawlers
