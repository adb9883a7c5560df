package crawlers

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dope-playground/brandscout/internal/models"
	"github.com/dope-playground/brandscout/internal/utils"
	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html"
)

var (
	fontFamilyRe     = regexp.MustCompile(`(?i)font-family\s*:\s*([^;}{]+)`)
	backgroundDeclRe = regexp.MustCompile(`(?i)background(?:-image)?\s*:[^;}]*`)
)

// StaticDriver loads pages over plain HTTP with colly and reads them with
// goquery. It sees only server-rendered markup and declared styles.
type StaticDriver struct {
	collector *colly.Collector
	headers   models.HeaderProvider
	config    models.CrawlConfig

	doc        *goquery.Document
	currentURL string
}

// NewStaticDriver creates a static driver with certificate checks disabled.
func NewStaticDriver(cfg models.CrawlConfig, headers models.HeaderProvider) (*StaticDriver, error) {
	timeout := time.Duration(cfg.PageTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
		Timeout: timeout,
	}

	c := colly.NewCollector(colly.AllowURLRevisit())
	c.SetClient(httpClient)
	c.WithTransport(httpClient.Transport)
	c.SetRequestTimeout(timeout)

	utils.Debugf("static driver: timeout %s, TLS verification disabled", timeout)

	return &StaticDriver{
		collector: c,
		headers:   headers,
		config:    cfg,
	}, nil
}

// Navigate fetches pageURL and parses it. Redirects are followed and
// CurrentURL reports the final location.
func (d *StaticDriver) Navigate(ctx context.Context, pageURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var hdrs http.Header
	if d.headers != nil {
		h, err := d.headers.GetHeaders()
		if err != nil {
			return fmt.Errorf("load headers: %w", err)
		}
		hdrs = h
	}

	// clones share the HTTP backend but start without callbacks
	c := d.collector.Clone()

	var (
		body     []byte
		finalURL string
		visitErr error
	)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		for name, values := range hdrs {
			if len(values) > 0 {
				r.Headers.Set(name, values[0])
			}
		}
	})
	c.OnResponse(func(r *colly.Response) {
		finalURL = r.Request.URL.String()
		encoding := r.Headers.Get("Content-Encoding")
		// colly already gunzips bodies itself
		if strings.EqualFold(encoding, "gzip") {
			body = r.Body
			return
		}
		decoded, err := decompressBody(encoding, r.Body)
		if err != nil {
			visitErr = fmt.Errorf("decode response: %w", err)
			return
		}
		body = decoded
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			visitErr = fmt.Errorf("HTTP %d: %w", r.StatusCode, err)
			return
		}
		visitErr = err
	})

	if err := c.Visit(pageURL); err != nil {
		return fmt.Errorf("visit %s: %w", pageURL, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if visitErr != nil {
		return fmt.Errorf("visit %s: %w", pageURL, visitErr)
	}
	if len(body) == 0 {
		return fmt.Errorf("visit %s: empty response body", pageURL)
	}

	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse HTML of %s: %w", pageURL, err)
	}
	d.doc = goquery.NewDocumentFromNode(root)
	d.currentURL = finalURL
	if d.currentURL == "" {
		d.currentURL = pageURL
	}
	return nil
}

func (d *StaticDriver) CurrentURL() string {
	return d.currentURL
}

func (d *StaticDriver) Anchors(ctx context.Context) ([]RawAnchor, error) {
	if d.doc == nil {
		return nil, ErrNotNavigated
	}
	var anchors []RawAnchor
	d.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		title, _ := s.Attr("title")
		anchors = append(anchors, RawAnchor{Href: href, Text: s.Text(), Title: title})
	})
	return anchors, nil
}

func (d *StaticDriver) ImageSources(ctx context.Context) ([]string, error) {
	if d.doc == nil {
		return nil, ErrNotNavigated
	}
	var sources []string
	d.doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			sources = append(sources, src)
		}
	})
	for _, css := range d.styleSources() {
		for _, decl := range backgroundDeclRe.FindAllString(css, -1) {
			sources = append(sources, CSSURLs(decl)...)
		}
	}
	return sources, nil
}

func (d *StaticDriver) FontFamilies(ctx context.Context) ([]string, error) {
	if d.doc == nil {
		return nil, ErrNotNavigated
	}
	var families []string
	for _, css := range d.styleSources() {
		for _, m := range fontFamilyRe.FindAllStringSubmatch(css, -1) {
			families = append(families, strings.TrimSpace(m[1]))
		}
	}
	return families, nil
}

// styleSources returns every <style> block followed by every inline style.
func (d *StaticDriver) styleSources() []string {
	var out []string
	d.doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	d.doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		if style, ok := s.Attr("style"); ok {
			out = append(out, style)
		}
	})
	return out
}

func (d *StaticDriver) VisibleText(ctx context.Context) (string, error) {
	if d.doc == nil {
		return "", ErrNotNavigated
	}
	root := d.doc.Find("body").First()
	if root.Length() == 0 {
		root = d.doc.Selection
	}

	var sb strings.Builder
	for _, n := range root.Nodes {
		writeVisibleText(&sb, n)
	}

	var lines []string
	for _, line := range strings.Split(sb.String(), "\n") {
		if line = collapseSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

var hiddenElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"svg": true, "iframe": true, "head": true,
}

var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "header": true,
	"footer": true, "nav": true, "main": true, "aside": true, "li": true,
	"ul": true, "ol": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "br": true, "tr": true, "td": true, "th": true,
	"blockquote": true, "figcaption": true, "form": true, "button": true,
	"a": true, "label": true, "option": true, "dt": true, "dd": true,
}

// writeVisibleText walks n and writes text nodes, breaking lines around
// block elements.
func writeVisibleText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if hiddenElements[n.Data] {
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		sb.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeVisibleText(sb, c)
	}
	if block {
		sb.WriteByte('\n')
	}
}

func (d *StaticDriver) Close() error {
	d.doc = nil
	return nil
}
