package crawlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dope-playground/brandscout/internal/models"
	"github.com/dope-playground/brandscout/internal/utils"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodDriver renders pages in headless Chrome through go-rod. One tab is
// reused for every navigation of a crawl.
type RodDriver struct {
	config  models.CrawlConfig
	headers http.Header

	browser    *rod.Browser
	page       *rod.Page
	currentURL string
}

// NewRodDriver launches Chrome and opens the working tab.
func NewRodDriver(cfg models.CrawlConfig, provider models.HeaderProvider) (*RodDriver, error) {
	var headers http.Header
	if provider != nil {
		h, err := provider.GetHeaders()
		if err != nil {
			return nil, fmt.Errorf("load headers: %w", err)
		}
		headers = h
	}

	monitor := NewResourceMonitor(DefaultResourceMonitorConfig())
	if ok, reason := monitor.CheckResourceAvailability(); !ok {
		utils.Warnf("launching browser under resource pressure: %s", reason)
	}

	d := &RodDriver{config: cfg, headers: headers}
	if err := d.launchBrowser(); err != nil {
		return nil, err
	}
	if err := d.openPage(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *RodDriver) launchBrowser() error {
	l := launcher.New().Headless(d.config.Headless)

	// accept self-signed and expired certificates
	l = l.Set("ignore-certificate-errors")

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}

	d.browser = rod.New().ControlURL(controlURL)
	if err := d.browser.Connect(); err != nil {
		return fmt.Errorf("connect browser: %w", err)
	}

	utils.Debugf("browser started: %s", controlURL)
	return nil
}

func (d *RodDriver) openPage() error {
	page, err := d.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("open tab: %w", err)
	}

	if ua := d.headers.Get("User-Agent"); ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			return fmt.Errorf("set user agent: %w", err)
		}
	}

	var extra []string
	for name, values := range d.headers {
		switch http.CanonicalHeaderKey(name) {
		case "User-Agent", "Accept-Encoding":
			continue
		}
		if len(values) > 0 {
			extra = append(extra, name, values[0])
		}
	}
	if len(extra) > 0 {
		if _, err := page.SetExtraHeaders(extra); err != nil {
			return fmt.Errorf("set extra headers: %w", err)
		}
	}

	d.page = page
	return nil
}

// Navigate loads pageURL, waits for the load event and then WaitTime seconds
// for client-side rendering to settle.
func (d *RodDriver) Navigate(ctx context.Context, pageURL string) error {
	timeout := time.Duration(d.config.PageTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	p := d.page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	if err := p.Navigate(pageURL); err != nil {
		return fmt.Errorf("navigate %s: %w", pageURL, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", pageURL, err)
	}

	if wait := time.Duration(d.config.WaitTime) * time.Second; wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	d.currentURL = pageURL
	if info, err := p.Info(); err == nil && info.URL != "" {
		d.currentURL = info.URL
	}
	return nil
}

func (d *RodDriver) CurrentURL() string {
	return d.currentURL
}

// evalJSON runs a script returning a JSON string and decodes it into out.
func (d *RodDriver) evalJSON(ctx context.Context, js string, out any) error {
	if d.page == nil || d.currentURL == "" {
		return ErrNotNavigated
	}
	res, err := d.page.Context(ctx).Evaluate(rod.Eval(js))
	if err != nil {
		return fmt.Errorf("evaluate script on %s: %w", d.currentURL, err)
	}
	if err := json.Unmarshal([]byte(res.Value.Str()), out); err != nil {
		return fmt.Errorf("decode script result on %s: %w", d.currentURL, err)
	}
	return nil
}

func (d *RodDriver) Anchors(ctx context.Context) ([]RawAnchor, error) {
	var anchors []RawAnchor
	if err := d.evalJSON(ctx, jsAnchors, &anchors); err != nil {
		return nil, err
	}
	return anchors, nil
}

func (d *RodDriver) ImageSources(ctx context.Context) ([]string, error) {
	var raw []string
	if err := d.evalJSON(ctx, jsImageSources, &raw); err != nil {
		return nil, err
	}

	sources := make([]string, 0, len(raw))
	for _, v := range raw {
		if strings.Contains(v, "url(") {
			sources = append(sources, CSSURLs(v)...)
			continue
		}
		sources = append(sources, v)
	}
	return sources, nil
}

func (d *RodDriver) FontFamilies(ctx context.Context) ([]string, error) {
	var families []string
	if err := d.evalJSON(ctx, jsFontFamilies, &families); err != nil {
		return nil, err
	}
	return families, nil
}

func (d *RodDriver) VisibleText(ctx context.Context) (string, error) {
	var text string
	if err := d.evalJSON(ctx, jsVisibleText, &text); err != nil {
		return "", err
	}
	return text, nil
}

// Close shuts the browser down. It is safe to call more than once.
func (d *RodDriver) Close() error {
	if d.browser == nil {
		return nil
	}
	err := d.browser.Close()
	d.browser = nil
	d.page = nil
	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	utils.Debugf("browser closed")
	return nil
}
