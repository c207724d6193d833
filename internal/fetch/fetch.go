// Package fetch retrieves job postings from external job boards and
// reduces their HTML to the posting text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds a static posting fetch.
const DefaultTimeout = 30 * time.Second

// defaultUserAgent identifies the portal's ingestion fetches to job
// boards.
const defaultUserAgent = "Mozilla/5.0 (compatible; JobPortal/1.0)"

// maxBodyBytes caps how much of a posting page is read. Postings are
// text; anything larger is not a page we can use.
const maxBodyBytes = 10 << 20

// Result is a fetched posting page.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error describes a failed posting fetch.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Options adjusts a fetch. The zero value and nil both mean defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// URL fetches a posting page over plain HTTP. A non-2xx status returns
// both the Result and an *Error so callers can inspect the page anyway.
func URL(ctx context.Context, rawURL string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "building request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "reading response body", Cause: err}
	}

	result := &Result{
		URL:         rawURL,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, &Error{URL: rawURL, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
	return result, nil
}

// JobPostingSelectors are the content selectors tried, in order, when
// extracting a posting's text. Board-specific description containers
// come before the generic fallbacks.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".jobDescriptionContent",
		".description__text",
		"#jobDescriptionText",
		"[class*='job-details']",
		"[class*='jobDetails']",
		"article",
		"main",
		"[role='main']",
	}
}

// noiseSelectors are stripped before extraction: board chrome that
// would otherwise pollute the posting text.
var noiseSelectors = []string{
	"script", "style", "noscript", "iframe",
	"nav", "header", "footer", "aside",
	"[class*='cookie']", "[class*='consent']",
	"[class*='similar-jobs']", "[class*='job-alert']",
	"[class*='apply-widget']", "[class*='navigation']",
	"[id*='onetrust']",
}

// ExtractMainText reduces a posting page to plain text. Selectors are
// tried in order and the first non-empty match wins; when none match,
// the whole body is used.
func ExtractMainText(html string, selectors []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &Error{Message: "parsing HTML", Cause: err}
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	for _, sel := range selectors {
		if text := collapseText(doc.Find(sel).Text()); text != "" {
			return text, nil
		}
	}

	text := collapseText(doc.Find("body").Text())
	if text == "" {
		return "", &Error{Message: "no text content found"}
	}
	return text, nil
}

// collapseText trims every line and drops the blank ones, joining the
// remainder with single newlines.
func collapseText(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			kept = append(kept, strings.Join(fields, " "))
		}
	}
	return strings.Join(kept, "\n")
}
