package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// minStaticText is the extracted length below which the static fetch is
// assumed to have missed a script-rendered posting.
const minStaticText = 500

// renderSettle is how long the headless browser waits after the page is
// ready for client-side hydration to fill in the posting.
const renderSettle = 2 * time.Second

// ShouldUseBrowser reports whether statically fetched text is too short
// to be a real posting, so the headless path should run.
func ShouldUseBrowser(text string) bool {
	return len(strings.TrimSpace(text)) < minStaticText
}

// WithBrowser renders the posting page in headless Chrome and returns
// the final DOM. Boards that hydrate their postings client-side need
// this path.
func WithBrowser(ctx context.Context, url string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(defaultUserAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(renderSettle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "headless render failed", Cause: err}
	}
	return html, nil
}
