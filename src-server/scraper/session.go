package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

const (
	maxBodyBytes = 16 << 20
	// upper bound of "Load More" clicks per page
	maxLoadMore = 200
)

type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Client replaces the default HTTP client, mostly for tests.
	Client *http.Client
	// Now replaces time.Now.
	Now func() time.Time
}

// Session is the lifetime of one scrape cycle: one HTTP client and, when a
// page needs JavaScript, one headless browser started on first use. Always
// Close it.
type Session struct {
	ID uuid.UUID

	client    *http.Client
	userAgent string
	timeout   time.Duration
	now       func() time.Time

	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
}

func NewSession(opts Options) *Session {
	s := &Session{
		ID:        uuid.New(),
		client:    opts.Client,
		userAgent: opts.UserAgent,
		timeout:   opts.Timeout,
		now:       opts.Now,
	}
	if s.timeout <= 0 {
		s.timeout = time.Minute
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Session) Now() time.Time {
	return s.now()
}

// Close shuts the browser down if one was started.
func (s *Session) Close() {
	if s.browserCancel != nil {
		s.browserCancel()
		s.browserCancel = nil
	}
	if s.allocCancel != nil {
		s.allocCancel()
		s.allocCancel = nil
	}
	s.browserCtx = nil
}

func (s *Session) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("(*Session).get: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &SourceUnreachableError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &SourceUnreachableError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &SourceUnreachableError{URL: url, Err: err}
	}
	return body, nil
}

// FetchDocument GETs a static HTML page.
func (s *Session) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := s.get(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("(*Session).FetchDocument: %w", err)
	}
	return doc, nil
}

// FetchJSON GETs url and decodes the body into v.
func (s *Session) FetchJSON(ctx context.Context, url string, v any) error {
	body, err := s.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("(*Session).FetchJSON: %w", err)
	}
	return nil
}

func (s *Session) browser() context.Context {
	if s.browserCtx != nil {
		return s.browserCtx
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if s.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(s.userAgent))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	s.browserCtx, s.browserCancel = chromedp.NewContext(allocCtx)
	s.allocCancel = allocCancel
	slog.Debug("headless browser started", "session", s.ID)
	return s.browserCtx
}

// RenderDocument loads url in a browser tab, waits for ready to exist, keeps
// pressing the button labelled loadMore (if any) until it disappears, and
// returns the resulting DOM.
func (s *Session) RenderDocument(ctx context.Context, url, ready, loadMore string) (*goquery.Document, error) {
	tabCtx, cancelTab := chromedp.NewContext(s.browser())
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	var html string
	tasks := chromedp.Tasks{
		chromedp.Navigate(url),
		chromedp.WaitReady(ready, chromedp.ByQuery),
	}
	if loadMore != "" {
		tasks = append(tasks, clickUntilGone(loadMore))
	}
	tasks = append(tasks, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	if err := chromedp.Run(tabCtx, tasks); err != nil {
		return nil, &SourceUnreachableError{URL: url, Err: err}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("(*Session).RenderDocument: %w", err)
	}
	return doc, nil
}

func clickUntilGone(label string) chromedp.ActionFunc {
	script := fmt.Sprintf(`(() => {
	const button = [...document.querySelectorAll("button, span")].find(el => el.textContent.trim() === %q);
	if (!button) return false;
	button.scrollIntoView();
	button.click();
	return true;
})()`, label)

	return func(ctx context.Context) error {
		for i := 0; i < maxLoadMore; i++ {
			var clicked bool
			if err := chromedp.Evaluate(script, &clicked).Do(ctx); err != nil {
				return err
			}
			if !clicked {
				return nil
			}
			if err := chromedp.Sleep(2 * time.Second).Do(ctx); err != nil {
				return err
			}
		}
		slog.Warn("gave up pressing load more", "label", label, "clicks", maxLoadMore)
		return nil
	}
}
