package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// DefaultFetchTimeout bounds the plain HTTP fetch of a posting.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies our requests to job boards.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeOptimizer/1.0)"

// FetchOptions configures job posting retrieval.
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string

	// UseBrowser enables the headless-browser fallback for pages that
	// render their content with JavaScript.
	UseBrowser     bool
	BrowserTimeout time.Duration

	Log *zap.Logger
}

// DefaultFetchOptions returns the standard fetch configuration.
func DefaultFetchOptions() *FetchOptions {
	return &FetchOptions{
		Timeout:        DefaultFetchTimeout,
		UserAgent:      DefaultUserAgent,
		BrowserTimeout: DefaultFetchTimeout,
	}
}

func (o *FetchOptions) logger() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

// FetchResult holds the raw content retrieved from a URL.
type FetchResult struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// FetchJobPosting retrieves a job posting URL and reduces it to cleaned
// plain text: fetch, platform-aware content extraction, optional
// browser fallback for script-rendered pages, then text cleanup.
func FetchJobPosting(ctx context.Context, urlStr string, opts *FetchOptions) (string, error) {
	if opts == nil {
		opts = DefaultFetchOptions()
	}
	log := opts.logger()

	platform := DetectPlatform(urlStr)
	log.Debug("fetching job posting",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)),
	)

	result, err := FetchURL(ctx, urlStr, opts)
	if err != nil {
		return "", err
	}

	contentSelectors := PlatformContentSelectors(platform)
	noiseSelectors := PlatformNoiseSelectors(platform)

	text, err := ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	if opts.UseBrowser && ShouldUseBrowser(text) {
		log.Debug("content too short, rendering with headless browser",
			zap.String("url", urlStr),
			zap.Int("chars", len(text)),
		)
		html, berr := renderWithBrowser(ctx, urlStr, opts.BrowserTimeout)
		if berr != nil {
			log.Warn("browser rendering failed, keeping http content", zap.Error(berr))
		} else if rendered, rerr := ExtractMainText(html, contentSelectors, noiseSelectors...); rerr == nil {
			text = rendered
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", &FetchError{URL: urlStr, Message: "no textual content extracted"}
	}
	return cleaned, nil
}

// FetchURL retrieves raw HTML from a URL. On a non-200 status the
// result is returned alongside the error so callers can inspect it.
func FetchURL(ctx context.Context, urlStr string, opts *FetchOptions) (*FetchResult, error) {
	if opts == nil {
		opts = DefaultFetchOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &FetchError{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &FetchResult{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return result, &FetchError{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return result, nil
}

// ExtractMainText parses HTML and returns the main body text. Noise
// elements are removed first; the first matching content selector wins,
// with the body element as fallback.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()

	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	return collapseLines(main.Text()), nil
}

// JobPostingSelectors returns content selectors for generic job boards.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

// collapseLines trims every line and drops empty ones.
func collapseLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
