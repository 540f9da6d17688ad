package pipeline

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/biaslab/internal/cache"
	"github.com/ppiankov/biaslab/internal/model"
	"github.com/ppiankov/biaslab/internal/util"
	"github.com/ppiankov/biaslab/internal/worker"
	"golang.org/x/net/html"
)

// Fetcher retrieves article pages and reduces them to analyzable plain
// text: scripts, styles and tags stripped, whitespace collapsed.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil when robots checking is disabled
	cache      cache.Cache         // nil when caching is disabled
	cacheTTL   time.Duration
	limiter    *worker.Limiter
}

// NewFetcher creates a fetcher from HTTP configuration. Pass a nil cache
// to always fetch fresh.
func NewFetcher(cfg model.HTTPConfig, textCache cache.Cache, cacheTTL time.Duration) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	rateLimit := cfg.RatePerHost
	if rateLimit <= 0 {
		rateLimit = 2
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    robots,
		cache:     textCache,
		cacheTTL:  cacheTTL,
		limiter:   worker.NewLimiter(rateLimit, cfg.Burst),
	}
}

// FetchText retrieves a URL and returns its stripped plain text. All
// failures come back as *model.FetchError.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	key := cache.CacheKey(rawURL)
	if f.cache != nil {
		if cached, ok := f.cache.Get(key); ok {
			return string(cached), nil
		}
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", &model.FetchError{URL: rawURL, Err: err}
	}

	if f.robots != nil && !f.robots.IsAllowed(ctx, rawURL) {
		return "", &model.FetchError{URL: rawURL, Err: fmt.Errorf("disallowed by robots.txt")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &model.FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", &model.FetchError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &model.FetchError{URL: rawURL, Err: fmt.Errorf("unexpected status: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", &model.FetchError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}

	text := StripHTML(string(body))
	if f.cache != nil && text != "" {
		_ = f.cache.Set(key, []byte(text), f.cacheTTL)
	}
	return text, nil
}

// StripHTML extracts visible text from an HTML document, skipping
// scripts, styles and embedded frames, and collapses whitespace.
func StripHTML(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return strings.Join(strings.Fields(htmlContent), " ")
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(buf.String()), " ")
}
