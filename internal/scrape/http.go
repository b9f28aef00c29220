package scrape

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// Options configures an HTTPFetcher.
type Options struct {
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string
	// RatePerHost limits requests per second to one host; 0 disables limiting.
	RatePerHost float64
	Burst       int
}

// HTTPFetcher fetches HTML via net/http. It makes a single attempt per call,
// follows redirects and rejects non-HTML responses.
type HTTPFetcher struct {
	client *http.Client
	opts   Options

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHTTPFetcher creates an HTTPFetcher with sensible defaults for unset options.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 2 * 1024 * 1024
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (compatible; AdmissionsGEO/1.0)"
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: opts.Timeout,
				}).DialContext,
				TLSHandshakeTimeout: opts.Timeout,
			},
		},
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Fetch returns the page HTML decoded to UTF-8. Every failure is an *Error.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(targetURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fail(ReasonInvalidURL, eris.Errorf("scrape: invalid url %q", targetURL))
	}

	if lim := f.limiter(u.Host); lim != nil {
		if err := lim.Wait(ctx); err != nil {
			return "", classifyTransportError(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fail(ReasonInvalidURL, eris.Wrap(err, "scrape: create request"))
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		if blocked, bt := DetectBlock(resp, nil); blocked {
			return "", fail(ReasonBlocked, eris.Errorf("scrape: blocked (%s)", bt))
		}
		return "", fail(ReasonStatus, eris.Errorf("scrape: status %d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	var src io.Reader = io.LimitReader(resp.Body, f.opts.MaxBodyBytes)
	if strings.TrimSpace(contentType) == "" {
		raw, err := readAll(src)
		if err != nil {
			return "", err
		}
		// Sniffed types carry a utf-8 label; drop it so meta charset tags still apply.
		if sniffed := http.DetectContentType(raw); isHTML(sniffed) {
			contentType = "text/html"
		} else {
			contentType = sniffed
		}
		src = bytes.NewReader(raw)
	}
	if !isHTML(contentType) {
		return "", fail(ReasonContentType, eris.Errorf("scrape: non-html content type %q", contentType))
	}

	reader, err := charset.NewReader(src, contentType)
	if err != nil {
		return "", fail(ReasonRead, eris.Wrap(err, "scrape: charset"))
	}
	body, err := readAll(reader)
	if err != nil {
		return "", err
	}

	if blocked, bt := DetectBlock(resp, body); blocked {
		return "", fail(ReasonBlocked, eris.Errorf("scrape: blocked (%s)", bt))
	}

	zap.L().Debug("scrape: fetched page",
		zap.String("url", targetURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)
	return string(body), nil
}

// limiter returns the per-host limiter, creating it on first use.
func (f *HTTPFetcher) limiter(host string) *rate.Limiter {
	if f.opts.RatePerHost <= 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	lim, ok := f.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(f.opts.RatePerHost), f.opts.Burst)
		f.limiters[host] = lim
	}
	return lim
}

func readAll(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		if isTimeout(err) {
			return nil, fail(ReasonTimeout, eris.Wrap(err, "scrape: read body"))
		}
		return nil, fail(ReasonRead, eris.Wrap(err, "scrape: read body"))
	}
	return body, nil
}

// isHTML accepts text/html and application/xhtml+xml. Responses without a
// Content-Type header are sniffed before this check.
func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
