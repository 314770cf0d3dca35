package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"

	"webnovel-scraper/internal/config"
)

// ErrDisallowed is returned by Fetch when robots.txt forbids the URL.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// FetchError reports a failed page fetch: either a transport failure (Err)
// or a non-2xx response (StatusCode). It is never retried.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status code %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Requester handles HTTP requests with rate limiting and politeness
type Requester struct {
	client      *resty.Client
	polite      config.PoliteConfig
	userAgent   string
	lastRequest time.Time
	mutex       sync.Mutex
	robotsCache map[string]*RobotsRules
	robotsMutex sync.RWMutex
}

// RobotsRules represents parsed robots.txt rules
type RobotsRules struct {
	Disallowed []string
	CrawlDelay time.Duration
	Fetched    time.Time
}

// NewRequester creates a new HTTP requester with rate limiting
func NewRequester(cfg config.ScrapingConfig) (*Requester, error) {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Proxy.Enabled() {
		proxy, err := proxyFunc(cfg.Proxy)
		if err != nil {
			return nil, err
		}
		transport.Proxy = proxy
	}

	client := resty.New().
		SetTransport(transport).
		SetTimeout(time.Duration(timeout) * time.Second).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetRetryCount(0).
		SetLogger(restyLogger{})

	return &Requester{
		client:      client,
		polite:      cfg.Polite,
		userAgent:   userAgent,
		robotsCache: make(map[string]*RobotsRules),
	}, nil
}

// proxyFunc routes each request through the proxy configured for its scheme.
// A scheme without a proxy goes direct.
func proxyFunc(p config.ProxyConfig) (func(*http.Request) (*url.URL, error), error) {
	byScheme := make(map[string]*url.URL, 2)
	for scheme, raw := range map[string]string{"http": p.HTTP, "https": p.HTTPS} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s proxy %q: %w", scheme, raw, err)
		}
		byScheme[scheme] = u
	}
	return func(req *http.Request) (*url.URL, error) {
		return byScheme[req.URL.Scheme], nil
	}, nil
}

// Fetch fetches a URL with rate limiting and politeness and returns its
// body decoded to UTF-8.
func (r *Requester) Fetch(ctx context.Context, targetURL string) ([]byte, error) {
	var crawlDelay time.Duration
	if r.polite.RespectRobotsTxt {
		allowed, rules, err := r.isAllowedByRobots(ctx, targetURL)
		if err != nil {
			log.Warn().Err(err).Str("url", targetURL).Msg("robots.txt check failed")
		} else if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, targetURL)
		}
		if rules != nil {
			crawlDelay = rules.CrawlDelay
		}
	}

	if err := r.waitForRateLimit(ctx, crawlDelay); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", r.userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.5").
		Get(targetURL)
	if err != nil {
		return nil, &FetchError{URL: targetURL, Err: err}
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, &FetchError{URL: targetURL, StatusCode: code}
	}

	body, err := decodeBody(resp.Body(), resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode response body from %s: %w", targetURL, err)
	}

	log.Debug().
		Str("url", targetURL).
		Int("status", resp.StatusCode()).
		Int("bytes", len(body)).
		Dur("took", time.Since(start)).
		Msg("fetched")
	return body, nil
}

// Probe issues one GET through the configured transport. Any HTTP response
// counts as reachable; only transport failures are reported.
func (r *Requester) Probe(ctx context.Context, targetURL string) error {
	_, err := r.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", r.userAgent).
		Get(targetURL)
	if err != nil {
		return &FetchError{URL: targetURL, Err: err}
	}
	return nil
}

func decodeBody(raw []byte, contentType string) ([]byte, error) {
	reader, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}

func (r *Requester) waitForRateLimit(ctx context.Context, minDelay time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delay := time.Duration(r.polite.DelayMS) * time.Millisecond
	if minDelay > delay {
		delay = minDelay
	}

	if wait := delay - time.Since(r.lastRequest); wait > 0 && !r.lastRequest.IsZero() {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	r.lastRequest = time.Now()
	return nil
}

func (r *Requester) isAllowedByRobots(ctx context.Context, targetURL string) (bool, *RobotsRules, error) {
	parsedURL, err := url.Parse(targetURL)
	if err != nil {
		return true, nil, err
	}

	domain := parsedURL.Scheme + "://" + parsedURL.Host
	rules := r.getRobotsRules(ctx, domain)

	path := parsedURL.Path
	if path == "" {
		path = "/"
	}

	for _, disallowed := range rules.Disallowed {
		if strings.HasPrefix(path, disallowed) {
			return false, rules, nil
		}
	}

	return true, rules, nil
}

// getRobotsRules returns cached rules for domain, refreshing them hourly.
// An unreachable or missing robots.txt allows everything.
func (r *Requester) getRobotsRules(ctx context.Context, domain string) *RobotsRules {
	r.robotsMutex.RLock()
	rules, exists := r.robotsCache[domain]
	r.robotsMutex.RUnlock()

	if exists && time.Since(rules.Fetched) < time.Hour {
		return rules
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", r.userAgent).
		Get(domain + "/robots.txt")
	if err != nil || resp.StatusCode() != http.StatusOK {
		log.Debug().Err(err).Str("domain", domain).Msg("no usable robots.txt")
		rules = &RobotsRules{}
	} else {
		rules = parseRobotsTxt(resp.String())
	}
	rules.Fetched = time.Now()

	r.robotsMutex.Lock()
	r.robotsCache[domain] = rules
	r.robotsMutex.Unlock()

	return rules
}

func parseRobotsTxt(content string) *RobotsRules {
	rules := &RobotsRules{
		Disallowed: make([]string, 0),
	}

	lines := strings.Split(content, "\n")
	inUserAgentBlock := false
	isRelevantAgent := false

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		directive := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		switch directive {
		case "user-agent":
			inUserAgentBlock = true
			isRelevantAgent = value == "*" || strings.Contains(strings.ToLower(value), "webnovel")
		case "disallow":
			if inUserAgentBlock && isRelevantAgent && value != "" {
				rules.Disallowed = append(rules.Disallowed, value)
			}
		case "crawl-delay":
			if inUserAgentBlock && isRelevantAgent {
				delay, err := strconv.ParseFloat(value, 64)
				if err != nil || delay < 0 {
					continue
				}
				rules.CrawlDelay = time.Duration(delay * float64(time.Second))
			}
		}
	}

	return rules
}

// restyLogger routes resty's internal messages into zerolog.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) { log.Error().Msgf(format, v...) }
func (restyLogger) Warnf(format string, v ...interface{})  { log.Warn().Msgf(format, v...) }
func (restyLogger) Debugf(format string, v ...interface{}) { log.Debug().Msgf(format, v...) }
