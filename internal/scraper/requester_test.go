package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"webnovel-scraper/internal/config"
)

func newTestRequester(t *testing.T, cfg config.ScrapingConfig) *Requester {
	t.Helper()
	r, err := NewRequester(cfg)
	if err != nil {
		t.Fatalf("NewRequester: %v", err)
	}
	return r
}

func TestFetchSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		fmt.Fprint(w, "<html><body>ok</body></html>")
	}))
	defer srv.Close()

	body, err := newTestRequester(t, config.ScrapingConfig{}).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(string(body), "ok") {
		t.Errorf("body = %q", body)
	}
	if gotUA != config.DefaultUserAgent {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if !strings.HasPrefix(gotAccept, "text/html") {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestRequester(t, config.ScrapingConfig{}).Fetch(context.Background(), srv.URL+"/missing")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound || fetchErr.URL != srv.URL+"/missing" {
		t.Errorf("fetch error = %+v", fetchErr)
	}
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestRequester(t, config.ScrapingConfig{Timeout: 2}).Fetch(context.Background(), url)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Err == nil || fetchErr.StatusCode != 0 {
		t.Fatalf("err = %#v, want transport FetchError", err)
	}
}

func TestFetchDecodesCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
		w.Write([]byte("<p>caf\xe9</p>"))
	}))
	defer srv.Close()

	body, err := newTestRequester(t, config.ScrapingConfig{}).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != "<p>café</p>" {
		t.Errorf("body = %q", body)
	}
}

func TestFetchRespectsRobots(t *testing.T) {
	var pageHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pageHits, 1)
		fmt.Fprint(w, "page")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := newTestRequester(t, config.ScrapingConfig{Polite: config.PoliteConfig{RespectRobotsTxt: true}})

	if _, err := r.Fetch(context.Background(), srv.URL+"/private/ch1"); !errors.Is(err, ErrDisallowed) {
		t.Fatalf("err = %v, want ErrDisallowed", err)
	}
	if _, err := r.Fetch(context.Background(), srv.URL+"/public/ch1"); err != nil {
		t.Fatalf("allowed fetch: %v", err)
	}
	if n := atomic.LoadInt32(&pageHits); n != 1 {
		t.Errorf("page hits = %d, want 1", n)
	}
}

func TestFetchWaitsBetweenRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "x")
	}))
	defer srv.Close()

	r := newTestRequester(t, config.ScrapingConfig{Polite: config.PoliteConfig{DelayMS: 80}})

	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := r.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("Fetch: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("two fetches took %v, want at least the polite delay", elapsed)
	}
}

func TestFetchDelayHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "x")
	}))
	defer srv.Close()

	r := newTestRequester(t, config.ScrapingConfig{Polite: config.PoliteConfig{DelayMS: 10_000}})
	if _, err := r.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := r.Fetch(ctx, srv.URL); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestFetchThroughProxy(t *testing.T) {
	var proxiedHost string
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxiedHost = r.URL.Host
		fmt.Fprint(w, "via proxy")
	}))
	defer proxy.Close()

	r := newTestRequester(t, config.ScrapingConfig{Proxy: config.ProxyConfig{HTTP: proxy.URL}})

	body, err := r.Fetch(context.Background(), "http://novel.invalid/chapter/1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != "via proxy" || proxiedHost != "novel.invalid" {
		t.Errorf("body = %q, proxied host = %q", body, proxiedHost)
	}
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	r := newTestRequester(t, config.ScrapingConfig{Timeout: 2})

	if err := r.Probe(context.Background(), srv.URL); err != nil {
		t.Errorf("reachable server: %v", err)
	}
	srv.Close()
	if err := r.Probe(context.Background(), srv.URL); err == nil {
		t.Error("closed server reported reachable")
	}
}

func TestParseRobotsTxt(t *testing.T) {
	rules := parseRobotsTxt(`
# comment
User-agent: googlebot
Disallow: /only-google

User-agent: *
Disallow: /admin
Disallow:
Crawl-delay: 1.5
`)
	if len(rules.Disallowed) != 1 || rules.Disallowed[0] != "/admin" {
		t.Errorf("disallowed = %v", rules.Disallowed)
	}
	if rules.CrawlDelay != 1500*time.Millisecond {
		t.Errorf("crawl delay = %v", rules.CrawlDelay)
	}
}

func TestParseRobotsTxtSkipsBadCrawlDelay(t *testing.T) {
	tests := []struct {
		name string
		body string
		want time.Duration
	}{
		{"garbage", "User-agent: *\nCrawl-delay: soon\n", 0},
		{"negative", "User-agent: *\nCrawl-delay: -3\n", 0},
		{"garbage keeps earlier value", "User-agent: *\nCrawl-delay: 2\nCrawl-delay: 5s\n", 2 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRobotsTxt(tt.body).CrawlDelay; got != tt.want {
				t.Errorf("crawl delay = %v, want %v", got, tt.want)
			}
		})
	}
}
