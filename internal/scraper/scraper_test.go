package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"webnovel-scraper/internal/config"
	"webnovel-scraper/internal/sites"
)

const bookPath = "/fiction/42/test-book"

// novelServer serves a three chapter RoyalRoad-style book. Chapter 2 has no
// heading, chapter 3 has no body container.
type novelServer struct {
	*httptest.Server
	mu   sync.Mutex
	hits map[string]int
}

func newNovelServer(t *testing.T, missing ...string) *novelServer {
	t.Helper()
	pages := map[string]string{
		bookPath: `<html><body><h1>Test Book</h1><table id="chapters">
<tr><td><a href="` + bookPath + `/chapter/1/start">Start</a></td></tr>
<tr><td><a href="` + bookPath + `/chapter/2/middle">Middle</a></td></tr>
<tr><td><a href="` + bookPath + `/chapter/3/end">End</a></td></tr>
</table></body></html>`,
		bookPath + "/chapter/1/start":  `<html><body><h1>1. Start</h1><div class="chapter-content"><p>One two three.</p></div></body></html>`,
		bookPath + "/chapter/2/middle": `<html><body><div class="chapter-content"><p>Four five.</p></div></body></html>`,
		bookPath + "/chapter/3/end":    `<html><body><h1>3. End</h1><p>Comments only</p></body></html>`,
	}
	for _, p := range missing {
		delete(pages, p)
	}

	s := &novelServer{hits: make(map[string]int)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, page)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *novelServer) hitsFor(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

type savedChapter struct {
	Title, Body string
}

type memStore struct {
	mu       sync.Mutex
	chapters map[int]savedChapter
	book     string
}

func newMemStore() *memStore {
	return &memStore{chapters: make(map[int]savedChapter)}
}

func (m *memStore) Exists(book string, index int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.chapters[index]
	return ok
}

func (m *memStore) SaveChapter(book string, index int, title, body string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.book = book
	m.chapters[index] = savedChapter{Title: title, Body: body}
	return fmt.Sprintf("%s/%03d", book, index), nil
}

func newDownloader(t *testing.T, store ChapterStore) *Downloader {
	t.Helper()
	requester, err := NewRequester(config.ScrapingConfig{Timeout: 5})
	if err != nil {
		t.Fatal(err)
	}
	return &Downloader{Client: sites.NewClient(requester), Store: store}
}

func royalRoad(t *testing.T) sites.Profile {
	t.Helper()
	p, err := sites.DefaultRegistry().Resolve("https://www.royalroad.com/fiction/1/x")
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDownloadStoresChaptersInOrder(t *testing.T) {
	srv := newNovelServer(t)
	store := newMemStore()
	d := newDownloader(t, store)

	var events []Progress
	d.OnProgress = func(p Progress) { events = append(events, p) }

	res, err := d.Download(context.Background(), royalRoad(t), srv.URL+bookPath)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	if res.Title != "Test Book" || res.Total != 3 || len(res.Saved) != 3 || store.book != "Test Book" {
		t.Fatalf("result = %+v", res)
	}
	want := map[int]savedChapter{
		1: {"1. Start", "One two three."},
		2: {"Middle", "Four five."},
		3: {"3. End", ""},
	}
	for i, w := range want {
		if got := store.chapters[i]; got != w {
			t.Errorf("chapter %d = %+v, want %+v", i, got, w)
		}
	}
	if len(res.Empty) != 1 || res.Empty[0].Index != 3 {
		t.Errorf("empty = %+v", res.Empty)
	}
	if res.Words() != 5 {
		t.Errorf("words = %d", res.Words())
	}
	if len(events) != 3 || events[2].Percent != 100 || events[0].Index != 1 {
		t.Errorf("events = %+v", events)
	}
}

func TestDownloadContinuesPastFailedChapter(t *testing.T) {
	srv := newNovelServer(t, bookPath+"/chapter/2/middle")
	d := newDownloader(t, newMemStore())

	res, err := d.Download(context.Background(), royalRoad(t), srv.URL+bookPath)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if len(res.Saved) != 2 || len(res.Failed) != 1 || res.Failed[0].Index != 2 {
		t.Fatalf("result = %+v", res)
	}
	var fetchErr *FetchError
	if !errors.As(res.Failed[0].Err, &fetchErr) || fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("failure = %v", res.Failed[0].Err)
	}
}

func TestDownloadStopOnError(t *testing.T) {
	srv := newNovelServer(t, bookPath+"/chapter/2/middle")
	d := newDownloader(t, newMemStore())
	d.StopOnError = true

	res, err := d.Download(context.Background(), royalRoad(t), srv.URL+bookPath)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("err = %v, want FetchError", err)
	}
	if len(res.Saved) != 1 {
		t.Errorf("saved = %d, want 1", len(res.Saved))
	}
	if srv.hitsFor(bookPath+"/chapter/3/end") != 0 {
		t.Error("chapter after the failure was fetched")
	}
}

func TestDownloadCancelBetweenChapters(t *testing.T) {
	srv := newNovelServer(t)
	d := newDownloader(t, newMemStore())
	d.Control = &Control{}
	d.OnProgress = func(p Progress) {
		if p.Index == 1 {
			d.Control.Cancel()
		}
	}

	res, err := d.Download(context.Background(), royalRoad(t), srv.URL+bookPath)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if res == nil || len(res.Saved) != 1 {
		t.Fatalf("partial result = %+v", res)
	}
	if srv.hitsFor(bookPath+"/chapter/2/middle") != 0 {
		t.Error("fetch started after cancel")
	}
}

func TestDownloadPauseResume(t *testing.T) {
	srv := newNovelServer(t)
	d := newDownloader(t, newMemStore())
	d.Control = &Control{}
	d.OnProgress = func(p Progress) {
		if p.Index == 1 {
			d.Control.Pause()
			go func() {
				time.Sleep(30 * time.Millisecond)
				if srv.hitsFor(bookPath+"/chapter/2/middle") != 0 {
					t.Error("fetched while paused")
				}
				d.Control.Resume()
			}()
		}
	}

	res, err := d.Download(context.Background(), royalRoad(t), srv.URL+bookPath)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if len(res.Saved) != 3 {
		t.Fatalf("saved = %d", len(res.Saved))
	}
}

func TestDownloadSkipsExisting(t *testing.T) {
	srv := newNovelServer(t)
	store := newMemStore()
	store.chapters[1] = savedChapter{Title: "kept", Body: "kept"}

	d := newDownloader(t, store)
	d.SkipExisting = true

	res, err := d.Download(context.Background(), royalRoad(t), srv.URL+bookPath)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != 1 || len(res.Saved) != 2 {
		t.Fatalf("result = %+v", res)
	}
	if srv.hitsFor(bookPath+"/chapter/1/start") != 0 || store.chapters[1].Title != "kept" {
		t.Error("existing chapter was refetched")
	}
}

func TestDownloadNoChapters(t *testing.T) {
	srv := newNovelServer(t)
	d := newDownloader(t, newMemStore())

	// a chapter page links to nothing under its own chapter directory
	res, err := d.Download(context.Background(), royalRoad(t), srv.URL+bookPath+"/chapter/1/start")
	if !errors.Is(err, sites.ErrNoChaptersFound) {
		t.Fatalf("err = %v", err)
	}
	if res != nil {
		t.Errorf("result = %+v, want nil", res)
	}
}
