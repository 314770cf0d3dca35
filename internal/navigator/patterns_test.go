package navigator

import "testing"

func TestResolveRelativeURL(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"https://example.com/book/index.html", "ch-1.html", "https://example.com/book/ch-1.html"},
		{"https://example.com/book/", "/chapter/2", "https://example.com/chapter/2"},
		{"https://example.com/book/", "//cdn.example.com/x", "https://cdn.example.com/x"},
		{"https://example.com/book/", "https://other.org/y", "https://other.org/y"},
		{"https://example.com/book/", "   ", ""},
		{"https://example.com/book/", "", ""},
	}
	for _, tt := range tests {
		if got := ResolveRelativeURL(tt.base, tt.href); got != tt.want {
			t.Errorf("ResolveRelativeURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}

func TestHostname(t *testing.T) {
	tests := map[string]string{
		"https://WWW.RoyalRoad.com/fiction/1": "www.royalroad.com",
		"http://localhost:8080/x":             "localhost:8080",
		"not a url at all":                    "",
		"://bad":                              "",
	}
	for in, want := range tests {
		if got := Hostname(in); got != want {
			t.Errorf("Hostname(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBookBasePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://www.royalroad.com/fiction/12345/some-title", "https://www.royalroad.com/fiction/12345/some-title"},
		{"https://www.royalroad.com/fiction/12345/some-title/chapter/9/x?a=b#c", "https://www.royalroad.com/fiction/12345/some-title"},
		{"https://www.royalroad.com/fiction/12345/", "https://www.royalroad.com/fiction/12345/"},
		{"https://www.royalroad.com/profile/1/2/3", "https://www.royalroad.com/profile/1/2/3"},
	}
	for _, tt := range tests {
		if got := BookBasePath(tt.in, "fiction"); got != tt.want {
			t.Errorf("BookBasePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBasePathRulePrefix(t *testing.T) {
	rule := BasePathRule{Segment: "fiction", ChapterDir: "/chapter/"}
	got := rule.Prefix("https://www.royalroad.com/fiction/12345/some-title")
	if got != "https://www.royalroad.com/fiction/12345/some-title/chapter/" {
		t.Fatalf("got %q", got)
	}
}
