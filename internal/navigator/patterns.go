// Package navigator discovers chapter links on a book's table-of-contents
// page.
package navigator

import (
	"net/url"
	"strings"
)

// ResolveRelativeURL resolves href against baseURL. It returns "" when
// either side cannot be parsed or href is blank.
func ResolveRelativeURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// Hostname returns the lower-cased host (with port, if any) of rawURL.
func Hostname(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// BookBasePath returns scheme://host plus the first three path segments
// when the path starts with segment (for example "/fiction/123/title").
// Any other path is kept whole. Query and fragment are dropped.
func BookBasePath(rawURL, segment string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	path := u.Path
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) >= 3 && parts[0] == segment {
		path = "/" + strings.Join(parts[:3], "/")
	}

	base := url.URL{Scheme: u.Scheme, Host: u.Host, Path: path}
	return base.String()
}
