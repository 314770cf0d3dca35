package sites

import (
	"errors"
	"fmt"
	"strings"

	"webnovel-scraper/internal/navigator"
)

var (
	// ErrUnsupportedSite means no registered profile matches the URL's host.
	ErrUnsupportedSite = errors.New("unsupported site")
	// ErrNoChaptersFound means the book page was fetched but no selector tier
	// produced a usable chapter link.
	ErrNoChaptersFound = errors.New("no chapters found")
)

// Registry resolves URLs to profiles. It is immutable once built and safe
// for concurrent use.
type Registry struct {
	profiles []Profile
}

// NewRegistry builds a registry that tries profiles in the given order.
func NewRegistry(profiles ...Profile) *Registry {
	r := &Registry{profiles: make([]Profile, len(profiles))}
	for i, p := range profiles {
		r.profiles[i] = p.clone()
	}
	return r
}

// DefaultRegistry returns a registry over the built-in profiles.
func DefaultRegistry() *Registry {
	return NewRegistry(Builtin()...)
}

// Resolve returns the first profile, in registration order, with a domain
// pattern contained in the URL's host. Ties are settled by order alone.
func (r *Registry) Resolve(rawURL string) (Profile, error) {
	host := navigator.Hostname(rawURL)
	if host != "" {
		for _, p := range r.profiles {
			if p.matches(host) {
				return p.clone(), nil
			}
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnsupportedSite, rawURL)
}

// Profiles returns deep copies of the registered profiles in order.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, len(r.profiles))
	for i, p := range r.profiles {
		out[i] = p.clone()
	}
	return out
}

func (p Profile) matches(host string) bool {
	for _, d := range p.Domains {
		if d != "" && strings.Contains(host, strings.ToLower(d)) {
			return true
		}
	}
	return false
}
