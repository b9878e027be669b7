// Package trust holds the allowlist of domains that are classified as safe
// without fetching or scoring their content.
package trust

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/domain"
)

// DefaultDomains are the well-known root domains trusted out of the box
var DefaultDomains = []string{
	"youtube.com",
	"instagram.com",
	"facebook.com",
	"google.com",
	"amazon.com",
	"linkedin.com",
	"capitaloneshopping.com",
	"retailmenot.com",
	"ebay.com",
	"walmart.com",
	"target.com",
	"bestbuy.com",
}

// Registry is an immutable set of trusted hosts and root domains. It is built
// once at startup and shared read-only, so it is safe for concurrent use.
type Registry struct {
	domains map[string]struct{}
}

// New creates a registry from the given domains. Entries are normalized the
// same way user input is, so "https://Example.com/" and "example.com" are equal.
func New(domains ...string) *Registry {
	set := make(map[string]struct{}, len(domains))

	for _, d := range domains {
		host := domain.Normalize(d)
		if host == "" {
			continue
		}

		set[host] = struct{}{}
	}

	return &Registry{domains: set}
}

// Default creates a registry populated with DefaultDomains
func Default() *Registry {
	return New(DefaultDomains...)
}

// IsTrusted reports whether the normalized host or its root domain is a member
// of the allowlist
func (r *Registry) IsTrusted(host string) bool {
	if r == nil {
		return false
	}

	h := domain.Normalize(host)
	if h == "" {
		return false
	}

	if _, ok := r.domains[h]; ok {
		return true
	}

	_, ok := r.domains[domain.RootDomain(h)]

	return ok
}

// Domains returns the sorted allowlist entries
func (r *Registry) Domains() []string {
	if r == nil {
		return nil
	}

	out := lo.Keys(r.domains)
	sort.Strings(out)

	return out
}

// Len returns the number of allowlist entries
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.domains)
}

// String renders the allowlist as a comma separated list
func (r *Registry) String() string {
	return strings.Join(r.Domains(), ",")
}
