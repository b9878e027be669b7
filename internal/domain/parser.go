package domain

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// schemeSeparator marks input that already carries a URL scheme
const schemeSeparator = "://"

// multiLabelSuffixes are the second-level public suffixes recognized when
// reducing a host to its root domain. This is a fixed approximation of the
// public suffix list covering the common cases, not a replacement for it.
var multiLabelSuffixes = map[string]struct{}{
	"co.uk":  {},
	"org.uk": {},
	"ac.uk":  {},
	"gov.uk": {},
	"com.au": {},
	"net.au": {},
	"org.au": {},
	"co.in":  {},
}

// HasScheme reports whether the raw input already includes a scheme separator
func HasScheme(input string) bool {
	return strings.Contains(input, schemeSeparator)
}

// Normalize extracts a canonical lowercase hostname from a bare domain, a URL,
// or messy user input. It never fails: when the input is not a valid URL the
// authority is cut out of the raw string, and input with no authority at all
// falls back to the lowercased, trimmed raw string.
func Normalize(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	forParse := s
	if !HasScheme(s) {
		// inputs like example.com/path need a scheme to parse the authority
		forParse = "https://" + s
	}

	var host string

	u, err := url.Parse(forParse)
	if err == nil {
		host = u.Host
		if host == "" {
			host = u.Path
		}
	} else {
		log.Debug().Err(err).Str("input", s).Msg("url parse failed, extracting authority from raw input")

		host = authority(forParse)
		if strings.TrimSpace(host) == "" {
			return strings.Trim(strings.ToLower(s), "/")
		}
	}

	host = strings.TrimSpace(host)

	// strip credentials and port
	if idx := strings.LastIndex(host, "@"); idx != -1 {
		host = host[idx+1:]
	}

	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}

	host = strings.Trim(strings.TrimSpace(host), "/")

	return strings.ToLower(host)
}

// authority returns the part of a URL between the scheme separator and the
// first path, query, or fragment delimiter
func authority(rawURL string) string {
	if idx := strings.Index(rawURL, schemeSeparator); idx != -1 {
		rawURL = rawURL[idx+len(schemeSeparator):]
	}

	if idx := strings.IndexAny(rawURL, "/?#"); idx != -1 {
		rawURL = rawURL[:idx]
	}

	return rawURL
}

// RootDomain reduces a hostname to its registrable root domain: the last two
// labels, or the last three when the last two form a known multi-label suffix
// such as co.uk. Hosts with two or fewer labels are returned as-is. Stray
// leading or trailing dots are dropped so the reduction is idempotent.
func RootDomain(host string) string {
	host = strings.Trim(strings.ToLower(host), ".")

	parts := strings.Split(host, ".")
	if len(parts) <= 2 {
		return host
	}

	n := len(parts)
	if _, ok := multiLabelSuffixes[parts[n-2]+"."+parts[n-1]]; ok {
		return strings.Trim(strings.Join(parts[n-3:], "."), ".")
	}

	return strings.Trim(strings.Join(parts[n-2:], "."), ".")
}

// Info contains the normalized host and root domain derived from raw input
type Info struct {
	// Host is the normalized hostname
	Host string `json:"host"`
	// RootDomain is the registrable root domain of Host
	RootDomain string `json:"base_domain"`
}

// Parse normalizes raw input and resolves its root domain in one step
func Parse(input string) Info {
	host := Normalize(input)

	return Info{
		Host:       host,
		RootDomain: RootDomain(host),
	}
}
