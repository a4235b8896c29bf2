package utils

import (
	"net/http"
	"net/netip"
	"net/url"
	"strings"
)

var privatePrefixes = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("169.254.0.0/16"),
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("fe80::/10"),
	netip.MustParsePrefix("fc00::/7"),
}

// OriginPolicy decides which browser origins may call the API. Local and
// private-network origins are always accepted; anything else must be listed.
type OriginPolicy struct {
	extra map[string]bool
}

// NewOriginPolicy accepts the listed origins in addition to the local ones.
// Entries are compared as scheme://host[:port], case-insensitively.
func NewOriginPolicy(allowed []string) *OriginPolicy {
	p := &OriginPolicy{extra: make(map[string]bool, len(allowed))}
	for _, origin := range allowed {
		if o := canonicalOrigin(origin); o != "" {
			p.extra[o] = true
		}
	}
	return p
}

func canonicalOrigin(origin string) string {
	parsed, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return strings.ToLower(parsed.Scheme + "://" + parsed.Host)
}

// Allowed reports whether origin may make cross-origin requests.
func (p *OriginPolicy) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	if p != nil && p.extra[canonicalOrigin(origin)] {
		return true
	}
	return IsLocalOrigin(origin)
}

// IsLocalOrigin accepts localhost, private and link-local IPs, .local mDNS
// names and single-label LAN hostnames.
func IsLocalOrigin(origin string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	hostname := strings.ToLower(parsed.Hostname())

	switch {
	case hostname == "localhost", strings.HasSuffix(hostname, ".local"):
		return true
	case !strings.Contains(hostname, ".") && !strings.Contains(hostname, ":"):
		return true
	}

	addr, err := netip.ParseAddr(hostname)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range privatePrefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// Middleware sets CORS headers for allowed origins and answers preflight
// requests directly.
func (p *OriginPolicy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if p.Allowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
