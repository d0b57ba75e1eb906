package middleware

import (
	"context"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/reply"
)

// UnknownAddr stands in for a client address no header reveals.
const UnknownAddr = "0.0.0.0"

// forwardHeaders are consulted in order for the client address.
var forwardHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// nonPublic holds the IANA special-purpose ranges netip.Addr.IsPrivate leaves out.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress stores the client address found by ClientAddr
// in the request context under reply.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), reply.IpAddrKey, ClientAddr(r.Header))
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientAddr reads the client address from the forwarding headers.
//
// Each header is walked right to left, skipping proxies on non-public addresses,
// so the result is the address just before the first public hop.
// ClientAddr returns UnknownAddr when no header holds a public address.
func ClientAddr(h http.Header) string {
	for _, name := range forwardHeaders {
		hops := strings.Split(h.Get(name), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil || !isPublic(addr) {
				continue
			}

			return addr.String()
		}
	}

	return UnknownAddr
}

func isPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}

	for _, p := range nonPublic {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
