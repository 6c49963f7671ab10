package api

import (
	"net"
	"net/http"
	"strings"

	"palette-studio/internal/auth"
)

// clientIP returns the address the request came from. Proxy headers are
// only believed when the direct peer is a trusted proxy; the chain is then
// walked right to left and the first untrusted hop wins.
func (s *Server) clientIP(r *http.Request) string {
	peer := peerIP(r)
	if !auth.ContainsIP(s.trusted, peer) {
		return peer
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if net.ParseIP(hop) == nil {
				break
			}
			if i == 0 || !auth.ContainsIP(s.trusted, hop) {
				return hop
			}
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(realIP) != nil {
		return realIP
	}
	return peer
}

// peerIP is the host part of the TCP peer address.
func peerIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
