package api

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKey int

const keyNameCtx ctxKey = iota

// keyName returns the authenticated API key name, or "" for anonymous calls.
func keyName(r *http.Request) string {
	name, _ := r.Context().Value(keyNameCtx).(string)
	return name
}

// withCORS sets CORS headers and answers preflight requests.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.Config.Env.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// guard enforces the IP whitelist, API key auth and rate limits. Without a
// key store every caller is anonymous and limited per client IP.
func (s *Server) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := s.clientIP(r)

		if s.Keys == nil {
			if !s.limiter.AllowWithDefault(ip, s.Config.RateLimitRPM) {
				s.rejectRateLimited(w, ip)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if !s.Keys.CheckIPAllowed(ip) {
			s.Stats.RecordError("ip_denied")
			writeError(w, http.StatusForbidden, "client address not allowed")
			return
		}

		name, secret, ok := r.BasicAuth()
		if !ok {
			s.Stats.RecordError("unauthorized")
			w.Header().Set("WWW-Authenticate", `Basic realm="palette"`)
			writeError(w, http.StatusUnauthorized, "API key required")
			return
		}
		if _, valid := s.Keys.ValidateCredentials(name, secret); !valid {
			s.Stats.RecordError("unauthorized")
			s.Log.WithFields(logrus.Fields{"key": name, "ip": ip}).Warn("invalid API key")
			w.Header().Set("WWW-Authenticate", `Basic realm="palette"`)
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}
		if !s.Keys.CheckRateLimit(name) {
			s.rejectRateLimited(w, name)
			return
		}

		ctx := context.WithValue(r.Context(), keyNameCtx, name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// allow charges one request to the caller: its API key when authenticated,
// otherwise its client IP. It returns the identity charged.
func (s *Server) allow(r *http.Request) (string, bool) {
	if name := keyName(r); name != "" && s.Keys != nil {
		return name, s.Keys.CheckRateLimit(name)
	}
	ip := s.clientIP(r)
	return ip, s.limiter.AllowWithDefault(ip, s.Config.RateLimitRPM)
}

func (s *Server) rejectRateLimited(w http.ResponseWriter, id string) {
	MetricRateLimited.Inc()
	s.Stats.RecordError("rate_limited")
	s.Log.WithField("client", id).Debug("rate limited")
	w.Header().Set("Retry-After", "1")
	writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
}

// instrument records handler latency under route.
func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	observer := MetricRequestDuration.WithLabelValues(route)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		observer.Observe(time.Since(start).Seconds())
	})
}

// withAccessLog writes one structured log line per request.
func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.Log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"bytes":    rec.bytes,
			"ip":       s.clientIP(r),
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// statusRecorder captures the response status. It forwards Hijack so the
// live websocket can upgrade through the middleware chain.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
