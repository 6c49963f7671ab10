package api

import (
	"sync/atomic"
	"time"

	"palette-studio/internal/palette"
)

// StatsTracker counts palette activity for the /api/stats endpoint.
// The per-scheme map is populated once and never mutated, so reads need
// no lock.
type StatsTracker struct {
	startTime time.Time
	total     atomic.Int64
	errors    atomic.Int64
	perScheme map[palette.Scheme]*atomic.Int64
}

// StatsResponse is the JSON response for /api/stats
type StatsResponse struct {
	UptimeSeconds    int64            `json:"uptimeSeconds"`
	TotalPalettes    int64            `json:"totalPalettes"`
	TotalErrors      int64            `json:"totalErrors"`
	LiveSessions     int64            `json:"liveSessions"`
	PalettesByScheme map[string]int64 `json:"palettesByScheme"`
}

// NewStatsTracker starts the uptime clock.
func NewStatsTracker() *StatsTracker {
	s := &StatsTracker{
		startTime: time.Now(),
		perScheme: make(map[palette.Scheme]*atomic.Int64),
	}
	for _, scheme := range palette.Schemes() {
		s.perScheme[scheme] = new(atomic.Int64)
	}
	return s
}

// RecordPalette counts one generated palette.
func (s *StatsTracker) RecordPalette(scheme palette.Scheme) {
	s.total.Add(1)
	if c, ok := s.perScheme[scheme]; ok {
		c.Add(1)
	}
	MetricGeneratedTotal.WithLabelValues(string(scheme)).Inc()
}

// RecordError counts one rejected request.
func (s *StatsTracker) RecordError(kind string) {
	s.errors.Add(1)
	MetricErrorsTotal.WithLabelValues(kind).Inc()
}

// Snapshot returns the current counters.
func (s *StatsTracker) Snapshot(liveSessions int64) StatsResponse {
	byScheme := make(map[string]int64, len(s.perScheme))
	for scheme, c := range s.perScheme {
		byScheme[string(scheme)] = c.Load()
	}
	return StatsResponse{
		UptimeSeconds:    int64(time.Since(s.startTime).Seconds()),
		TotalPalettes:    s.total.Load(),
		TotalErrors:      s.errors.Load(),
		LiveSessions:     liveSessions,
		PalettesByScheme: byScheme,
	}
}
