package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	liveReadLimit   = 1024
	liveIdleTimeout = 2 * time.Minute
	liveWriteWait   = 5 * time.Second
)

// LiveMessage is sent to live preview clients: a palette, or an error when
// the last request was rejected. The session stays open either way.
type LiveMessage struct {
	Type    string           `json:"type"` // "palette" or "error"
	Palette *PaletteResponse `json:"palette,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// handleLive upgrades to a websocket that regenerates the palette every
// time the client sends a PaletteRequest. Each request is charged against
// the caller's rate limit like a plain HTTP call.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if s.liveCount.Add(1) > int64(s.Config.MaxLiveSessions) {
		s.liveCount.Add(-1)
		s.Stats.RecordError("live_capacity")
		writeError(w, http.StatusServiceUnavailable, "too many live sessions")
		return
	}
	defer s.liveCount.Add(-1)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		s.Log.WithError(err).Debug("live upgrade failed")
		return
	}
	defer conn.Close()

	s.trackLive(conn, true)
	defer s.trackLive(conn, false)

	log := s.Log.WithFields(logrus.Fields{"ip": s.clientIP(r), "key": keyName(r)})
	log.Debug("live session opened")
	defer log.Debug("live session closed")

	conn.SetReadLimit(liveReadLimit)
	for {
		conn.SetReadDeadline(time.Now().Add(liveIdleTimeout))

		var req PaletteRequest
		if err := conn.ReadJSON(&req); err != nil {
			if _, isClose := err.(*websocket.CloseError); !isClose {
				log.WithError(err).Debug("live read ended")
			}
			return
		}

		var msg LiveMessage
		if id, ok := s.allow(r); ok {
			msg = s.livePalette(req)
		} else {
			MetricRateLimited.Inc()
			s.Stats.RecordError("rate_limited")
			log.WithField("client", id).Debug("live request rate limited")
			msg = LiveMessage{Type: "error", Error: "rate limit exceeded"}
		}
		conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			log.WithError(err).Debug("live write failed")
			return
		}
	}
}

func (s *Server) livePalette(req PaletteRequest) LiveMessage {
	base, scheme, err := s.resolve(req)
	if err == nil {
		var resp PaletteResponse
		if resp, err = s.build(base, scheme); err == nil {
			return LiveMessage{Type: "palette", Palette: &resp}
		}
	}

	var reqErr *requestError
	if errors.As(err, &reqErr) {
		s.Stats.RecordError(reqErr.kind)
		return LiveMessage{Type: "error", Error: err.Error()}
	}
	s.Stats.RecordError("internal")
	s.Log.WithError(err).Error("live palette failed")
	return LiveMessage{Type: "error", Error: "internal error"}
}

func (s *Server) trackLive(conn *websocket.Conn, open bool) {
	s.liveMu.Lock()
	defer s.liveMu.Unlock()
	if open {
		s.liveSessions[conn] = struct{}{}
		MetricLiveSessions.Inc()
		return
	}
	if _, ok := s.liveSessions[conn]; ok {
		delete(s.liveSessions, conn)
		MetricLiveSessions.Dec()
	}
}

// closeLiveSessions sends a going-away close frame to every live client.
// http.Server.Shutdown does not track hijacked connections.
func (s *Server) closeLiveSessions() {
	s.liveMu.Lock()
	defer s.liveMu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for conn := range s.liveSessions {
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
	}
}
