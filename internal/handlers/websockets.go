package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 10 * time.Second
	maxInterval      = time.Minute
	maxIntervalMilli = 60_000
)

// wsEnvelope is the frame sent to page subscribers.
type wsEnvelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

const wsTypePage = "page"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins once the panel UI has a fixed host
}

// @Summary      Page stream
// @Description  WebSocket. Sends the page on connect, on every change, and at least every interval.
// @Tags         panel
// @Param        interval     query  string  false  "Resend period, e.g. 5s (max 1m)"
// @Param        interval_ms  query  int     false  "Resend period in milliseconds"
// @Param        access_token query  string  false  "Bearer token when the Authorization header cannot be set"
// @Failure      401          {object}  map[string]string
// @Router       /ws [get]
// @Security     BearerAuth
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	changes, unsubscribe := h.services.Subscribe()
	defer unsubscribe()

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	stream := pageStream{conn: conn, h: h}
	if !stream.send(true) {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-changes:
			if !stream.send(false) {
				return
			}
			ticker.Reset(interval)
		case <-ticker.C:
			if !stream.send(true) {
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// pageStream writes snapshots to one subscriber.
type pageStream struct {
	conn *websocket.Conn
	h    *Handler
	sent bool
	last uint64
}

// send writes the current page. Unless force is set, a snapshot whose version
// was already sent is skipped. It reports false once the connection is unusable.
func (s *pageStream) send(force bool) bool {
	snap := s.h.services.Snapshot()
	if !force && s.sent && snap.Version == s.last {
		return true
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(wsEnvelope{Type: wsTypePage, Data: snap}); err != nil {
		if s.h.log != nil {
			s.h.log.Infow("ws_write_failed", "version", snap.Version, "err", err)
		}
		return false
	}
	s.sent, s.last = true, snap.Version
	return true
}
