package feed

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"

	"jobdeck/cmd/internal/auth/session"
)

const (
	wsSubprotocol = "jobdeck.feed.v1"

	wsDefaultSendQueueSize = 256
	wsMinSendQueueSize     = 32

	wsDefaultWriteTimeout = 5 * time.Second
	wsMaxFrameBytes       = 4 << 10

	wsHeartbeatInterval = 25 * time.Second
	wsHeartbeatTimeout  = 5 * time.Second
	wsMaxPingFailures   = 3

	// Origin is required by default; only localhost is allowed out of the box.
	wsDefaultOriginRequired = true
	wsDefaultAllowedOrigins = "http://localhost,http://127.0.0.1"
)

// Gateway is the WebSocket entrypoint for the live posting feed.
//
// It enforces origin policy and subprotocol selection, then streams Hub
// events until the peer disconnects. Authentication happens before upgrade:
// the route is mounted behind the session middleware and the gateway reads
// the verified identity from the request context.
type Gateway struct {
	log *slog.Logger
	hub *Hub

	originRequired bool
	allowedOrigins []string

	// Derived for websocket.Accept origin checks. Accept authorizes same-host
	// origins by default; cross-origin requires OriginPatterns.
	originPatterns []string

	writeTimeout  time.Duration
	sendQueueSize int

	heartbeatEvery   time.Duration
	heartbeatTimeout time.Duration
}

// NewGateway constructs a feed gateway with secure defaults.
func NewGateway(log *slog.Logger, hub *Hub) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	if hub == nil {
		hub = NewHub(log)
	}

	g := &Gateway{log: log, hub: hub}

	g.originRequired = envBool("JOBDECK_WS_ORIGIN_REQUIRED", wsDefaultOriginRequired)
	g.allowedOrigins = envCSV("JOBDECK_WS_ALLOWED_ORIGINS", wsDefaultAllowedOrigins)
	g.originPatterns = originPatternsFrom(g.allowedOrigins)

	g.writeTimeout = envDuration("JOBDECK_WS_WRITE_TIMEOUT", wsDefaultWriteTimeout)

	g.sendQueueSize = envInt("JOBDECK_WS_SEND_QUEUE", wsDefaultSendQueueSize)
	if g.sendQueueSize < wsMinSendQueueSize {
		g.sendQueueSize = wsMinSendQueueSize
	}

	g.heartbeatEvery = envDuration("JOBDECK_WS_HEARTBEAT_INTERVAL", wsHeartbeatInterval)
	g.heartbeatTimeout = envDuration("JOBDECK_WS_HEARTBEAT_TIMEOUT", wsHeartbeatTimeout)

	return g
}

// Hub returns the gateway's hub for wiring as a jobs.Notifier.
func (g *Gateway) Hub() *Hub { return g.hub }

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := session.IdentityFrom(r.Context())
	if !ok {
		// Only reachable if the route was mounted without the middleware.
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := g.enforceOrigin(r); err != nil {
		g.log.Info("feed.reject.origin", "err", err, "origin", r.Header.Get("Origin"), "remote", r.RemoteAddr)
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols:   []string{wsSubprotocol},
		OriginPatterns: g.originPatterns,
	})
	if err != nil {
		g.log.Error("feed.accept.fail", "err", err)
		return
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "bye") }()

	if sp := conn.Subprotocol(); sp != wsSubprotocol {
		g.log.Info("feed.reject.subprotocol", "got", sp, "want", wsSubprotocol)
		_ = conn.Close(websocket.StatusProtocolError, "subprotocol required")
		return
	}

	conn.SetReadLimit(wsMaxFrameBytes)

	sessionID := newRandomHex(10)
	c := newClient(id.UserID, sessionID, g.sendQueueSize)
	g.hub.add(c)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var closeOnce sync.Once
	shutdown := func(code websocket.StatusCode, reason string) {
		closeOnce.Do(func() {
			g.hub.remove(sessionID)
			c.close()
			_ = conn.Close(code, reason)
			cancel()
		})
	}

	g.log.Info("feed.connect", "session_id", sessionID, "user_id", id.UserID)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)

		for {
			select {
			case <-ctx.Done():
				return
			case <-c.doneCh():
				return
			case ev := <-c.send:
				if err := writeEvent(ctx, conn, ev, g.writeTimeout); err != nil {
					g.log.Info("feed.write.fail", "session_id", sessionID, "close_status", websocket.CloseStatus(err), "err", err)
					shutdown(websocket.StatusAbnormalClosure, "write failed")
					return
				}
			}
		}
	}()

	heartbeatDone := make(chan struct{})
	go func() {
		defer close(heartbeatDone)

		t := time.NewTicker(g.heartbeatEvery)
		defer t.Stop()

		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.doneCh():
				return
			case <-t.C:
				hbCtx, hbCancel := context.WithTimeout(ctx, g.heartbeatTimeout)
				err := conn.Ping(hbCtx)
				hbCancel()

				if err != nil {
					failures++
					if failures >= wsMaxPingFailures {
						shutdown(websocket.StatusGoingAway, "heartbeat failed")
						return
					}
					continue
				}
				failures = 0
			}
		}
	}()

	// The feed is server-to-client only; reads exist to notice the peer
	// going away. Any payload the peer sends is discarded.
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			if websocket.CloseStatus(err) != -1 {
				shutdown(websocket.StatusNormalClosure, "peer closed")
			} else if errors.Is(err, context.Canceled) {
				shutdown(websocket.StatusNormalClosure, "context done")
			} else {
				shutdown(websocket.StatusAbnormalClosure, "read failed")
			}
			break
		}
	}

	<-writerDone
	<-heartbeatDone
	g.log.Info("feed.disconnect", "session_id", sessionID, "user_id", id.UserID)
}

func writeEvent(parent context.Context, conn *websocket.Conn, ev Event, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, b)
}

// ---- origin policy ----

func (g *Gateway) enforceOrigin(r *http.Request) error {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		if g.originRequired {
			return errors.New("missing origin")
		}
		return nil
	}

	if len(g.allowedOrigins) == 0 {
		return errors.New("origin not allowed (no allowlist)")
	}

	originHost := originHostOnly(origin)

	for _, a := range g.allowedOrigins {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if a == "*" {
			// Strongly discouraged, but honored if explicitly configured.
			return nil
		}
		if origin == a {
			return nil
		}
		if originHost != "" && originHost == originHostOnly(a) {
			return nil
		}
	}

	return fmt.Errorf("origin not allowed: %s", origin)
}

func originHostOnly(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return ""
		}
		h := strings.TrimSpace(u.Host)
		if h == "" {
			return ""
		}
		if host, _, err := net.SplitHostPort(h); err == nil {
			return strings.ToLower(host)
		}
		return strings.ToLower(h)
	}

	if host, _, err := net.SplitHostPort(s); err == nil {
		return strings.ToLower(host)
	}
	return strings.ToLower(s)
}

func originPatternsFrom(allowed []string) []string {
	seen := make(map[string]struct{}, len(allowed))
	var out []string
	for _, a := range allowed {
		h := originHostOnly(a)
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

// ---- small helpers ----

func newRandomHex(nBytes int) string {
	if nBytes <= 0 {
		nBytes = 16
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envCSV(key, def string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		v = def
	}
	parts := strings.Split(v, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
