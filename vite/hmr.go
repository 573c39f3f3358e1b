package vite

import (
	"log/slog"
	"strings"
	"time"

	fws "github.com/fasthttp/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/nilotpaul/spaboot/metrics"
	"github.com/nilotpaul/spaboot/setting"
)

const (
	hmrTargetKey = "hmr_target"
	// vite-ping is used by the client to check the server is back after a restart.
	hmrPingProtocol = "vite-ping"
)

// HMRHandler upgrades hot-reload websocket requests on the app and bridges
// them to the tool. Everything else is passed on.
func (s *Server) HMRHandler() fiber.Handler {
	upgrade := websocket.New(s.bridgeHMR, websocket.Config{
		Subprotocols: []string{setting.ViteHMRProtocol, hmrPingProtocol},
	})

	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) || !isHMRProtocol(c.Get("Sec-WebSocket-Protocol")) {
			return c.Next()
		}

		c.Locals(hmrTargetKey, s.hmrURL(c.OriginalURL()))
		return upgrade(c)
	}
}

func isHMRProtocol(header string) bool {
	for _, p := range strings.Split(header, ",") {
		switch strings.TrimSpace(p) {
		case setting.ViteHMRProtocol, hmrPingProtocol:
			return true
		}
	}

	return false
}

func (s *Server) hmrURL(originalURL string) string {
	u := s.tool.URL()
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}

	return u + originalURL
}

func (s *Server) bridgeHMR(conn *websocket.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Debug("failed to close the hmr connection", "err", err)
		}
	}()

	target, _ := conn.Locals(hmrTargetKey).(string)
	dialer := fws.Dialer{
		HandshakeTimeout: 10 * time.Second,
		Subprotocols:     []string{conn.Subprotocol()},
	}

	upstream, _, err := dialer.Dial(target, nil)
	if err != nil {
		slog.Error("HMR bridge error", "target", target, "err", err)
		msg := fws.FormatCloseMessage(fws.CloseInternalServerErr, "dev server unavailable")
		if err := conn.WriteMessage(fws.CloseMessage, msg); err != nil {
			slog.Debug("failed to write hmr close message", "err", err)
		}
		return
	}
	defer upstream.Close()

	metrics.HMRConnections.Inc()
	slog.Debug("new hmr connection", "remote", conn.NetConn().RemoteAddr(), "target", target)

	errc := make(chan error, 2)
	go pump(upstream, conn.Conn, errc)
	go pump(conn.Conn, upstream, errc)

	if err := <-errc; err != nil && !fws.IsCloseError(err, fws.CloseNormalClosure, fws.CloseGoingAway) {
		slog.Debug("hmr connection closed", "err", err)
	}
}

func pump(dst, src *fws.Conn, errc chan<- error) {
	for {
		mt, msg, err := src.ReadMessage()
		if err != nil {
			errc <- err
			return
		}
		if err := dst.WriteMessage(mt, msg); err != nil {
			errc <- err
			return
		}
	}
}
