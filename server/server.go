package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	conn   *websocket.Conn
	send   chan []byte
	remote string
}

// ServeHTTP upgrades the request to a websocket and registers the peer.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.WithFields(log.Fields{"remote": r.RemoteAddr, "err": err}).Warn("websocket upgrade failed")
		return
	}
	c := &client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		remote: r.RemoteAddr,
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go h.writePump(c)
	go h.readPump(c)
}

// readPump only watches for the peer going away; clients do not send commands.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.Logger.WithFields(log.Fields{"remote": c.remote, "err": err}).Warn("websocket write failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type Server struct {
	addr string
	hub  *Hub
}

func NewServer(addr string, hub *Hub) *Server {
	return &Server{
		addr: addr,
		hub:  hub,
	}
}

// Serve listens on addr with the hub mounted at /ws until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) (err error) {
	mux := http.NewServeMux()
	mux.Handle("/ws", s.hub)
	srv := &http.Server{Addr: s.addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx)
	}()
	s.hub.Logger.WithFields(log.Fields{"addr": s.addr}).Info("streaming snapshots on /ws")
	if err = srv.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return
}
