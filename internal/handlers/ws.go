package handlers

import (
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"Pongside/internal/auth"
	"Pongside/internal/player"
	"Pongside/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsConn adapts a gorilla connection to the player.Conn capability. Writes
// are serialized; the first failed write marks the socket closed so the
// room's liveness checks see the drop.
type wsConn struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed atomic.Bool
}

func (c *wsConn) IsOpen() bool {
	return !c.closed.Load()
}

func (c *wsConn) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.conn.WriteMessage(websocket.TextMessage, b)
	if err != nil {
		c.closed.Store(true)
	}
	return err
}

func (c *wsConn) markClosed() {
	c.closed.Store(true)
}

// WsHandler upgrades the request and runs the read loop for one session.
// The socket belongs to this handler; rooms and players only hold the
// capability interface.
func (h *Handler) WsHandler(c *gin.Context) {
	claims, err := auth.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Error upgrading websocket", "error", err.Error())
		return
	}

	wc := &wsConn{conn: conn}
	p := player.New(claims.ID, claims.Username, wc)
	h.sessions.Store(p.UUID, p)
	slog.Info("Player connected", "player", p.UUID, "username", p.Username())

	defer func() {
		wc.markClosed()
		h.sessions.Delete(p.UUID)
		// A room that has launched notices the dead socket on its next tick
		// and forfeits; a still-forming room just gives the slot back.
		if r := h.Registry.Get(p.RoomID()); r != nil && !r.Launched() {
			r.RemovePlayer(p)
			p.Detach()
		}
		conn.Close()
		slog.Info("Player disconnected", "player", p.UUID)
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			slog.Error("Error decoding envelope", "error", err.Error(), "player", p.UUID)
			continue
		}

		switch env.Type {
		case protocol.ChannelChat:
			// Chat shares the envelope; delivery here is a relay to the
			// room peer with the sender excluded.
			if r := h.Registry.Get(p.RoomID()); r != nil {
				r.SendMessage(env, p.UUID)
			}
		case protocol.ChannelGame:
			h.handleGameMessage(p, env)
		default:
			slog.Error("Unknown envelope type", "type", env.Type, "player", p.UUID)
		}
	}
}

func (h *Handler) handleGameMessage(p *player.Player, env protocol.Envelope) {
	tag, err := protocol.PayloadType(env)
	if err != nil {
		slog.Error("Error reading payload tag", "error", err.Error(), "player", p.UUID)
		return
	}

	switch tag {
	case protocol.TypeMatchmaking:
		mm, err := protocol.DecodePayload[protocol.Matchmaking](env)
		if err != nil {
			slog.Error("Error decoding matchmaking", "error", err.Error(), "player", p.UUID)
			return
		}
		if mm.Username != "" {
			p.SetUsername(mm.Username)
		}
		if p.RoomID() != "" {
			return // already placed
		}
		h.Registry.Place(p)

	case protocol.TypePaddlePosition:
		pp, err := protocol.DecodePayload[protocol.PaddlePosition](env)
		if err != nil {
			slog.Error("Error decoding paddle position", "error", err.Error(), "player", p.UUID)
			return
		}
		if r := h.Registry.Get(p.RoomID()); r != nil {
			r.SetPaddlePosition(p.UUID, pp.Position)
		}

	case protocol.TypeSkinID:
		sk, err := protocol.DecodePayload[protocol.SkinID](env)
		if err != nil {
			slog.Error("Error decoding skin id", "error", err.Error(), "player", p.UUID)
			return
		}
		p.SetPaddleSkin(sk.SkinID)
		if r := h.Registry.Get(p.RoomID()); r != nil {
			r.SendMessage(protocol.NewSkinID(r.PaddleIndex(p.UUID), sk.SkinID), p.UUID)
		}

	default:
		slog.Error("Unknown game message", "type", tag, "player", p.UUID)
	}
}
