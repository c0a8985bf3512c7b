package player

import (
	"encoding/json"
	"log/slog"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Conn is the capability the session layer hands the core: a live, sendable
// socket handle. The core never sees the transport's concrete type and never
// owns the connection.
type Conn interface {
	IsOpen() bool
	Send(b []byte) error
}

// Player is one connected identity (or one synthetic bot) for the lifetime
// of a session. The current room is referenced by id rather than pointer so
// Player and Room never hold each other directly. The mutable fields are
// touched from both the session goroutine and the room's tick goroutine, so
// they live behind the mutex.
type Player struct {
	UUID  string
	IsBot bool

	mu           sync.Mutex
	conn         Conn
	username     string
	roomID       string
	paddleSkinID string
}

func New(id, username string, conn Conn) *Player {
	return &Player{
		UUID:     id,
		username: username,
		conn:     conn,
	}
}

// NewBot creates a synthetic player with a generated two-word name. Bots
// have no connection and are never considered alive.
func NewBot() *Player {
	name := cases.Title(language.English).String(petname.Generate(2, " "))
	return &Player{
		UUID:     uuid.New().String(),
		IsBot:    true,
		username: name,
	}
}

func (p *Player) Username() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.username
}

func (p *Player) SetUsername(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.username = name
}

// RoomID returns the id of the room currently holding this player, or "".
func (p *Player) RoomID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.roomID
}

// SetRoom records (or clears, with "") the room back-reference.
func (p *Player) SetRoom(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roomID = id
}

func (p *Player) PaddleSkinID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paddleSkinID
}

func (p *Player) SetPaddleSkin(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paddleSkinID = id
}

// Alive reports whether the player can still receive messages.
func (p *Player) Alive() bool {
	p.mu.Lock()
	conn := p.conn
	p.mu.Unlock()
	return conn != nil && conn.IsOpen()
}

// SendJSON marshals v and delivers it fire-and-forget; delivery failures are
// logged, not propagated, because the tick loop never waits on the socket.
func (p *Player) SendJSON(v any) {
	p.mu.Lock()
	conn := p.conn
	p.mu.Unlock()

	if conn == nil || !conn.IsOpen() {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("Error marshaling outbound message", "error", err.Error(), "player", p.UUID)
		return
	}
	if err := conn.Send(b); err != nil {
		slog.Error("Error sending to player", "error", err.Error(), "player", p.UUID)
	}
}

// Detach clears the room back-reference and connection on disconnect.
func (p *Player) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roomID = ""
	p.conn = nil
}
