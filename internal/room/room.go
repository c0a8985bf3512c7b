package room

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"Pongside/internal/game"
	"Pongside/internal/player"
	"Pongside/internal/protocol"
	"Pongside/internal/services"
)

// Config tunes one room. Zero values fall back to the standard 60 Hz match
// to the configured winning score.
type Config struct {
	Mode         string
	ScoreToWin   int
	TickInterval time.Duration
	Clock        Clock
	Store        services.MatchStore
}

func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = "classic"
	}
	if c.ScoreToWin <= 0 {
		c.ScoreToWin = 11
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second / game.TickRate
	}
	if c.Clock == nil {
		c.Clock = RealClock()
	}
	return c
}

// Room owns two player slots, the simulation state, and the ticker driving
// it. Lifecycle: Forming -> Launched -> Ended.
type Room struct {
	ID  string
	cfg Config

	mu       sync.Mutex
	player1  *player.Player
	player2  *player.Player
	game     game.Data
	launched bool
	ended    bool

	quit     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func New(id string, cfg Config) *Room {
	return &Room{
		ID:   id,
		cfg:  cfg.withDefaults(),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// AddPlayer fills the first open slot, player1 before player2, and
// back-links the player by room id. Returns false once the game has
// launched or ended, or if the player already occupies a slot.
func (r *Room) AddPlayer(p *player.Player) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.launched || r.ended {
		return false
	}
	if (r.player1 != nil && r.player1.UUID == p.UUID) || (r.player2 != nil && r.player2.UUID == p.UUID) {
		return false
	}
	switch {
	case r.player1 == nil:
		r.player1 = p
	case r.player2 == nil:
		r.player2 = p
	default:
		return false
	}
	p.SetRoom(r.ID)
	return true
}

// RemovePlayer frees the player's slot and clears its back-reference; used
// on disconnect while the room is still forming.
func (r *Room) RemovePlayer(p *player.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.player1 != nil && r.player1.UUID == p.UUID {
		r.player1.SetRoom("")
		r.player1 = nil
	}
	if r.player2 != nil && r.player2.UUID == p.UUID {
		r.player2.SetRoom("")
		r.player2 = nil
	}
}

func (r *Room) IsFull() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.player1 != nil && r.player2 != nil
}

func (r *Room) Launched() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.launched
}

func (r *Room) Ended() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ended
}

func (r *Room) Mode() string { return r.cfg.Mode }

// Game returns a copy of the current simulation state.
func (r *Room) Game() game.Data {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game
}

// Done is closed when the tick loop has exited.
func (r *Room) Done() <-chan struct{} { return r.done }

// StartGame flips the room to Launched, reinitializes the simulation, tells
// each connected player which paddle they control, and starts the tick loop.
// The loop is running by the time StartGame returns.
func (r *Room) StartGame() error {
	r.mu.Lock()
	if r.ended {
		r.mu.Unlock()
		return fmt.Errorf("room %s: game already ended", r.ID)
	}
	if r.launched {
		r.mu.Unlock()
		return fmt.Errorf("room %s: game already launched", r.ID)
	}
	if r.player1 == nil || r.player2 == nil {
		r.mu.Unlock()
		return fmt.Errorf("room %s: not enough players", r.ID)
	}
	r.launched = true
	r.game = game.NewData()
	p1, p2 := r.player1, r.player2
	r.mu.Unlock()

	p1.SendJSON(protocol.NewGameStarted(1))
	p2.SendJSON(protocol.NewGameStarted(2))

	go r.run()
	slog.Info("Game started", "room", r.ID, "player1", p1.UUID, "player2", p2.UUID)
	return nil
}

// run is the fixed-cadence tick loop. Delta-time is measured against the
// clock, not assumed from the ticker, so frame jitter never desynchronizes
// the physics.
func (r *Room) run() {
	defer close(r.done)

	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()

	last := r.cfg.Clock.Now()
	for {
		select {
		case <-r.quit:
			return
		case <-ticker.C:
			now := r.cfg.Clock.Now()
			delta := now.Sub(last).Seconds()
			last = now

			if !r.tick(delta) {
				return
			}
		}
	}
}

// tick advances the simulation by one measured delta. Returns false once
// the room is torn down, by forfeit or by a win.
func (r *Room) tick(delta float64) bool {
	r.mu.Lock()
	p1, p2 := r.player1, r.player2

	// A dropped socket (or a freed slot) forfeits the match: one
	// disconnection broadcast to whoever is left, nothing persisted.
	if p1 == nil || p2 == nil || !p1.Alive() || !p2.Alive() {
		r.ended = true
		r.clearLocked()
		r.mu.Unlock()

		env := protocol.NewDisconnection()
		if p1 != nil {
			p1.SendJSON(env)
		}
		if p2 != nil {
			p2.SendJSON(env)
		}
		r.Stop()
		slog.Info("Game forfeited on disconnect", "room", r.ID)
		return false
	}

	r.game.Advance(delta)
	snapshot := r.game
	winner := r.game.Winner(r.cfg.ScoreToWin)
	r.mu.Unlock()

	env := protocol.NewGameData(snapshot)
	p1.SendJSON(env)
	p2.SendJSON(env)

	if winner != 0 {
		if err := r.EndGame(winner); err != nil {
			slog.Error("Error ending game", "error", err.Error(), "room", r.ID)
		}
		return false
	}
	return true
}

// EndGame is the win path: persists the result, announces the winner, and
// tears the room down. Calling it before StartGame is a caller bug.
func (r *Room) EndGame(winner int) error {
	r.mu.Lock()
	if !r.launched {
		r.mu.Unlock()
		return fmt.Errorf("room %s: endGame before startGame", r.ID)
	}
	if r.ended {
		r.mu.Unlock()
		return fmt.Errorf("room %s: game already ended", r.ID)
	}
	r.ended = true
	p1, p2 := r.player1, r.player2
	snapshot := r.game
	r.clearLocked()
	r.mu.Unlock()

	if r.cfg.Store != nil {
		record := services.MatchRecord{
			UUID:        uuid.New().String(),
			PlayerAUUID: p1.UUID,
			PlayerBUUID: p2.UUID,
			ScoreA:      snapshot.P1Score,
			ScoreB:      snapshot.P2Score,
			Winner:      winnerLabel(winner),
			Mode:        r.cfg.Mode,
			Date:        r.cfg.Clock.Now(),
		}
		if err := r.cfg.Store.SaveMatch(context.Background(), record); err != nil {
			slog.Error("Error persisting match result", "error", err.Error(), "room", r.ID)
		}
	}

	env := protocol.NewGameResult(winner)
	p1.SendJSON(env)
	p2.SendJSON(env)

	r.Stop()
	slog.Info("Game ended", "room", r.ID, "winner", winner)
	return nil
}

// Stop cancels the tick loop; stopping twice is a no-op.
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
}

// SendMessage fans an envelope out to each occupied slot with an open
// socket, skipping any excluded player ids.
func (r *Room) SendMessage(env protocol.Envelope, exclude ...string) {
	r.mu.Lock()
	players := []*player.Player{r.player1, r.player2}
	r.mu.Unlock()

	for _, p := range players {
		if p == nil || !p.Alive() || excluded(p.UUID, exclude) {
			continue
		}
		p.SendJSON(env)
	}
}

func excluded(id string, exclude []string) bool {
	for _, e := range exclude {
		if e == id {
			return true
		}
	}
	return false
}

// SetPaddlePosition stores a client-reported paddle position verbatim. The
// position is not clamped against PaddleSpeed; see the tuning notes.
func (r *Room) SetPaddlePosition(playerUUID string, pos game.Vector2) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.player1 != nil && r.player1.UUID == playerUUID {
		r.game.Paddle1 = pos
	} else if r.player2 != nil && r.player2.UUID == playerUUID {
		r.game.Paddle2 = pos
	}
}

// PaddleIndex reports which paddle a player controls: 1, 2, or 0 if the
// player has no slot here.
func (r *Room) PaddleIndex(playerUUID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.player1 != nil && r.player1.UUID == playerUUID {
		return 1
	}
	if r.player2 != nil && r.player2.UUID == playerUUID {
		return 2
	}
	return 0
}

// clearLocked frees both slots and their back-references. Connections stay
// untouched; they belong to the session layer.
func (r *Room) clearLocked() {
	if r.player1 != nil {
		r.player1.SetRoom("")
		r.player1 = nil
	}
	if r.player2 != nil {
		r.player2.SetRoom("")
		r.player2 = nil
	}
}

func winnerLabel(winner int) string {
	switch winner {
	case 1:
		return "A"
	case 2:
		return "B"
	default:
		return "draw"
	}
}
