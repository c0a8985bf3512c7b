package tournament

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"Pongside/internal/player"
)

// Settings are fixed at creation time.
type Settings struct {
	MaxPlayerCount int `json:"maxPlayerCount"`
	ScoreToWin     int `json:"scoreToWin"`
}

// Valid rejects bracket sizes other than 4/8/16/32 and out-of-range winning
// scores.
func (s Settings) Valid() bool {
	switch s.MaxPlayerCount {
	case 4, 8, 16, 32:
	default:
		return false
	}
	return s.ScoreToWin >= 1 && s.ScoreToWin <= s.MaxPlayerCount
}

// Tournament is one bracket and its roster. Players keep join order; bot
// backfill appends at the end. Open tournaments accept joins and leaves;
// closing generates the bracket and is irreversible.
type Tournament struct {
	UUID        string
	Name        string
	Owner       *player.Player
	Players     []*player.Player
	PlayerCount int
	Settings    Settings
	Tree        *Tree
	IsClosed    bool
}

func (t *Tournament) hasPlayer(id string) bool {
	for _, p := range t.Players {
		if p.UUID == id {
			return true
		}
	}
	return false
}

// Manager owns every tournament, keyed by uuid, and enforces the
// membership, ownership, and lifecycle invariants ahead of the Tree.
type Manager struct {
	mu          sync.Mutex
	tournaments map[string]*Tournament
}

func NewManager() *Manager {
	return &Manager{tournaments: make(map[string]*Tournament)}
}

// CreateNewTournament registers a fresh open tournament. Returns nil if the
// owner already owns a tournament anywhere in the registry, open or closed,
// or if the settings are invalid.
func (m *Manager) CreateNewTournament(name string, owner *player.Player, settings Settings) *Tournament {
	if !settings.Valid() {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tournaments {
		if t.Owner.UUID == owner.UUID {
			return nil
		}
	}

	t := &Tournament{
		UUID:     uuid.New().String(),
		Name:     name,
		Owner:    owner,
		Settings: settings,
		Tree:     NewTree(),
	}
	m.tournaments[t.UUID] = t
	slog.Info("Tournament created", "tournament", t.UUID, "name", name, "owner", owner.UUID)
	return t
}

// Get returns the tournament for the given uuid, or nil.
func (m *Manager) Get(id string) *Tournament {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournaments[id]
}

// List returns every registered tournament.
func (m *Manager) List() []*Tournament {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Tournament, 0, len(m.tournaments))
	for _, t := range m.tournaments {
		out = append(out, t)
	}
	return out
}

// AddPlayerToTournament appends the player in join order. False if the
// tournament is missing, closed, full, or already has the player.
func (m *Manager) AddPlayerToTournament(id string, p *player.Player) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tournaments[id]
	if !ok || t.IsClosed {
		return false
	}
	if len(t.Players) >= t.Settings.MaxPlayerCount {
		return false
	}
	if t.hasPlayer(p.UUID) {
		return false
	}
	t.Players = append(t.Players, p)
	t.PlayerCount++
	return true
}

// RemovePlayerFromTournament removes by uuid. False if the tournament is
// missing, closed, or the player is not registered. The tree needs no
// touch-up: it is always ungenerated while the tournament is open.
func (m *Manager) RemovePlayerFromTournament(id string, p *player.Player) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tournaments[id]
	if !ok || t.IsClosed {
		return false
	}
	for i, registered := range t.Players {
		if registered.UUID == p.UUID {
			t.Players = append(t.Players[:i], t.Players[i+1:]...)
			t.PlayerCount--
			return true
		}
	}
	return false
}

// CloseTournament is the single irreversible transition: only the owner may
// close, at least 3 players must be registered, bots pad the roster up to
// the bracket size, and the tree is generated over the final list. A second
// close fails because the bracket would otherwise be rebuilt mid-flight.
func (m *Manager) CloseTournament(id string, requester *player.Player) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tournaments[id]
	if !ok || t.IsClosed {
		return false
	}
	if t.Owner.UUID != requester.UUID {
		return false
	}
	if len(t.Players) < 3 {
		return false
	}

	// Pad a copy of the roster; the close only commits once the bracket
	// generates, so a failure leaves the tournament open and unpadded.
	roster := append([]*player.Player(nil), t.Players...)
	target := bracketSize(len(roster))
	for len(roster) < target {
		roster = append(roster, player.NewBot())
	}

	if err := t.Tree.Generate(roster); err != nil {
		slog.Error("Error generating bracket", "error", err.Error(), "tournament", t.UUID)
		return false
	}

	t.Players = roster
	t.PlayerCount = len(roster)
	t.IsClosed = true
	slog.Info("Tournament closed", "tournament", t.UUID, "players", t.PlayerCount)
	return true
}

// bracketSize rounds up to the next power of two, never below 4.
func bracketSize(n int) int {
	size := 4
	for size < n {
		size *= 2
	}
	return size
}
