package room

import (
	"fmt"
	"log/slog"
	"sync"

	"Pongside/internal/player"
)

// Registry pools rooms and places incoming players. It is the one structure
// touched by every connecting client, so the check-capacity-then-add
// sequence runs under its lock.
type Registry struct {
	mu     sync.Mutex
	rooms  map[string]*Room
	nextID int
	cfg    Config
}

func NewRegistry(cfg Config) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		cfg:   cfg.withDefaults(),
	}
}

// Place puts the player into an existing room of the matching mode that has
// capacity and has not launched or ended, or allocates a new room with a
// monotonically increasing id. Filling a room triggers an asynchronous game
// start; a start failure drops the room rather than leaving it stuck.
func (reg *Registry) Place(p *player.Player) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var target *Room
	for _, r := range reg.rooms {
		if r.Mode() != reg.cfg.Mode || r.Launched() || r.Ended() || r.IsFull() {
			continue
		}
		if r.AddPlayer(p) {
			target = r
			break
		}
	}

	if target == nil {
		reg.nextID++
		target = New(fmt.Sprintf("room-%d", reg.nextID), reg.cfg)
		reg.rooms[target.ID] = target
		if !target.AddPlayer(p) {
			// Fresh room, cannot happen unless the caller reuses a uuid.
			delete(reg.rooms, target.ID)
			return nil
		}
	}

	if target.IsFull() {
		go reg.launch(target)
	}
	return target
}

// launch starts a filled room and retires it from the registry once its
// loop finishes. Rooms that fail to start are removed immediately.
func (reg *Registry) launch(r *Room) {
	if err := r.StartGame(); err != nil {
		slog.Error("Error starting game", "error", err.Error(), "room", r.ID)
		reg.Remove(r.ID)
		return
	}
	<-r.Done()
	reg.Remove(r.ID)
}

func (reg *Registry) Get(id string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.rooms[id]
}

// Remove stops the room's loop and drops it from the pool; removing an
// unknown id is a no-op.
func (reg *Registry) Remove(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if r, ok := reg.rooms[id]; ok {
		r.Stop()
		delete(reg.rooms, id)
	}
}

// Len reports the number of pooled rooms.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}
