package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pongside/internal/game"
	"Pongside/internal/protocol"
)

func TestPlacePrefersOpenRoomThenAllocates(t *testing.T) {
	reg := NewRegistry(Config{TickInterval: time.Millisecond, ScoreToWin: 100})
	p1, _ := newTestPlayer("a")
	p2, _ := newTestPlayer("b")
	p3, _ := newTestPlayer("c")

	r1 := reg.Place(p1)
	require.NotNil(t, r1)
	assert.Equal(t, "room-1", r1.ID)

	r2 := reg.Place(p2)
	require.NotNil(t, r2)
	assert.Equal(t, r1.ID, r2.ID, "second player joins the waiting room")

	// The first room is now full; a third player gets a fresh room with
	// the next id.
	r3 := reg.Place(p3)
	require.NotNil(t, r3)
	assert.Equal(t, "room-2", r3.ID)

	reg.Remove(r1.ID)
	reg.Remove(r3.ID)
}

func TestPlaceDoesNotReuseEndedRooms(t *testing.T) {
	store := &fakeStore{}
	reg := NewRegistry(Config{
		TickInterval: time.Millisecond,
		ScoreToWin:   1,
		Store:        store,
		Clock:        newStepClock(50 * time.Millisecond),
	})
	p1, _ := newTestPlayer("a")
	p2, _ := newTestPlayer("b")

	r := reg.Place(p1)
	reg.Place(p2)

	require.Eventually(t, r.Launched, 2*time.Second, time.Millisecond)
	r.SetPaddlePosition(p1.UUID, game.Vector2{X: 8, Y: game.PaddleOffsetY})
	r.SetPaddlePosition(p2.UUID, game.Vector2{X: -8, Y: -game.PaddleOffsetY})

	select {
	case <-r.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("game did not finish")
	}

	// Finished rooms leave the pool, so a returning player gets a new one.
	require.Eventually(t, func() bool { return reg.Len() == 0 }, 2*time.Second, time.Millisecond)

	p3, _ := newTestPlayer("c")
	next := reg.Place(p3)
	require.NotNil(t, next)
	assert.NotEqual(t, r.ID, next.ID)
	reg.Remove(next.ID)
}

// Two players join matchmaking sequentially; the second join fills the room,
// the game runs to the winning score, and exactly one match row lands in
// the store.
func TestMatchmakingEndToEnd(t *testing.T) {
	store := &fakeStore{}
	reg := NewRegistry(Config{
		TickInterval: time.Millisecond,
		ScoreToWin:   2,
		Store:        store,
		Clock:        newStepClock(50 * time.Millisecond),
	})
	p1, fc1 := newTestPlayer("a")
	p2, fc2 := newTestPlayer("b")

	r := reg.Place(p1)
	require.NotNil(t, r)
	assert.False(t, r.Launched())

	require.Equal(t, r, reg.Place(p2))

	require.Eventually(t, func() bool {
		return fc1.hasType(protocol.TypeGameStarted) && fc2.hasType(protocol.TypeGameStarted)
	}, 2*time.Second, time.Millisecond)

	started1, ok := firstOfType[protocol.GameStarted](t, fc1, protocol.TypeGameStarted)
	require.True(t, ok)
	assert.Equal(t, 1, started1.ID)
	started2, ok := firstOfType[protocol.GameStarted](t, fc2, protocol.TypeGameStarted)
	require.True(t, ok)
	assert.Equal(t, 2, started2.ID)

	r.SetPaddlePosition(p1.UUID, game.Vector2{X: 8, Y: game.PaddleOffsetY})
	r.SetPaddlePosition(p2.UUID, game.Vector2{X: -8, Y: -game.PaddleOffsetY})

	select {
	case <-r.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("game did not finish")
	}

	// Both clients saw per-tick snapshots and then a terminal result.
	assert.Greater(t, fc1.countType(t, protocol.TypeGameData), 0)
	assert.Equal(t, 1, fc1.countType(t, protocol.TypeGameResult))
	assert.Equal(t, 1, fc2.countType(t, protocol.TypeGameResult))

	records := store.saved()
	require.Len(t, records, 1)
	assert.Equal(t, p1.UUID, records[0].PlayerAUUID)
	assert.Equal(t, p2.UUID, records[0].PlayerBUUID)
	assert.Equal(t, 2, max(records[0].ScoreA, records[0].ScoreB))
}
