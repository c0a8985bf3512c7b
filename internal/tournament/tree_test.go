package tournament

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pongside/internal/player"
)

func humans(n int) []*player.Player {
	out := make([]*player.Player, n)
	for i := range out {
		out[i] = player.New(fmt.Sprintf("human-%d", i), fmt.Sprintf("Human %d", i), nil)
	}
	return out
}

func TestGenerateRejectsBadPlayerCounts(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"empty", 0},
		{"below minimum", 3},
		{"not a power of two", 6},
		{"not a power of two, large", 27},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewTree()
			assert.Error(t, tr.Generate(humans(tc.count)))
			assert.False(t, tr.Generated())
		})
	}
}

func TestGenerateTwiceFails(t *testing.T) {
	tr := NewTree()
	require.NoError(t, tr.Generate(humans(4)))
	assert.Error(t, tr.Generate(humans(4)))
}

func TestGenerateBuildsBalancedBracket(t *testing.T) {
	players := humans(8)
	tr := NewTree()
	require.NoError(t, tr.Generate(players))

	leaves := 0
	internal := 0
	seen := map[string]bool{}
	tr.Walk(func(n *MatchNode) {
		if n.Left == nil && n.Right == nil {
			leaves++
			require.NotNil(t, n.Player)
			assert.False(t, seen[n.Player.UUID], "player seeded twice")
			seen[n.Player.UUID] = true
		} else {
			internal++
			require.NotNil(t, n.Left)
			require.NotNil(t, n.Right)
			assert.Nil(t, n.Player, "internal nodes start unresolved")
		}
	})

	assert.Equal(t, 8, leaves)
	assert.Equal(t, 7, internal)
	assert.Len(t, seen, 8)
}

func TestGenerateSeedsBotsLast(t *testing.T) {
	roster := humans(5)
	var bots []*player.Player
	for i := 0; i < 3; i++ {
		b := player.NewBot()
		bots = append(bots, b)
		roster = append(roster, b)
	}

	tr := NewTree()
	require.NoError(t, tr.Generate(roster))

	var leafPlayers []*player.Player
	tr.Walk(func(n *MatchNode) {
		if n.Left == nil && n.Right == nil {
			leafPlayers = append(leafPlayers, n.Player)
		}
	})
	require.Len(t, leafPlayers, 8)

	// Humans fill the first slots in shuffled order; bots keep their order
	// at the end.
	for _, p := range leafPlayers[:5] {
		assert.False(t, p.IsBot)
	}
	for i, p := range leafPlayers[5:] {
		require.True(t, p.IsBot)
		assert.Equal(t, bots[i].UUID, p.UUID)
	}
}

func TestPlayMatchPreconditions(t *testing.T) {
	tr := NewTree()
	require.NoError(t, tr.Generate(humans(4)))

	winLeft := func(a, b *player.Player) *player.Player { return a }

	// Root has two unresolved children.
	require.Error(t, tr.PlayMatch(tr.Root, winLeft))

	// A leaf has no children and an assigned player.
	leaf := tr.Root.Left.Left
	require.Error(t, tr.PlayMatch(leaf, winLeft))

	// Resolve a first-round match, then replaying it must fail.
	semi := tr.Root.Left
	require.NoError(t, tr.PlayMatch(semi, winLeft))
	assert.Equal(t, semi.Left.Player.UUID, semi.Player.UUID)
	require.Error(t, tr.PlayMatch(semi, winLeft))
}

func TestPlayAllCrownsChampion(t *testing.T) {
	tr := NewTree()
	require.NoError(t, tr.Generate(humans(8)))

	winLeft := func(a, b *player.Player) *player.Player { return a }
	champion, err := tr.PlayAll(winLeft)
	require.NoError(t, err)
	require.NotNil(t, champion)

	// With a win-left strategy the leftmost leaf sweeps the bracket.
	leftmost := tr.Root
	for leftmost.Left != nil {
		leftmost = leftmost.Left
	}
	assert.Equal(t, leftmost.Player.UUID, champion.UUID)

	// Every node is resolved once play finishes.
	tr.Walk(func(n *MatchNode) {
		assert.NotNil(t, n.Player)
	})
}

func TestPlayAllRequiresGeneration(t *testing.T) {
	tr := NewTree()
	_, err := tr.PlayAll(CoinFlip)
	assert.Error(t, err)
}

func TestCoinFlipPicksOneOfThePlayers(t *testing.T) {
	a := player.New("a", "A", nil)
	b := player.New("b", "B", nil)

	sawA, sawB := false, false
	for i := 0; i < 200 && !(sawA && sawB); i++ {
		switch CoinFlip(a, b) {
		case a:
			sawA = true
		case b:
			sawB = true
		}
	}
	assert.True(t, sawA)
	assert.True(t, sawB)
}
