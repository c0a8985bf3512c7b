package tournament

import (
	"fmt"
	"math/rand"

	"Pongside/internal/player"
)

// MatchNode is one bracket slot. Leaves hold their assigned player from
// generation; an internal node's player stays nil until both children are
// resolved and its match has been played.
type MatchNode struct {
	Player *player.Player
	Left   *MatchNode
	Right  *MatchNode
}

// Resolver decides a match between two bracket players. The production
// wiring is meant to drive a real room-simulated match here; CoinFlip is
// the stand-in until that integration lands.
type Resolver func(a, b *player.Player) *player.Player

// CoinFlip picks either player with equal probability.
func CoinFlip(a, b *player.Player) *player.Player {
	if rand.Intn(2) == 0 {
		return a
	}
	return b
}

// Tree is a balanced single-elimination bracket over a power-of-two player
// list.
type Tree struct {
	Root      *MatchNode
	generated bool
}

func NewTree() *Tree {
	return &Tree{}
}

func (t *Tree) Generated() bool {
	return t.generated
}

// Generate builds the bracket. The player list must already be padded to a
// power of two of at least 4. Non-bot players are shuffled before seeding;
// bots keep their order and go in last, so every human slot is randomly
// placed before any bot appears in the bracket.
func (t *Tree) Generate(players []*player.Player) error {
	if t.generated {
		return fmt.Errorf("bracket already generated")
	}
	if len(players) < 4 {
		return fmt.Errorf("bracket needs at least 4 players, got %d", len(players))
	}
	if !isPowerOfTwo(len(players)) {
		return fmt.Errorf("bracket size must be a power of two, got %d", len(players))
	}

	var humans, bots []*player.Player
	for _, p := range players {
		if p.IsBot {
			bots = append(bots, p)
		} else {
			humans = append(humans, p)
		}
	}
	rand.Shuffle(len(humans), func(i, j int) {
		humans[i], humans[j] = humans[j], humans[i]
	})
	seeded := append(humans, bots...)

	t.Root = build(seeded)
	t.generated = true
	return nil
}

// build splits the list at the midpoint into a perfectly balanced subtree
// per half, bottoming out in one leaf per player.
func build(players []*player.Player) *MatchNode {
	if len(players) == 1 {
		return &MatchNode{Player: players[0]}
	}
	mid := len(players) / 2
	return &MatchNode{
		Left:  build(players[:mid]),
		Right: build(players[mid:]),
	}
}

// PlayMatch resolves one internal node. Both children must already hold a
// player; resolving a node twice is a caller bug.
func (t *Tree) PlayMatch(n *MatchNode, resolve Resolver) error {
	if n.Player != nil {
		return fmt.Errorf("match already resolved")
	}
	if n.Left == nil || n.Right == nil {
		return fmt.Errorf("match node is missing children")
	}
	if n.Left.Player == nil || n.Right.Player == nil {
		return fmt.Errorf("match has unresolved children")
	}
	n.Player = resolve(n.Left.Player, n.Right.Player)
	return nil
}

// PlayAll resolves the whole bracket, children before parents, and returns
// the champion.
func (t *Tree) PlayAll(resolve Resolver) (*player.Player, error) {
	if !t.generated {
		return nil, fmt.Errorf("bracket not generated")
	}
	if err := t.playFrom(t.Root, resolve); err != nil {
		return nil, err
	}
	return t.Root.Player, nil
}

func (t *Tree) playFrom(n *MatchNode, resolve Resolver) error {
	if n.Left == nil && n.Right == nil {
		return nil
	}
	if err := t.playFrom(n.Left, resolve); err != nil {
		return err
	}
	if err := t.playFrom(n.Right, resolve); err != nil {
		return err
	}
	return t.PlayMatch(n, resolve)
}

// Walk visits every node in-order: left subtree, node, right subtree.
func (t *Tree) Walk(visit func(n *MatchNode)) {
	walk(t.Root, visit)
}

func walk(n *MatchNode, visit func(n *MatchNode)) {
	if n == nil {
		return
	}
	walk(n.Left, visit)
	visit(n)
	walk(n.Right, visit)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
