package game

import (
	"math"
	"math/rand"
)

// Ball carries a position and a unit direction. BallSpeed supplies the
// magnitude whenever the ball is moved.
type Ball struct {
	Position Vector2 `json:"position"`
	Velocity Vector2 `json:"velocity"`
}

// Reset recenters the ball and re-randomizes its direction.
func (b *Ball) Reset() {
	b.Position = Vector2{}
	b.Velocity = serveDirection()
}

// serveDirection picks a direction at least ServeAngleMargin away from every
// axis: a random angle inside one quadrant's safe band, then a random
// quarter-turn.
func serveDirection() Vector2 {
	span := math.Pi/2 - 2*ServeAngleMargin
	angle := ServeAngleMargin + rand.Float64()*span + float64(rand.Intn(4))*math.Pi/2
	return Vector2{X: math.Cos(angle), Y: math.Sin(angle)}
}
