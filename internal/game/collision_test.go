package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallCollisionAnalyticTime(t *testing.T) {
	b := &Ball{Position: Vector2{}, Velocity: Vector2{X: 1}}

	// Paddles on their rows are well clear of a ball crossing mid-field.
	col, ok := EarliestCollision(b, Vector2{Y: PaddleOffsetY}, Vector2{Y: -PaddleOffsetY}, 10)
	require.True(t, ok)
	assert.Equal(t, AxisX, col.Axis)

	want := (FieldHalfWidth - BallRadius) / BallSpeed
	assert.InDelta(t, want, col.Time, 1e-9)
}

func TestWallCollisionOutsideBudget(t *testing.T) {
	b := &Ball{Position: Vector2{}, Velocity: Vector2{X: 1}}

	wallTime := (FieldHalfWidth - BallRadius) / BallSpeed
	_, ok := EarliestCollision(b, Vector2{Y: PaddleOffsetY}, Vector2{Y: -PaddleOffsetY}, wallTime/2)
	assert.False(t, ok)
}

func TestPaddleFaceCollision(t *testing.T) {
	// Ball dropping straight onto paddle2's top face.
	b := &Ball{Position: Vector2{}, Velocity: Vector2{Y: -1}}
	paddle1 := Vector2{Y: PaddleOffsetY}
	paddle2 := Vector2{Y: -PaddleOffsetY}

	col, ok := EarliestCollision(b, paddle1, paddle2, 10)
	require.True(t, ok)
	assert.Equal(t, AxisY, col.Axis)

	// Face sits at -PaddleOffsetY + PaddleHalfHeight + BallRadius.
	face := -PaddleOffsetY + PaddleHalfHeight + BallRadius
	want := -face / BallSpeed
	assert.InDelta(t, want, col.Time, 1e-9)
}

func TestPaddleCornerGraze(t *testing.T) {
	// Diagonal approach that only clips the expanded corner region of
	// paddle1; an endpoint-only test at coarse steps would miss this.
	inv := 1 / math.Sqrt2
	b := &Ball{
		Position: Vector2{X: -5, Y: 9.75},
		Velocity: Vector2{X: inv, Y: inv},
	}
	paddle1 := Vector2{Y: PaddleOffsetY}
	paddle2 := Vector2{X: 8, Y: -PaddleOffsetY}

	col, ok := EarliestCollision(b, paddle1, paddle2, 10)
	require.True(t, ok)
	assert.Equal(t, AxisY, col.Axis)

	// Bottom face of paddle1 at PaddleOffsetY - PaddleHalfHeight - BallRadius.
	face := PaddleOffsetY - PaddleHalfHeight - BallRadius
	vy := inv * BallSpeed
	want := (face - b.Position.Y) / vy
	assert.InDelta(t, want, col.Time, 1e-9)

	// Predicted x at contact is on the paddle's extended extent.
	x := b.Position.X + inv*BallSpeed*col.Time
	assert.LessOrEqual(t, math.Abs(x), PaddleHalfWidth+BallRadius)
}

func TestEarliestWinsAcrossObstacles(t *testing.T) {
	// Ball heads right, wall reachable; paddle2 sits closer in its path.
	b := &Ball{Position: Vector2{Y: -PaddleOffsetY}, Velocity: Vector2{X: 1}}
	paddle1 := Vector2{Y: PaddleOffsetY}
	paddle2 := Vector2{X: 5, Y: -PaddleOffsetY}

	col, ok := EarliestCollision(b, paddle1, paddle2, 10)
	require.True(t, ok)
	assert.Equal(t, AxisX, col.Axis)

	paddleFace := paddle2.X - PaddleHalfWidth - BallRadius
	want := paddleFace / BallSpeed
	assert.InDelta(t, want, col.Time, 1e-9)

	wallTime := (FieldHalfWidth - BallRadius) / BallSpeed
	assert.Less(t, col.Time, wallTime)
}

func TestResolveReflectsAxis(t *testing.T) {
	b := &Ball{Position: Vector2{}, Velocity: Vector2{X: 0.6, Y: 0.8}}
	Resolve(b, Collision{Axis: AxisX, Time: 0.5})

	assert.InDelta(t, 0.6*BallSpeed*0.5, b.Position.X, 1e-9)
	assert.InDelta(t, 0.8*BallSpeed*0.5, b.Position.Y, 1e-9)
	assert.InDelta(t, -0.6, b.Velocity.X, 1e-9)
	assert.InDelta(t, 0.8, b.Velocity.Y, 1e-9)

	// Speed magnitude is conserved.
	assert.InDelta(t, 1.0, math.Hypot(b.Velocity.X, b.Velocity.Y), 1e-9)
}
