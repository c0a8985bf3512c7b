package game

// Axis identifies which velocity component a collision negates.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Collision is the earliest swept contact found within a time budget.
type Collision struct {
	Axis Axis
	Time float64
}

// EarliestCollision sweeps the ball against the side walls and both paddles
// and returns the earliest contact within budget seconds. Obstacles are
// evaluated walls, paddle1, paddle2; a strictly smaller time replaces the
// current best, so exact ties keep the earlier-evaluated obstacle.
func EarliestCollision(b *Ball, paddle1, paddle2 Vector2, budget float64) (Collision, bool) {
	var best Collision
	found := false
	consider := func(c Collision, ok bool) {
		if ok && (!found || c.Time < best.Time) {
			best = c
			found = true
		}
	}
	consider(wallCollision(b, budget))
	consider(paddleCollision(b, paddle1, budget))
	consider(paddleCollision(b, paddle2, budget))
	return best, found
}

// wallCollision tests the two side walls. Only the x axis is walled; the
// y extremes are goal lines and score instead of bouncing.
func wallCollision(b *Ball, budget float64) (Collision, bool) {
	vx := b.Velocity.X * BallSpeed
	var t float64
	switch {
	case vx > 0:
		t = (FieldHalfWidth - BallRadius - b.Position.X) / vx
	case vx < 0:
		t = (-FieldHalfWidth + BallRadius - b.Position.X) / vx
	default:
		return Collision{}, false
	}
	if t < 0 || t > budget {
		return Collision{}, false
	}
	return Collision{Axis: AxisX, Time: t}, true
}

// paddleCollision sweeps the ball against one paddle treated as an AABB
// expanded by the ball radius on every side. Each face yields a crossing
// time, accepted only if the predicted position along the perpendicular
// axis lies within the paddle's extent at that moment; this catches corner
// grazes that an endpoint-only test misses.
func paddleCollision(b *Ball, center Vector2, budget float64) (Collision, bool) {
	vx := b.Velocity.X * BallSpeed
	vy := b.Velocity.Y * BallSpeed
	ex := PaddleHalfWidth + BallRadius
	ey := PaddleHalfHeight + BallRadius

	var best Collision
	found := false
	consider := func(axis Axis, t float64) {
		if !found || t < best.Time {
			best = Collision{Axis: axis, Time: t}
			found = true
		}
	}

	// Vertical faces (collision flips x).
	if vx > 0 && b.Position.X <= center.X-ex {
		t := (center.X - ex - b.Position.X) / vx
		if t >= 0 && t <= budget {
			y := b.Position.Y + vy*t
			if y >= center.Y-ey && y <= center.Y+ey {
				consider(AxisX, t)
			}
		}
	} else if vx < 0 && b.Position.X >= center.X+ex {
		t := (center.X + ex - b.Position.X) / vx
		if t >= 0 && t <= budget {
			y := b.Position.Y + vy*t
			if y >= center.Y-ey && y <= center.Y+ey {
				consider(AxisX, t)
			}
		}
	}

	// Horizontal faces (collision flips y).
	if vy > 0 && b.Position.Y <= center.Y-ey {
		t := (center.Y - ey - b.Position.Y) / vy
		if t >= 0 && t <= budget {
			x := b.Position.X + vx*t
			if x >= center.X-ex && x <= center.X+ex {
				consider(AxisY, t)
			}
		}
	} else if vy < 0 && b.Position.Y >= center.Y+ey {
		t := (center.Y + ey - b.Position.Y) / vy
		if t >= 0 && t <= budget {
			x := b.Position.X + vx*t
			if x >= center.X-ex && x <= center.X+ex {
				consider(AxisY, t)
			}
		}
	}

	return best, found
}

// Resolve advances the ball to the contact point and reflects the velocity
// component on the collision axis. The collision time must already be
// clamped to MinCollisionTime by the caller.
func Resolve(b *Ball, c Collision) {
	b.Position = b.Position.Add(b.Velocity.Scale(BallSpeed * c.Time))
	switch c.Axis {
	case AxisX:
		b.Velocity.X = -b.Velocity.X
	case AxisY:
		b.Velocity.Y = -b.Velocity.Y
	}
}
