package game

// Data is one room's full simulation state. Paddle positions are the last
// values reported by each client's paddlePosition message.
type Data struct {
	Ball    Ball    `json:"ball"`
	Paddle1 Vector2 `json:"paddle1"`
	Paddle2 Vector2 `json:"paddle2"`
	P1Score int     `json:"p1Score"`
	P2Score int     `json:"p2Score"`
}

// NewData returns a fresh game: paddles centered on their rows, ball served
// from center in a random direction.
func NewData() Data {
	d := Data{
		Paddle1: Vector2{Y: PaddleOffsetY},
		Paddle2: Vector2{Y: -PaddleOffsetY},
	}
	d.Ball.Reset()
	return d
}

// Advance consumes dt seconds of motion. Collisions are resolved earliest
// first, each one shrinking the remaining budget, until the rest of the
// budget is collision-free; a fast ball may bounce several times in one
// tick. Afterwards the goal lines are checked and a score resets the ball.
func (d *Data) Advance(dt float64) {
	remaining := dt
	for remaining > 0 {
		col, ok := EarliestCollision(&d.Ball, d.Paddle1, d.Paddle2, remaining)
		if !ok {
			d.Ball.Position = d.Ball.Position.Add(d.Ball.Velocity.Scale(BallSpeed * remaining))
			break
		}
		if col.Time < MinCollisionTime {
			col.Time = MinCollisionTime
		}
		Resolve(&d.Ball, col)
		remaining -= col.Time
	}

	if d.Ball.Position.Y-BallRadius < -FieldHalfHeight {
		d.P1Score++
		d.Ball.Reset()
	} else if d.Ball.Position.Y+BallRadius > FieldHalfHeight {
		d.P2Score++
		d.Ball.Reset()
	}
}

// Winner reports which paddle reached scoreToWin, or 0 while the game is
// still going.
func (d *Data) Winner(scoreToWin int) int {
	if d.P1Score >= scoreToWin {
		return 1
	}
	if d.P2Score >= scoreToWin {
		return 2
	}
	return 0
}
