package game

import "math"

const (
	FieldHalfWidth  = 10.0
	FieldHalfHeight = 15.0

	BallRadius = 0.5
	BallSpeed  = 12.0 // units per second, magnitude is constant

	PaddleHalfWidth  = 2.0
	PaddleHalfHeight = 0.25
	PaddleOffsetY    = 13.5 // paddle rows sit this far from center
	PaddleSpeed      = 10.0 // advertised to clients; reported positions are not clamped against it

	// SpeedFactor is the paddle-hit speed-up. It is configured here but not
	// applied on the main path, matching the original game's behavior.
	SpeedFactor = 1.05

	// ServeAngleMargin keeps serves away from axis-aligned directions so a
	// reset never produces a straight horizontal or vertical volley.
	ServeAngleMargin = 15.0 * math.Pi / 180

	// MinCollisionTime guarantees strictly positive progress per resolved
	// collision so a tick cannot sub-step forever.
	MinCollisionTime = 1e-6

	TickRate = 60 // simulation ticks per second
)
