package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetRecentersBall(t *testing.T) {
	b := &Ball{Position: Vector2{X: 3, Y: -7}}
	b.Reset()

	assert.Equal(t, Vector2{}, b.Position)
	assert.InDelta(t, 1.0, math.Hypot(b.Velocity.X, b.Velocity.Y), 1e-9)
}

func TestServeDirectionAvoidsAxisAlignedAngles(t *testing.T) {
	b := &Ball{}
	for i := 0; i < 10000; i++ {
		b.Reset()

		angle := math.Atan2(b.Velocity.Y, b.Velocity.X)
		// Distance to the nearest multiple of 90 degrees.
		m := math.Mod(angle+2*math.Pi, math.Pi/2)
		dist := math.Min(m, math.Pi/2-m)

		require.GreaterOrEqual(t, dist, ServeAngleMargin-1e-9,
			"serve angle %f within margin of an axis", angle)
	}
}
