package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/gogalaxy/geom"
)

const (
	speed     = 1278.0
	radiusMax = 3.0
	dt        = 5e-6
)

func TestTangential(t *testing.T) {
	table := []struct {
		x, v geom.Vec
	}{
		{geom.Vec{0.4, 0, 0}, geom.Vec{0, speed, 0}},
		{geom.Vec{0, 2, 0}, geom.Vec{-speed, 0, 0}},
		{geom.Vec{-1, 0, 7}, geom.Vec{0, -speed, 0}},
		{geom.Vec{0, 0, 1}, geom.Vec{0, 0, 0}},
		{geom.Vec{1e-7, 1e-7, 0.5}, geom.Vec{0, 0, 0}},
	}

	for i, test := range table {
		v := Tangential(test.x, speed)
		for k := 0; k < 3; k++ {
			assert.InDelta(t, test.v[k], v[k], 1e-9, "%d) component %d", i+1, k)
		}
	}
}

func TestTangentialIsPerpendicular(t *testing.T) {
	gen := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := geom.Vec{
			6*gen.Float64() - 3, 6*gen.Float64() - 3, gen.Float64() - 0.5,
		}
		v := Tangential(x, speed)

		planar := geom.Vec{x[0], x[1], 0}
		assert.InDelta(t, 0, planar.Dot(v), 1e-9)
		assert.Equal(t, 0.0, v[2])
		if x.PlanarRadius() > CenterEps {
			assert.InDelta(t, speed, v.Norm(), 1e-9)
			// Counter-clockwise rotation.
			assert.True(t, x[0]*v[1]-x[1]*v[0] > 0)
		}
	}
}

func TestBulgeSpeedRatio(t *testing.T) {
	xs := []geom.Vec{{0.4, 0, 0}, {0.3, -0.2, 0.1}, {-0.01, 0.02, 0}}
	arm := make([]geom.Vec, len(xs))
	bulge := make([]geom.Vec, len(xs))

	Velocities(xs, speed, arm)
	Velocities(xs, BulgeSpeedRatio*speed, bulge)

	for i := range xs {
		assert.InDelta(t, 0.2, bulge[i].Norm()/arm[i].Norm(), 1e-12)
	}
}

func TestWrap(t *testing.T) {
	table := []struct {
		x       geom.Vec
		wrapped bool
	}{
		{geom.Vec{0, 0, 0}, false},
		{geom.Vec{1, 1, 5}, false},
		{geom.Vec{radiusMax, 0, 0.3}, false},
		{geom.Vec{0, -radiusMax, 0}, false},
		{geom.Vec{3.001, 0, 0.3}, true},
		{geom.Vec{-4, 4, -1}, true},
		{geom.Vec{100, 1, 2}, true},
	}

	for i, test := range table {
		x := test.x
		wrapped := Wrap(&x, radiusMax)
		assert.Equal(t, test.wrapped, wrapped, "%d)", i+1)

		// z is never touched.
		assert.Equal(t, test.x[2], x[2], "%d) z", i+1)

		if !test.wrapped {
			// Bit-identical when under or exactly at the threshold.
			assert.Equal(t, test.x, x, "%d)", i+1)
			continue
		}

		assert.InDelta(t, radiusMax, x.PlanarRadius(), 1e-12, "%d)", i+1)
		assert.InDelta(t,
			math.Atan2(test.x[1], test.x[0]), math.Atan2(x[1], x[0]), 1e-12,
			"%d) angle", i+1,
		)
	}
}

func TestEdgeStarMovingOutward(t *testing.T) {
	for _, angle := range []float64{0, 0.7, math.Pi / 2, 2.5, -1.1} {
		dir := geom.Vec{math.Cos(angle), math.Sin(angle), 0}
		x := dir.Scale(radiusMax)
		x[2] = 0.05
		v := dir.Scale(speed)

		raw := Advect(x, v, dt, 1)
		require.True(t, raw.PlanarRadius() > radiusMax)

		out := make([]geom.Vec, 1)
		wrapped := PositionsAt([]geom.Vec{x}, []geom.Vec{v}, dt, 1, radiusMax, out)

		assert.Equal(t, 1, wrapped)
		assert.InDelta(t, radiusMax, out[0].PlanarRadius(), 1e-12)
		assert.InDelta(t, angle, math.Atan2(out[0][1], out[0][0]), 1e-12)
		assert.Equal(t, 0.05, out[0][2])
	}
}

func TestAdvect(t *testing.T) {
	x, v := geom.Vec{1, 2, 3}, geom.Vec{10, -20, 0}
	assert.Equal(t, x, Advect(x, v, dt, 0))

	y := Advect(x, v, 0.1, 3)
	assert.InDelta(t, 4, y[0], 1e-12)
	assert.InDelta(t, -4, y[1], 1e-12)
	assert.Equal(t, 3.0, y[2])
}

func randomDisk(gen *rand.Rand, n int) (xs, vs []geom.Vec) {
	xs, vs = make([]geom.Vec, n), make([]geom.Vec, n)
	for i := range xs {
		r := radiusMax * math.Sqrt(gen.Float64())
		theta := 2 * math.Pi * gen.Float64()
		xs[i] = geom.Vec{
			r * math.Cos(theta), r * math.Sin(theta), 0.1 * gen.NormFloat64(),
		}
	}
	Velocities(xs, speed, vs)
	return xs, vs
}

func TestPositionsAtBounded(t *testing.T) {
	xs, vs := randomDisk(rand.New(rand.NewSource(2)), 2000)
	out := make([]geom.Vec, len(xs))

	for frame := 0; frame < 200; frame += 7 {
		PositionsAt(xs, vs, dt, frame, radiusMax, out)
		for i := range out {
			assert.LessOrEqual(t, out[i].PlanarRadius(), radiusMax+1e-12)
			assert.Equal(t, xs[i][2], out[i][2])
		}
	}
}

func TestPositionsAtIsPure(t *testing.T) {
	xs, vs := randomDisk(rand.New(rand.NewSource(3)), 500)
	xsCopy := append([]geom.Vec{}, xs...)
	vsCopy := append([]geom.Vec{}, vs...)

	first := make([]geom.Vec, len(xs))
	PositionsAt(xs, vs, dt, 39, radiusMax, first)

	// Stepping through other frames first must not change frame 39.
	scratch := make([]geom.Vec, len(xs))
	for frame := 0; frame < 39; frame++ {
		PositionsAt(xs, vs, dt, frame, radiusMax, scratch)
	}
	second := make([]geom.Vec, len(xs))
	PositionsAt(xs, vs, dt, 39, radiusMax, second)

	assert.Equal(t, first, second)
	assert.Equal(t, xsCopy, xs)
	assert.Equal(t, vsCopy, vs)
}

func TestPositionsAtUnwrappedIdentity(t *testing.T) {
	xs, vs := randomDisk(rand.New(rand.NewSource(4)), 500)
	out := make([]geom.Vec, len(xs))
	PositionsAt(xs, vs, dt, 10, radiusMax, out)

	for i := range xs {
		raw := Advect(xs[i], vs[i], dt, 10)
		if raw.PlanarRadius() <= radiusMax {
			assert.Equal(t, raw, out[i])
		}
	}
}

func BenchmarkPositionsAt(b *testing.B) {
	xs, vs := randomDisk(rand.New(rand.NewSource(5)), 1<<16)
	out := make([]geom.Vec, len(xs))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PositionsAt(xs, vs, dt, i%40, radiusMax, out)
	}
}
