package field

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/phil-mansfield/gogalaxy/geom"
	"github.com/phil-mansfield/gogalaxy/integrator"
	"github.com/phil-mansfield/gogalaxy/io"
)

const (
	// Every arm winds through this angle, starting at theta = 0.
	ArmWinding = 4 * math.Pi

	// Multiplier applied to every noise scale. The reference galaxy was
	// tuned with noisier arms than its nominal Spread suggests.
	scatterBoost = 1.5
	// Vertical noise scale per unit radius and amplitude of the disc warp.
	diskNoise = 0.05
	diskWarp  = 0.1

	// Bulge radii are |N(bulgeMean, bulgeSigma * scatterBoost)| * BulgeRadius.
	bulgeMean  = 0.2
	bulgeSigma = 0.08

	ArmSizeMin, ArmSizeMax     = 0.3, 1.0
	BulgeSizeMin, BulgeSizeMax = 0.5, 1.2
)

// sampler draws every random number used during generation from a single
// seeded source, so that a seed always reproduces the same field.
type sampler struct {
	src rand.Source
}

func newSampler(seed int64) *sampler {
	return &sampler{rand.NewSource(uint64(seed))}
}

// normal fills out with draws from N(mu, sigma) and returns it.
func (gen *sampler) normal(mu, sigma float64, out []float64) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: gen.src}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// uniform fills out with draws from U[min, max) and returns it.
func (gen *sampler) uniform(min, max float64, out []float64) []float64 {
	dist := distuv.Uniform{Min: min, Max: max, Src: gen.src}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

func clip(x, low, high float64) float64 {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// Generate creates the star field described by con. con is checked before
// anything is allocated and a *io.ConfigError is returned if it is invalid.
//
// Random numbers are drawn in a fixed order: for each arm the radial
// scatter, angular scatter, vertical noise and sizes; then the bulge radii,
// azimuths, polar angles and sizes; then one color noise value per star.
func Generate(con *io.GalaxyConfig) (*Field, error) {
	if err := con.CheckInit(); err != nil {
		return nil, err
	}

	n, armStars := con.Stars(), con.Arms*con.ArmStars
	f := newField(n, armStars, con.RadiusMax, con.BulgeRadius)
	gen := newSampler(con.Seed)

	thetas, rs := BaseSpiral(con.A, con.B, con.RadiusMax, con.ArmStars)
	buf := newArmBuffer(con.ArmStars)
	for arm := 0; arm < con.Arms; arm++ {
		low := arm * con.ArmStars
		genArm(con, arm, thetas, rs, gen, buf, f, low, low+con.ArmStars)
	}
	genBulge(con, gen, f, armStars, n)

	integrator.Velocities(f.Xs[:armStars], con.Velocity, f.Vs[:armStars])
	integrator.Velocities(
		f.Xs[armStars:], integrator.BulgeSpeedRatio*con.Velocity,
		f.Vs[armStars:],
	)

	noise := gen.normal(0, ColorNoise, make([]float64, n))
	AssignColors(f.Rs, con.BulgeRadius, noise, f.Colors)

	return f, nil
}

// BaseSpiral returns n angles spaced linearly over [0, ArmWinding] and the
// radii of the logarithmic spiral r = a * exp(b * theta) at those angles,
// clipped to [0, radiusMax].
func BaseSpiral(a, b, radiusMax float64, n int) (thetas, rs []float64) {
	thetas, rs = make([]float64, n), make([]float64, n)
	if n > 1 {
		step := ArmWinding / float64(n-1)
		for i := range thetas {
			thetas[i] = float64(i) * step
		}
		thetas[n-1] = ArmWinding
	}

	for i, theta := range thetas {
		rs[i] = clip(a*math.Exp(b*theta), 0, radiusMax)
	}
	return thetas, rs
}

// armBuffer holds the per-arm noise draws so that they can be reused across
// arms.
type armBuffer struct {
	dr, dTheta, dz []float64
}

func newArmBuffer(n int) *armBuffer {
	return &armBuffer{
		make([]float64, n), make([]float64, n), make([]float64, n),
	}
}

// genArm scatters one arm's stars around the base spiral and writes them
// into f at [low, high).
func genArm(
	con *io.GalaxyConfig, arm int, thetas, rs []float64,
	gen *sampler, buf *armBuffer, f *Field, low, high int,
) {
	offset := (2 * math.Pi / float64(con.Arms)) * float64(arm)
	rMax := con.RadiusMax

	gen.normal(0, con.Spread*scatterBoost, buf.dr)
	gen.normal(0, (con.Spread/10)*scatterBoost, buf.dTheta)
	gen.normal(0, 1, buf.dz)
	gen.uniform(ArmSizeMin, ArmSizeMax, f.Sizes[low:high])

	for i := range thetas {
		thetaArm := thetas[i] + offset
		r := clip(rs[i]+buf.dr[i], 0, rMax)
		theta := thetaArm + buf.dTheta[i]

		zBase := buf.dz[i] * (diskNoise * r * scatterBoost)
		zWarp := diskWarp * r * math.Sin(thetaArm)
		rr := r / rMax
		taper := 1 - rr*rr*rr

		j := low + i
		f.Xs[j] = geom.Vec{
			r * math.Cos(theta), r * math.Sin(theta), (zBase + zWarp) * taper,
		}
		f.Rs[j] = r
	}
}

// genBulge places the bulge stars into f at [low, high).
func genBulge(con *io.GalaxyConfig, gen *sampler, f *Field, low, high int) {
	m := high - low
	rs := gen.normal(bulgeMean, bulgeSigma*scatterBoost, f.Rs[low:high])
	thetas := gen.uniform(0, 2*math.Pi, make([]float64, m))
	phis := gen.uniform(0, math.Pi, make([]float64, m))
	gen.uniform(BulgeSizeMin, BulgeSizeMax, f.Sizes[low:high])

	for i := range rs {
		rs[i] = clip(math.Abs(rs[i])*con.BulgeRadius, 0, con.BulgeRadius)
		f.Xs[low+i] = geom.Spherical(rs[i], thetas[i], phis[i])
	}
}
