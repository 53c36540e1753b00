/*package field generates the star field of a barred spiral galaxy: positions,
velocities, colors and display sizes for the arm and bulge populations.

A Field is immutable once Generate returns. Everything which changes over the
course of an animation is computed from it by package integrator.
*/
package field

import (
	"github.com/phil-mansfield/gogalaxy/geom"
)

// Population identifies which generation branch produced a star.
type Population uint8

const (
	Arm Population = iota
	Bulge
	EndPopulation
)

func (pop Population) String() string {
	switch pop {
	case Arm:
		return "Arm"
	case Bulge:
		return "Bulge"
	}
	panic("Impossible")
}

// Color is an RGBA color with every channel in [0, 1].
type Color [4]float64

// Field is the full set of stars in a galaxy. Every slice is index-aligned
// and has length Len(). Arm stars occupy the front of the slices (arm by arm)
// and bulge stars follow them.
type Field struct {
	Xs     []geom.Vec // initial positions
	Vs     []geom.Vec // tangential velocities
	Rs     []float64  // generating radius: planar for arms, 3D for the bulge
	Colors []Color
	Sizes  []float64
	Pops   []Population

	RadiusMax, BulgeRadius float64
	armStars               int
}

// newField allocates a Field with room for n stars, the first armStars of
// which belong to the arm population.
func newField(n, armStars int, radiusMax, bulgeRadius float64) *Field {
	f := &Field{
		Xs:          make([]geom.Vec, n),
		Vs:          make([]geom.Vec, n),
		Rs:          make([]float64, n),
		Colors:      make([]Color, n),
		Sizes:       make([]float64, n),
		Pops:        make([]Population, n),
		RadiusMax:   radiusMax,
		BulgeRadius: bulgeRadius,
		armStars:    armStars,
	}
	for i := armStars; i < n; i++ {
		f.Pops[i] = Bulge
	}
	return f
}

// Len returns the number of stars in the field.
func (f *Field) Len() int { return len(f.Xs) }

// Range returns the half-open index range [low, high) occupied by the given
// population.
func (f *Field) Range(pop Population) (low, high int) {
	switch pop {
	case Arm:
		return 0, f.armStars
	case Bulge:
		return f.armStars, f.Len()
	}
	panic("Impossible")
}
