/*package analyze computes and plots diagnostics of generated star fields.
*/
package analyze

import (
	"fmt"
	"math"
	"path/filepath"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/gogalaxy/field"
)

// FaceOnPoints is the maximum number of stars drawn in the face-on plot.
const FaceOnPoints = 20000

// Profile is a radial binning of some quantity, split by population.
type Profile struct {
	// Edges has one more element than each slice in Vals.
	Edges []float64
	Vals  [field.EndPopulation][]float64
}

// Centers returns the centers of each bin.
func (p *Profile) Centers() []float64 {
	cs := make([]float64, len(p.Edges)-1)
	for i := range cs {
		cs[i] = (p.Edges[i] + p.Edges[i+1]) / 2
	}
	return cs
}

func newProfile(radiusMax float64, bins int) (*Profile, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("bins must be positive, not %d", bins)
	} else if !(radiusMax > 0) {
		return nil, fmt.Errorf("radiusMax must be positive, not %g", radiusMax)
	}

	p := &Profile{Edges: make([]float64, bins+1)}
	dr := radiusMax / float64(bins)
	for i := range p.Edges {
		p.Edges[i] = dr * float64(i)
	}
	for pop := range p.Vals {
		p.Vals[pop] = make([]float64, bins)
	}
	return p, nil
}

// bin returns the bin that r falls into, or -1 if it's out of range. The
// outer edge belongs to the last bin.
func (p *Profile) bin(r float64) int {
	bins := len(p.Edges) - 1
	rMax := p.Edges[bins]
	if r < 0 || r > rMax || math.IsNaN(r) {
		return -1
	}
	i := int(r / rMax * float64(bins))
	if i == bins {
		i--
	}
	return i
}

// RadialProfile returns the number of stars of each population in each of
// bins evenly spaced bins of generating radius between 0 and f.RadiusMax.
func RadialProfile(f *field.Field, bins int) (*Profile, error) {
	p, err := newProfile(f.RadiusMax, bins)
	if err != nil {
		return nil, err
	}
	for i := range f.Rs {
		if j := p.bin(f.Rs[i]); j >= 0 {
			p.Vals[f.Pops[i]][j]++
		}
	}
	return p, nil
}

// RotationCurve returns the mean speed of each population in each of bins
// evenly spaced bins of distance from the z axis. Empty bins are NaN.
func RotationCurve(f *field.Field, bins int) (*Profile, error) {
	p, err := newProfile(f.RadiusMax, bins)
	if err != nil {
		return nil, err
	}

	var counts [field.EndPopulation][]int
	for pop := range counts {
		counts[pop] = make([]int, bins)
	}

	for i := range f.Xs {
		j := p.bin(f.Xs[i].PlanarRadius())
		if j < 0 {
			continue
		}
		pop := f.Pops[i]
		p.Vals[pop][j] += f.Vs[i].Norm()
		counts[pop][j]++
	}

	for pop := range p.Vals {
		for j := range p.Vals[pop] {
			if counts[pop][j] == 0 {
				p.Vals[pop][j] = math.NaN()
			} else {
				p.Vals[pop][j] /= float64(counts[pop][j])
			}
		}
	}
	return p, nil
}

var popColors = [field.EndPopulation]string{"b", "r"}

// PlotField writes radial_profile.png, rotation_curve.png, and face_on.png
// to dir. Plotting is done by matplotlib, so python must be installed.
func PlotField(f *field.Field, dir string, bins int) error {
	prof, err := RadialProfile(f, bins)
	if err != nil {
		return err
	}
	curve, err := RotationCurve(f, bins)
	if err != nil {
		return err
	}

	plotProfile(prof, "Radial profile", "$N$",
		filepath.Join(dir, "radial_profile.png"))
	plotProfile(curve, "Rotation curve", "$|v|$",
		filepath.Join(dir, "rotation_curve.png"))
	plotFaceOn(f, filepath.Join(dir, "face_on.png"))

	plt.Execute()
	return nil
}

func plotProfile(p *Profile, title, yLabel, fname string) {
	cs := p.Centers()

	plt.Figure()
	for pop := field.Population(0); pop < field.EndPopulation; pop++ {
		plt.Plot(cs, p.Vals[pop], popColors[pop], plt.LW(2))
	}
	plt.Title(fmt.Sprintf("%s (blue: %s, red: %s)",
		title, field.Arm, field.Bulge))
	plt.XLabel(`$R$`, plt.FontSize(16))
	plt.YLabel(yLabel, plt.FontSize(16))
	plt.XLim(0, p.Edges[len(p.Edges)-1])
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
}

func plotFaceOn(f *field.Field, fname string) {
	xs, ys := FaceOn(f, FaceOnPoints)
	rMax := f.RadiusMax

	plt.Figure(plt.FigSize(8, 8))
	plt.Plot(xs, ys, ",k")
	plt.Title(fmt.Sprintf("%d of %d stars", len(xs), f.Len()))
	plt.XLabel(`$X$`, plt.FontSize(16))
	plt.YLabel(`$Y$`, plt.FontSize(16))
	plt.XLim(-rMax, +rMax)
	plt.YLim(-rMax, +rMax)
	plt.SaveFig(fname)
}

// FaceOn returns the x and y coordinates of at most n evenly strided stars.
func FaceOn(f *field.Field, n int) (xs, ys []float64) {
	if n <= 0 || f.Len() == 0 {
		return nil, nil
	}
	skip := (f.Len() + n - 1) / n
	for i := 0; i < f.Len(); i += skip {
		xs = append(xs, f.Xs[i][0])
		ys = append(ys, f.Xs[i][1])
	}
	return xs, ys
}
