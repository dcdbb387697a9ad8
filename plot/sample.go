package plot

import (
	"math"

	"github.com/zephyrtronium/formula"
)

// Surface sampling defaults and limits.
const (
	SurfRes    = 60
	SurfRange  = 5
	MaxSurfRes = 500
)

// Point is a point in screen coordinates.
type Point struct {
	X, Y float64
}

// Segment is a connected run of a sampled curve.
type Segment []Point

// Curve samples y = n(x) at each pixel column of an area of the given size,
// from column 0 through column width inclusive. Where the result is NaN or
// infinite, the curve breaks. Adjacent samples that differ by 2*height pixels
// or more are also not connected, which separates the branches of functions
// like tan(x). Segments of fewer than two points are omitted.
func Curve(n formula.Node, v View, width, height int) []Segment {
	var (
		r   []Segment
		cur Segment
	)
	flush := func() {
		if len(cur) > 1 {
			r = append(r, cur)
		}
		cur = nil
	}
	w, h := float64(width), float64(height)
	xmin, _, _, _ := v.Bounds(w, h)
	for i := 0; i <= width; i++ {
		mx := xmin + float64(i)/v.Scale
		my := n.Eval(mx, 0)
		if math.IsNaN(my) || math.IsInf(my, 0) {
			flush()
			continue
		}
		sx, sy := v.ToScreen(mx, my, w, h)
		if len(cur) > 0 && math.Abs(sy-cur[len(cur)-1].Y) >= 2*h {
			flush()
		}
		cur = append(cur, Point{sx, sy})
	}
	flush()
	return r
}

// Quad is one cell of a sampled surface. Z holds the values at (X0, Y0),
// (X1, Y0), (X0, Y1), and (X1, Y1), in that order.
type Quad struct {
	X0, Y0, X1, Y1 float64
	Z              [4]float64
}

// Surface samples z = n(x, y) on a res by res grid of cells covering
// [-rng, rng] in both x and y. Cells with any corner that is NaN, infinite,
// or greater than 2*rng in magnitude are omitted. A non-positive res uses
// SurfRes, and res is at most MaxSurfRes.
func Surface(n formula.Node, rng float64, res int) []Quad {
	switch {
	case res <= 0:
		res = SurfRes
	case res > MaxSurfRes:
		res = MaxSurfRes
	}
	step := 2 * rng / float64(res)
	clamp := 2 * rng
	r := make([]Quad, 0, res*res)
	for ix := 0; ix < res; ix++ {
		for iy := 0; iy < res; iy++ {
			q := Quad{
				X0: -rng + float64(ix)*step,
				Y0: -rng + float64(iy)*step,
			}
			q.X1, q.Y1 = q.X0+step, q.Y0+step
			q.Z = [4]float64{
				n.Eval(q.X0, q.Y0),
				n.Eval(q.X1, q.Y0),
				n.Eval(q.X0, q.Y1),
				n.Eval(q.X1, q.Y1),
			}
			if drawable(q.Z, clamp) {
				r = append(r, q)
			}
		}
	}
	return r
}

func drawable(z [4]float64, clamp float64) bool {
	for _, v := range z {
		// NaN fails the comparison.
		if !(math.Abs(v) <= clamp) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Trace is the sampled curve of one workspace function.
type Trace struct {
	Name     string
	Color    int
	Segments []Segment
}

// Plot samples every visible, valid curve in the workspace.
func (w *Workspace) Plot(v View, width, height int) []Trace {
	var r []Trace
	for _, s := range w.lists[Functions] {
		if !s.Visible || !s.Valid {
			continue
		}
		r = append(r, Trace{Name: s.Name, Color: s.Color, Segments: Curve(s.Root, v, width, height)})
	}
	w.trace.Debugf("plot: sampled %d curves over %dx%d", len(r), width, height)
	return r
}

// Mesh is the sampled surface of one workspace surface formula.
type Mesh struct {
	Name  string
	Color int
	Quads []Quad
}

// Meshes samples every visible, valid surface in the workspace.
func (w *Workspace) Meshes(rng float64, res int) []Mesh {
	var r []Mesh
	for _, s := range w.lists[Surfaces] {
		if !s.Visible || !s.Valid {
			continue
		}
		r = append(r, Mesh{Name: s.Name, Color: s.Color, Quads: Surface(s.Root, rng, res)})
	}
	w.trace.Debugf("plot: sampled %d surfaces over ±%g at %d", len(r), rng, res)
	return r
}

// Reading is the value of one curve at a point.
type Reading struct {
	Name  string
	Color int
	Y     float64
}

// Probe evaluates every visible, valid curve at x and returns the finite
// results, as the cursor read-out of a plot does.
func (w *Workspace) Probe(x float64) []Reading {
	var r []Reading
	for _, s := range w.lists[Functions] {
		if !s.Visible || !s.Valid {
			continue
		}
		y := s.Root.Eval(x, 0)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		r = append(r, Reading{Name: s.Name, Color: s.Color, Y: y})
	}
	return r
}
