package plot

import (
	"math"
)

// View parameters.
const (
	DefaultScale = 80
	MinScale     = 2
	MaxScale     = 10000
	ZoomFactor   = 1.15
)

// View is the window of the plane shown in a plot area. Screen coordinates
// are pixels from the top left corner of the area, with y growing downward.
type View struct {
	// CenterX and CenterY are the math coordinates at the centre of the area.
	CenterX, CenterY float64
	// Scale is the number of pixels per unit.
	Scale float64
}

// DefaultView returns the view centred on the origin at the default scale.
func DefaultView() View {
	return View{Scale: DefaultScale}
}

// Reset returns v to the default view.
func (v *View) Reset() {
	*v = DefaultView()
}

// ToScreen converts a math point to screen coordinates in an area of the
// given size.
func (v View) ToScreen(mx, my, width, height float64) (sx, sy float64) {
	sx = width/2 + (mx-v.CenterX)*v.Scale
	sy = height/2 - (my-v.CenterY)*v.Scale
	return sx, sy
}

// ToMath converts a screen point in an area of the given size to math
// coordinates.
func (v View) ToMath(sx, sy, width, height float64) (mx, my float64) {
	mx = v.CenterX + (sx-width/2)/v.Scale
	my = v.CenterY - (sy-height/2)/v.Scale
	return mx, my
}

// Zoom scales the view in by ZoomFactor if dir is positive or out if dir is
// negative, keeping the math point under the cursor fixed. dx and dy are the
// cursor's offset in pixels from the centre of the area. The scale stays
// within [MinScale, MaxScale].
func (v *View) Zoom(dir, dx, dy float64) {
	if dir == 0 {
		return
	}
	bx, by := v.CenterX+dx/v.Scale, v.CenterY-dy/v.Scale
	f := ZoomFactor
	if dir < 0 {
		f = 1 / ZoomFactor
	}
	v.Scale = math.Min(math.Max(v.Scale*f, MinScale), MaxScale)
	ax, ay := v.CenterX+dx/v.Scale, v.CenterY-dy/v.Scale
	v.CenterX += bx - ax
	v.CenterY += by - ay
}

// Pan moves the view by a drag of dx, dy pixels. The plane follows the
// cursor, so dragging right moves the centre left.
func (v *View) Pan(dx, dy float64) {
	v.CenterX -= dx / v.Scale
	v.CenterY += dy / v.Scale
}

// Bounds returns the math extent of an area of the given size.
func (v View) Bounds(width, height float64) (xmin, xmax, ymin, ymax float64) {
	hw, hh := width/2/v.Scale, height/2/v.Scale
	return v.CenterX - hw, v.CenterX + hw, v.CenterY - hh, v.CenterY + hh
}

// GridStep returns the spacing of major grid lines: about 60 pixels, rounded
// up to 2, 5, or 10 times a power of ten.
func (v View) GridStep() float64 {
	raw := 60 / v.Scale
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm < 2:
		return 2 * mag
	case norm < 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// MaxTicks bounds the number of grid lines Ticks returns.
const MaxTicks = 10000

// Ticks returns the positions of the major grid lines crossing [lo, hi]. The
// result is nil if there would be more than MaxTicks of them, or if the
// positions cannot be told apart at this step.
func Ticks(lo, hi, step float64) []float64 {
	if !(step > 0) || hi < lo {
		return nil
	}
	first, last := math.Floor(lo/step), math.Floor(hi/step)
	n := last - first
	if !(n <= MaxTicks) || math.IsInf(first, 0) || first+1 == first {
		return nil
	}
	r := make([]float64, 0, int(n)+1)
	for k := 0; k <= int(n); k++ {
		r = append(r, (first+float64(k))*step)
	}
	return r
}
