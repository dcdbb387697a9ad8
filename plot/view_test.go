package plot_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/formula/plot"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestViewConvert(t *testing.T) {
	v := plot.View{CenterX: 1, CenterY: -2, Scale: 40}
	cases := []struct {
		mx, my float64
		sx, sy float64
	}{
		{1, -2, 200, 100},
		{0, 0, 160, 20},
		{2, -1, 240, 60},
		{-4, -4.5, 0, 200},
	}
	for _, c := range cases {
		sx, sy := v.ToScreen(c.mx, c.my, 400, 200)
		if !near(sx, c.sx) || !near(sy, c.sy) {
			t.Errorf("(%g, %g) to screen: want (%g, %g), got (%g, %g)", c.mx, c.my, c.sx, c.sy, sx, sy)
		}
		mx, my := v.ToMath(c.sx, c.sy, 400, 200)
		if !near(mx, c.mx) || !near(my, c.my) {
			t.Errorf("(%g, %g) to math: want (%g, %g), got (%g, %g)", c.sx, c.sy, c.mx, c.my, mx, my)
		}
	}
	xmin, xmax, ymin, ymax := v.Bounds(400, 200)
	if xmin != -4 || xmax != 6 || ymin != -4.5 || ymax != 0.5 {
		t.Errorf("wrong bounds %g %g %g %g", xmin, xmax, ymin, ymax)
	}
}

func TestViewZoom(t *testing.T) {
	v := plot.DefaultView()
	const w, h = 400, 300
	// Cursor 100 px right of and 50 px above the centre.
	dx, dy := 100.0, -50.0
	bx, by := v.ToMath(w/2+dx, h/2+dy, w, h)
	v.Zoom(1, dx, dy)
	if !near(v.Scale, plot.DefaultScale*plot.ZoomFactor) {
		t.Errorf("zoom in gave scale %g", v.Scale)
	}
	ax, ay := v.ToMath(w/2+dx, h/2+dy, w, h)
	if !near(ax, bx) || !near(ay, by) {
		t.Errorf("point under cursor moved from (%g, %g) to (%g, %g)", bx, by, ax, ay)
	}
	v.Zoom(-1, dx, dy)
	if !near(v.Scale, plot.DefaultScale) {
		t.Errorf("zoom out gave scale %g", v.Scale)
	}
	ax, ay = v.ToMath(w/2+dx, h/2+dy, w, h)
	if !near(ax, bx) || !near(ay, by) {
		t.Errorf("point under cursor moved from (%g, %g) to (%g, %g)", bx, by, ax, ay)
	}

	old := v
	v.Zoom(0, dx, dy)
	if v != old {
		t.Errorf("zero zoom changed %+v to %+v", old, v)
	}
	for i := 0; i < 100; i++ {
		v.Zoom(1, 0, 0)
	}
	if v.Scale != plot.MaxScale {
		t.Errorf("zoomed in to scale %g", v.Scale)
	}
	for i := 0; i < 200; i++ {
		v.Zoom(-1, 0, 0)
	}
	if v.Scale != plot.MinScale {
		t.Errorf("zoomed out to scale %g", v.Scale)
	}
}

func TestViewPanReset(t *testing.T) {
	v := plot.DefaultView()
	v.Pan(80, 160)
	if v.CenterX != -1 || v.CenterY != 2 {
		t.Errorf("pan moved centre to (%g, %g)", v.CenterX, v.CenterY)
	}
	v.Zoom(1, 10, 10)
	v.Reset()
	if diff := cmp.Diff(plot.DefaultView(), v); diff != "" {
		t.Errorf("reset view differs (-want +got):\n%s", diff)
	}
}

func TestGridStep(t *testing.T) {
	cases := []struct {
		scale float64
		step  float64
	}{
		{80, 1},
		{60, 2},
		{20, 5},
		{2, 50},
		{400, 0.2},
		{10000, 0.01},
	}
	for _, c := range cases {
		v := plot.View{Scale: c.scale}
		if s := v.GridStep(); !near(s, c.step) {
			t.Errorf("scale %g: want step %g, got %g", c.scale, c.step, s)
		}
	}
}

func TestTicks(t *testing.T) {
	cases := []struct {
		lo, hi, step float64
		want         []float64
	}{
		{-1, 1, 0.5, []float64{-1, -0.5, 0, 0.5, 1}},
		{0.3, 1, 0.5, []float64{0, 0.5, 1}},
		{-2.5, -0.5, 1, []float64{-3, -2, -1}},
		{0, 1, 0, nil},
		{1, 0, 1, nil},
		{0, 1e6, 1, nil},
		{math.NaN(), 1, 1, nil},
		{1e20, 1e20 + 4, 1, nil},
	}
	for _, c := range cases {
		got := plot.Ticks(c.lo, c.hi, c.step)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("Ticks(%g, %g, %g) (-want +got):\n%s", c.lo, c.hi, c.step, diff)
		}
	}
}

func TestTicksFarView(t *testing.T) {
	cases := []plot.View{
		{CenterX: 1e20, Scale: 80},
		{CenterY: -1e300, Scale: plot.MinScale},
		{CenterX: 1e6, Scale: plot.MaxScale},
	}
	for _, v := range cases {
		xmin, xmax, ymin, ymax := v.Bounds(400, 300)
		step := v.GridStep()
		for _, r := range [][2]float64{{xmin, xmax}, {ymin, ymax}} {
			ticks := plot.Ticks(r[0], r[1], step)
			if len(ticks) > plot.MaxTicks+1 {
				t.Errorf("%+v: %d ticks", v, len(ticks))
			}
			for _, x := range ticks {
				if x < r[0]-step || x > r[1]+step {
					t.Errorf("%+v: tick %g outside [%g, %g]", v, x, r[0], r[1])
				}
			}
		}
	}
}
