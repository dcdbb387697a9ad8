package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/formula/arena"
	"github.com/zephyrtronium/formula/plot"
)

func TestDecodeConfig(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want func(*Config)
		err  bool
	}{
		{name: "empty", in: "", want: func(*Config) {}},
		{
			name: "partial",
			in:   "history: calc.db\nplot:\n  width: 100\n  center_x: -1.5\nsurface:\n  resolution: 12\n",
			want: func(c *Config) {
				c.History = "calc.db"
				c.Plot.Width = 100
				c.Plot.CenterX = -1.5
				c.Surface.Resolution = 12
			},
		},
		{
			name: "all",
			in: `arena_capacity: 4096
history: h.db
trace_level: Debug
plot: {width: 10, height: 20, scale: 40, center_x: 1, center_y: 2}
surface: {range: 3, resolution: 30}
`,
			want: func(c *Config) {
				*c = Config{
					ArenaCapacity: 4096,
					History:       "h.db",
					TraceLevel:    "Debug",
					Plot:          PlotConfig{Width: 10, Height: 20, Scale: 40, CenterX: 1, CenterY: 2},
					Surface:       SurfaceConfig{Range: 3, Resolution: 30},
				}
			},
		},
		{name: "unknown", in: "colour: red\n", err: true},
		{name: "scale", in: "plot: {scale: 1}\n", err: true},
		{name: "capacity", in: "arena_capacity: 0\n", err: true},
		{name: "range", in: "surface: {range: -1}\n", err: true},
		{name: "resolution", in: "surface: {resolution: 0}\n", err: true},
		{name: "huge-plot", in: "plot: {width: 100000000}\n", err: true},
		{name: "huge-resolution", in: "surface: {resolution: 1000000}\n", err: true},
		{name: "syntax", in: "plot: [\n", err: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := defaultConfig()
			err := decodeConfig(strings.NewReader(c.in), &cfg)
			if c.err {
				if err == nil {
					t.Errorf("no error decoding %q", c.in)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			want := defaultConfig()
			c.want(&want)
			if diff := cmp.Diff(want, cfg); diff != "" {
				t.Errorf("wrong config (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ArenaCapacity != arena.DefaultCap || cfg.Plot.Scale != plot.DefaultScale {
		t.Errorf("wrong defaults %+v", cfg)
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("no error for missing file")
	}
}

func TestSplit(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		nl   bool
		want []string
	}{
		{"whole", []string{"1+\n2\r\n*x\n"}, false, []string{"1+ 2 *x"}},
		{"lines", []string{"1+2\r\n\n  \nx\n", "3"}, true, []string{"1+2", "x", "3"}},
		{"blank", []string{"\n"}, false, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if diff := cmp.Diff(c.want, split(c.in, c.nl)); diff != "" {
				t.Errorf("wrong expressions (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBatch(t *testing.T) {
	cfg := defaultConfig()
	cfg.Surface.Resolution = 10
	cases := []struct {
		name string
		b    batch
		srcs []string
		want string
		ok   bool
	}{
		{
			name: "eval",
			b:    batch{verb: "%g\n", x: 2, y: 3},
			srcs: []string{"1+2", "x y", "sqrt(-1)"},
			want: "3\n6\nNaN\n",
			ok:   true,
		},
		{
			name: "error",
			b:    batch{verb: "%g\n"},
			srcs: []string{"2*", "4"},
			want: "error: Unexpected end of input at position 2\n4\n",
			ok:   false,
		},
		{
			name: "joined",
			b:    batch{verb: "%g\n", x: 4},
			srcs: split([]string{"1 +\n2\n  * x\n"}, false),
			want: "9\n",
			ok:   true,
		},
		{
			name: "plot",
			b:    batch{curve: true},
			srcs: []string{"x"},
			want: "1 segments\n\t641 points from (0.0, 560.0) to (640.0, -80.0)\n",
			ok:   true,
		},
		{
			name: "surface",
			b:    batch{surface: true},
			srcs: []string{"x+y", "100"},
			want: "100 of 100 cells\n0 of 100 cells\n",
			ok:   true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out strings.Builder
			c.b.w = &out
			if ok := c.b.run(c.srcs, &cfg); ok != c.ok {
				t.Errorf("want ok=%t, got %t", c.ok, ok)
			}
			if diff := cmp.Diff(c.want, out.String()); diff != "" {
				t.Errorf("wrong output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunCalc(t *testing.T) {
	cfg := defaultConfig()
	cfg.History = filepath.Join(t.TempDir(), "history.db")
	in := "1+2\n*3\n\n(\n:history\n"
	var out strings.Builder
	if err := runCalc(strings.NewReader(in), &out, &cfg, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	want := []string{"3", "9", "", "( = Syntax error", "3*3 = 9", "1+2 = 3"}
	if len(lines) != len(want) {
		t.Fatalf("wrong output %q", out.String())
	}
	if !strings.HasPrefix(lines[2], "error: ") {
		t.Errorf("syntax error printed as %q", lines[2])
	}
	lines[2] = ""
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("wrong output (-want +got):\n%s", diff)
	}

	// A second session picks up the stored history.
	out.Reset()
	if err := runCalc(strings.NewReader(":history\n"), &out, &cfg, false); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("( = Syntax error\n3*3 = 9\n1+2 = 3\n", out.String()); diff != "" {
		t.Errorf("wrong reloaded history (-want +got):\n%s", diff)
	}
}
