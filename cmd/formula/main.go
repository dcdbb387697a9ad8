package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/zephyrtronium/formula"
	"github.com/zephyrtronium/formula/arena"
	"github.com/zephyrtronium/formula/calc"
	"github.com/zephyrtronium/formula/plot"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb       string
		confname, histname string
		level              string
		b                  batch
		nl, interactive    bool
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Float64Var(&b.x, "x", 0, "value of x")
	flag.Float64Var(&b.y, "y", 0, "value of y")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions (default joins lines with spaces)")
	flag.BoolVar(&b.echo, "echo", false, "print parse trees")
	flag.BoolVar(&b.curve, "plot", false, "sample y = f(x) across the plot area and print its segments")
	flag.BoolVar(&b.surface, "surface", false, "sample z = f(x, y) and print the number of drawable cells")
	flag.BoolVar(&interactive, "calc", false, "run a calculator reading one line at a time")
	flag.StringVar(&histname, "history", "", "calculator history database (overrides config)")
	flag.StringVar(&confname, "config", "", "YAML config file")
	flag.StringVar(&level, "trace", "", "trace level: Error, Info, or Debug (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(confname)
	if err != nil {
		log.Fatal(err)
	}
	if histname != "" {
		cfg.History = histname
	}
	if level != "" {
		cfg.TraceLevel = level
	}
	// All selectors share the one tracer the adapter creates.
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracing.Select("formula").SetTraceLevel(tracing.TraceLevelFromString(cfg.TraceLevel))

	if interactive {
		fd := os.Stdin.Fd()
		prompt := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		if err := runCalc(os.Stdin, os.Stdout, &cfg, prompt); err != nil {
			log.Fatal(err)
		}
		return
	}

	var srcs []string
	in, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if in != "" {
		srcs = append(srcs, in)
	}
	srcs = append(srcs, flag.Args()...)
	srcs = split(srcs, nl)

	b.w = os.Stdout
	b.verb = verb + "\n"
	if !b.run(srcs, &cfg) {
		os.Exit(1)
	}
}

func infile(inname string, std bool) (string, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return "", err
		}
		defer in.Close()
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return "", nil
	}
	b, err := io.ReadAll(f)
	return string(b), err
}

// split turns the inputs into expressions, one per line if nl is set.
// Otherwise each input is one expression, with its line breaks read as
// spaces. Blank expressions are dropped.
func split(ins []string, nl bool) []string {
	var r []string
	for _, in := range ins {
		lines := []string{in}
		if nl {
			lines = strings.Split(in, "\n")
		}
		for _, s := range lines {
			s = strings.TrimRight(s, "\r\n")
			if !nl {
				s = lineBreaks.Replace(s)
			}
			if strings.TrimSpace(s) == "" {
				continue
			}
			r = append(r, s)
		}
	}
	return r
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// batch evaluates or samples a list of expressions.
type batch struct {
	w    io.Writer
	verb string
	x, y float64
	echo bool
	// curve and surface select sampling instead of evaluation.
	curve, surface bool
}

// run handles each expression in turn and reports whether all of them parsed.
func (b *batch) run(srcs []string, cfg *Config) bool {
	a := arena.New(cfg.ArenaCapacity)
	defer a.Destroy()
	ok := true
	for _, src := range srcs {
		a.Reset()
		n, err := formula.Parse(src, a)
		if err != nil {
			fmt.Fprintf(b.w, "error: %v\n", err)
			ok = false
			continue
		}
		if b.echo {
			fmt.Fprintf(b.w, "%v : ", n)
		}
		switch {
		case b.curve:
			segs := plot.Curve(n, cfg.view(), cfg.Plot.Width, cfg.Plot.Height)
			fmt.Fprintf(b.w, "%d segments\n", len(segs))
			for _, s := range segs {
				p, q := s[0], s[len(s)-1]
				fmt.Fprintf(b.w, "\t%d points from (%.1f, %.1f) to (%.1f, %.1f)\n", len(s), p.X, p.Y, q.X, q.Y)
			}
		case b.surface:
			res := cfg.Surface.Resolution
			quads := plot.Surface(n, cfg.Surface.Range, res)
			fmt.Fprintf(b.w, "%d of %d cells\n", len(quads), res*res)
		default:
			fmt.Fprintf(b.w, b.verb, formula.Eval(n, b.x, b.y))
		}
	}
	return ok
}

// runCalc runs a calculator session over lines of input. A line starting with
// an operator continues from the current display. The commands :history and
// :clear list the history and clear the display.
func runCalc(in io.Reader, out io.Writer, cfg *Config, prompt bool) error {
	opts := []calc.Option{calc.WithCapacity(cfg.ArenaCapacity)}
	if cfg.History != "" {
		st, err := calc.OpenStore(cfg.History)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		opts = append(opts, calc.WithStore(st))
	}
	s := calc.New(opts...)
	sc := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case line == ":history":
			for _, e := range s.History() {
				fmt.Fprintf(out, "%s = %s\n", e.Expr, e.Result)
			}
			continue
		case line == ":clear":
			s.Clear()
			continue
		case s.Display() != "" && strings.IndexByte("+-*/^", line[0]) >= 0:
			if !s.Insert(line) {
				fmt.Fprintln(out, "error: input too long")
				continue
			}
		default:
			s.SetDisplay(line)
		}
		e, _ := s.Eval()
		if e.Err != nil {
			fmt.Fprintf(out, "error: %v\n", e.Err)
			continue
		}
		fmt.Fprintln(out, e.Result)
	}
	if prompt {
		fmt.Fprintln(out)
	}
	err := sc.Err()
	if err == nil {
		err = s.Err()
	}
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}
