// Package plot manages a workspace of formulas for graphing: curves y = f(x),
// surfaces z = f(x, y), and fixed vectors. All formulas in a workspace share
// one arena and are reparsed together whenever any of them changes.
package plot

import (
	"errors"
	"strconv"

	"github.com/npillmayer/schuko/tracing"

	"github.com/zephyrtronium/formula"
	"github.com/zephyrtronium/formula/arena"
)

const (
	// MaxFunctions is the number of curves, and separately the number of
	// surfaces, a workspace holds.
	MaxFunctions = 8
	// MaxText is the longest formula text a slot stores.
	MaxText = 255
	// ColorCount is the number of distinct colour indices.
	ColorCount = 8
)

var (
	// ErrFull is returned when adding to a list that is already full.
	ErrFull = errors.New("plot: list is full")
	// ErrIndex is returned for an index that does not name an entry.
	ErrIndex = errors.New("plot: index out of range")
)

// tracer traces with key 'formula.plot'.
func tracer() tracing.Trace {
	return tracing.Select("formula.plot")
}

// List selects the curves or the surfaces of a workspace.
type List int

const (
	Functions List = iota
	Surfaces
)

func (l List) prefix() string {
	if l == Surfaces {
		return "s"
	}
	return "f"
}

// Slot is one formula in a workspace.
type Slot struct {
	// Name is f1, f2, ... for curves and s1, s2, ... for surfaces. Names
	// follow list order.
	Name string
	// Text is the source of the formula.
	Text string
	// Color is an index into a palette of ColorCount colours.
	Color int
	// Visible is whether the formula is drawn.
	Visible bool
	// Valid is whether Text parsed. Root is only usable if Valid is true.
	Valid bool
	// Err is the parse error if Valid is false.
	Err  error
	Root formula.Node
}

// Workspace holds the formulas being graphed.
type Workspace struct {
	a     *arena.Arena
	lists [2][]Slot
	vecs  []Vector
	trace tracing.Trace
}

// NewWorkspace creates an empty workspace whose formulas share an arena of
// the given capacity in bytes. Non-positive capacities use arena.DefaultCap.
func NewWorkspace(capacity int) *Workspace {
	if capacity <= 0 {
		capacity = arena.DefaultCap
	}
	return &Workspace{
		a:     arena.New(capacity),
		trace: tracer(),
	}
}

// Slots returns a copy of the curves or surfaces in the workspace.
func (w *Workspace) Slots(l List) []Slot {
	return append([]Slot(nil), w.lists[l]...)
}

// Slot returns one entry of a list.
func (w *Workspace) Slot(l List, i int) (Slot, error) {
	if i < 0 || i >= len(w.lists[l]) {
		return Slot{}, ErrIndex
	}
	return w.lists[l][i], nil
}

// ReparseAll discards every parsed formula and parses all curves and then all
// surfaces again into the shared arena.
func (w *Workspace) ReparseAll() {
	w.a.Reset()
	for l := range w.lists {
		for i := range w.lists[l] {
			s := &w.lists[l][i]
			s.Root, s.Err = formula.Parse(s.Text, w.a)
			s.Valid = s.Err == nil
			if !s.Valid {
				w.trace.Debugf("plot: %s = %q: %v", s.Name, s.Text, s.Err)
			}
		}
	}
	w.trace.Debugf("plot: reparsed, arena holds %d bytes", w.a.Used())
}

// Add appends a formula to a list. If the formula does not parse, it is not
// added and the syntax error is returned.
func (w *Workspace) Add(l List, text string) error {
	s := w.lists[l]
	if len(s) >= MaxFunctions {
		return ErrFull
	}
	w.lists[l] = append(s, Slot{
		Name:    l.prefix() + strconv.Itoa(len(s)+1),
		Text:    truncate(text, MaxText),
		Color:   len(s),
		Visible: true,
	})
	w.ReparseAll()
	if n := w.lists[l][len(s)]; !n.Valid {
		w.lists[l] = w.lists[l][:len(s)]
		w.ReparseAll()
		return n.Err
	}
	return nil
}

// Update replaces the text of a formula. If the new text does not parse, it
// stays in place marked invalid and the syntax error is returned.
func (w *Workspace) Update(l List, i int, text string) error {
	if i < 0 || i >= len(w.lists[l]) {
		return ErrIndex
	}
	w.lists[l][i].Text = truncate(text, MaxText)
	w.ReparseAll()
	return w.lists[l][i].Err
}

// Remove deletes a formula from a list and renames those after it.
func (w *Workspace) Remove(l List, i int) error {
	s := w.lists[l]
	if i < 0 || i >= len(s) {
		return ErrIndex
	}
	s = append(s[:i], s[i+1:]...)
	for j := range s {
		s[j].Name = l.prefix() + strconv.Itoa(j+1)
	}
	w.lists[l] = s
	w.ReparseAll()
	return nil
}

// SetVisible shows or hides a formula.
func (w *Workspace) SetVisible(l List, i int, visible bool) error {
	if i < 0 || i >= len(w.lists[l]) {
		return ErrIndex
	}
	w.lists[l][i].Visible = visible
	return nil
}

// CycleColor advances the colour of a formula to the next palette entry.
func (w *Workspace) CycleColor(l List, i int) error {
	if i < 0 || i >= len(w.lists[l]) {
		return ErrIndex
	}
	s := &w.lists[l][i]
	s.Color = (s.Color + 1) % ColorCount
	return nil
}

// AddFunction appends a curve. It is a shortcut for w.Add(Functions, text).
func (w *Workspace) AddFunction(text string) error {
	return w.Add(Functions, text)
}

// UpdateFunction is a shortcut for w.Update(Functions, i, text).
func (w *Workspace) UpdateFunction(i int, text string) error {
	return w.Update(Functions, i, text)
}

// RemoveFunction is a shortcut for w.Remove(Functions, i).
func (w *Workspace) RemoveFunction(i int) error {
	return w.Remove(Functions, i)
}

// AddSurface appends a surface. It is a shortcut for w.Add(Surfaces, text).
func (w *Workspace) AddSurface(text string) error {
	return w.Add(Surfaces, text)
}

// UpdateSurface is a shortcut for w.Update(Surfaces, i, text).
func (w *Workspace) UpdateSurface(i int, text string) error {
	return w.Update(Surfaces, i, text)
}

// RemoveSurface is a shortcut for w.Remove(Surfaces, i).
func (w *Workspace) RemoveSurface(i int) error {
	return w.Remove(Surfaces, i)
}

// Close releases the workspace's arena. Every slot becomes invalid.
func (w *Workspace) Close() {
	w.a.Destroy()
	for l := range w.lists {
		for i := range w.lists[l] {
			w.lists[l][i].Valid = false
		}
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
