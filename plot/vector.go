package plot

import (
	"errors"
	"strconv"
	"strings"
)

// MaxVectors is the number of vectors a workspace holds.
const MaxVectors = 16

// ErrVectorFormat is returned for vector text not of the form "x,y,z".
var ErrVectorFormat = errors.New("plot: vector format is x,y,z (e.g. 1,2,3)")

// Vector is a fixed arrow from the origin drawn with the surfaces.
type Vector struct {
	X, Y, Z float64
	// Label is v1, v2, ... in list order.
	Label string
	// Text is the source the vector was read from.
	Text    string
	Color   int
	Visible bool
}

// Vectors returns a copy of the vectors in the workspace.
func (w *Workspace) Vectors() []Vector {
	return append([]Vector(nil), w.vecs...)
}

// AddVector reads a vector written as three comma-separated numbers and
// appends it. Anything after the third number is ignored.
func (w *Workspace) AddVector(text string) error {
	if len(w.vecs) >= MaxVectors {
		return ErrFull
	}
	var c [3]float64
	rest := text
	for i := range c {
		if i > 0 {
			if !strings.HasPrefix(rest, ",") {
				return ErrVectorFormat
			}
			rest = rest[1:]
		}
		var ok bool
		c[i], rest, ok = scanFloat(rest)
		if !ok {
			return ErrVectorFormat
		}
	}
	w.vecs = append(w.vecs, Vector{
		X:       c[0],
		Y:       c[1],
		Z:       c[2],
		Label:   "v" + strconv.Itoa(len(w.vecs)+1),
		Text:    truncate(text, 127),
		Color:   len(w.vecs) + len(w.lists[Surfaces]),
		Visible: true,
	})
	return nil
}

// RemoveVector deletes a vector and relabels those after it.
func (w *Workspace) RemoveVector(i int) error {
	if i < 0 || i >= len(w.vecs) {
		return ErrIndex
	}
	w.vecs = append(w.vecs[:i], w.vecs[i+1:]...)
	for j := range w.vecs {
		w.vecs[j].Label = "v" + strconv.Itoa(j+1)
	}
	return nil
}

// SetVectorVisible shows or hides a vector.
func (w *Workspace) SetVectorVisible(i int, visible bool) error {
	if i < 0 || i >= len(w.vecs) {
		return ErrIndex
	}
	w.vecs[i].Visible = visible
	return nil
}

// CycleVectorColor advances the colour of a vector to the next palette entry.
func (w *Workspace) CycleVectorColor(i int) error {
	if i < 0 || i >= len(w.vecs) {
		return ErrIndex
	}
	v := &w.vecs[i]
	v.Color = (v.Color + 1) % ColorCount
	return nil
}

// scanFloat reads the longest number at the start of s after any leading
// whitespace and returns it with the remainder of s.
func scanFloat(s string) (float64, string, bool) {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	end := 0
	for end < len(s) && strings.IndexByte("0123456789+-.eE", s[end]) >= 0 {
		end++
	}
	for ; end > 0; end-- {
		v, err := strconv.ParseFloat(s[:end], 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return v, s[end:], true
		}
	}
	return 0, s, false
}
