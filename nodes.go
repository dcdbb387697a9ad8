package formula

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/zephyrtronium/formula/arena"
)

// Node is a handle to a node in the abstract syntax tree of a formula. The
// node itself lives in an arena; a Node stays valid until that arena is reset
// or destroyed. The zero Node is invalid.
type Node struct {
	a   *arena.Arena
	ref arena.Ref
	gen uint64
}

// Kind identifies the variant of a node.
type Kind uint8

const (
	KindNone Kind = iota

	KindNum    // Value
	KindVar    // Var is 'x' or 'y'
	KindNeg    // negate Operand
	KindBinary // Left Op Right
	KindCall   // Name(Arg)
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind -trimprefix=Kind
//go:generate go mod tidy

// MaxName is the longest function name a call node stores. Longer names are
// truncated.
const MaxName = 15

// Layout of a node record. Numbers have no children, so the value shares
// space with the right link.
const (
	nodeSize = 32

	offKind    = 0
	offOp      = 1 // operator byte, or variable name
	offNameLen = 2
	offLeft    = 4
	offRight   = 8
	offValue   = 8
	offName    = 16
)

// newNode allocates an empty node record. The second result is false if the
// arena is exhausted.
func newNode(a *arena.Arena, k Kind) (Node, bool) {
	r := a.Alloc(nodeSize)
	if r == arena.Nil {
		return Node{}, false
	}
	n := Node{a: a, ref: r, gen: a.Gen()}
	b := n.rec()
	// Arena memory is not cleared on reset, so write every field.
	for i := range b {
		b[i] = 0
	}
	b[offKind] = byte(k)
	return n, true
}

func (n Node) rec() []byte {
	return n.a.Bytes(n.ref, nodeSize)
}

func (n Node) link(off int) Node {
	r := arena.Ref(int32(binary.LittleEndian.Uint32(n.rec()[off:])))
	return Node{a: n.a, ref: r, gen: n.gen}
}

func (n Node) setLink(off int, m Node) {
	binary.LittleEndian.PutUint32(n.rec()[off:], uint32(m.ref))
}

// Valid returns whether n refers to a live node.
func (n Node) Valid() bool {
	return n.a != nil && n.ref != arena.Nil && n.a.Gen() == n.gen
}

// Kind returns the variant of the node, or KindNone if n is not valid.
func (n Node) Kind() Kind {
	if !n.Valid() {
		return KindNone
	}
	return Kind(n.rec()[offKind])
}

// Value returns the value of a number node. For any other node, it returns
// NaN.
func (n Node) Value() float64 {
	if n.Kind() != KindNum {
		return math.NaN()
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(n.rec()[offValue:]))
}

// Var returns the name of a variable node, either 'x' or 'y'. For any other
// node, it returns 0.
func (n Node) Var() byte {
	if n.Kind() != KindVar {
		return 0
	}
	return n.rec()[offOp]
}

// Op returns the operator of a binary node, one of + - * / % ^. For any other
// node, it returns 0.
func (n Node) Op() byte {
	if n.Kind() != KindBinary {
		return 0
	}
	return n.rec()[offOp]
}

// Left returns the left operand of a binary node.
//
// Left, Right, Operand, and Arg return the zero Node when n is not of the kind
// they apply to.
func (n Node) Left() Node {
	return n.child(KindBinary, offLeft)
}

// Right returns the right operand of a binary node.
func (n Node) Right() Node {
	return n.child(KindBinary, offRight)
}

// Operand returns the operand of a negation node.
func (n Node) Operand() Node {
	return n.child(KindNeg, offLeft)
}

// Arg returns the argument of a call node.
func (n Node) Arg() Node {
	return n.child(KindCall, offLeft)
}

func (n Node) child(k Kind, off int) Node {
	if n.Kind() != k {
		return Node{}
	}
	return n.link(off)
}

// Name returns the function name of a call node, or the empty string for any
// other node.
func (n Node) Name() string {
	if n.Kind() != KindCall {
		return ""
	}
	return string(n.name())
}

func (n Node) name() []byte {
	b := n.rec()
	return b[offName : offName+int(b[offNameLen])]
}

// String formats the tree with alternating round and square brackets
// grouping each node.
func (n Node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n Node) fmt(b *strings.Builder, square bool) {
	if !n.Valid() {
		// Invalid nodes use invalid characters.
		b.WriteString("$$")
		return
	}
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.Kind() {
	case KindNum:
		b.WriteString(strconv.FormatFloat(n.Value(), 'g', -1, 64))
	case KindVar:
		b.WriteByte(n.Var())
	case KindNeg:
		b.WriteByte('-')
		n.Operand().fmt(b, !square)
	case KindBinary:
		n.Left().fmt(b, !square)
		b.WriteByte(' ')
		b.WriteByte(n.Op())
		b.WriteByte(' ')
		n.Right().fmt(b, !square)
	case KindCall:
		b.Write(n.name())
		n.Arg().fmt(b, !square)
	default:
		panic("formula: invalid node kind " + n.Kind().String() + " after writing " + b.String())
	}
}
