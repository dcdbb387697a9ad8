// Package arena implements a fixed-capacity bump allocator. All allocations
// from an arena live until the next Reset, which reclaims them together.
package arena

// Align is the alignment of every allocation, in bytes.
const Align = 8

// DefaultCap is the capacity used by callers that have no reason to pick
// another.
const DefaultCap = 64 << 10

// Ref is the offset of an allocation within its arena.
type Ref int32

// Nil is the Ref returned when an allocation fails.
const Nil Ref = -1

// Arena is a bump allocator over a byte buffer of fixed capacity. The arena
// never grows. It is not safe to use an Arena concurrently.
type Arena struct {
	buf  []byte
	used int
	gen  uint64
}

// New creates an arena with the given capacity in bytes.
func New(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{buf: make([]byte, capacity)}
}

// align rounds n up to the nearest multiple of Align.
func align(n int) int {
	return (n + Align - 1) &^ (Align - 1)
}

// Alloc reserves size bytes, rounded up to a multiple of Align, and returns
// the offset of the reservation. If the arena cannot hold the rounded size,
// the result is Nil and the arena is unchanged.
func (a *Arena) Alloc(size int) Ref {
	free := len(a.buf) - a.used
	if size < 0 || size > free {
		return Nil
	}
	// Rounding cannot overflow now that size is at most the capacity.
	n := align(size)
	if n > free {
		return Nil
	}
	r := Ref(a.used)
	a.used += n
	return r
}

// Bytes returns the size bytes starting at r. r must come from Alloc on a,
// and size must be no more than was allocated.
func (a *Arena) Bytes(r Ref, size int) []byte {
	return a.buf[int(r) : int(r)+size : int(r)+size]
}

// Reset discards every allocation. The buffer contents are left as they are;
// everything allocated before the reset must be treated as dead.
func (a *Arena) Reset() {
	a.used = 0
	a.gen++
}

// Destroy releases the buffer. Every later Alloc fails.
func (a *Arena) Destroy() {
	a.buf = nil
	a.used = 0
	a.gen++
}

// Cap returns the capacity of the arena in bytes.
func (a *Arena) Cap() int {
	return len(a.buf)
}

// Used returns the number of bytes currently allocated, including alignment
// padding.
func (a *Arena) Used() int {
	return a.used
}

// Gen returns the arena's generation. The generation changes on every Reset
// and Destroy, so a reference paired with the generation it was allocated in
// can tell whether it is still live.
func (a *Arena) Gen() uint64 {
	return a.gen
}
