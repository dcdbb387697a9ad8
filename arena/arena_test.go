package arena

import (
	"math"
	"testing"
)

func TestAllocAligned(t *testing.T) {
	cases := []struct {
		size int
		used int
	}{
		{0, 0},
		{1, 8},
		{7, 8},
		{8, 8},
		{9, 16},
		{32, 32},
		{33, 40},
	}
	for _, c := range cases {
		a := New(64)
		r := a.Alloc(c.size)
		if r != 0 {
			t.Errorf("Alloc(%d) on fresh arena gave offset %d", c.size, r)
		}
		if a.Used() != c.used {
			t.Errorf("Alloc(%d) used %d bytes, want %d", c.size, a.Used(), c.used)
		}
	}
}

func TestAllocOffsets(t *testing.T) {
	a := New(64)
	want := []Ref{0, 8, 24, 32}
	for i, size := range []int{3, 16, 5, 32} {
		r := a.Alloc(size)
		if r != want[i] {
			t.Errorf("allocation %d: want offset %d, got %d", i, want[i], r)
		}
		if r%Align != 0 {
			t.Errorf("allocation %d at %d is not aligned", i, r)
		}
	}
	if a.Used() != 64 {
		t.Errorf("want 64 used, got %d", a.Used())
	}
}

func TestAllocExhaustion(t *testing.T) {
	a := New(32)
	if r := a.Alloc(24); r == Nil {
		t.Fatal("first allocation failed")
	}
	// 9 rounds to 16, which does not fit in the remaining 8.
	if r := a.Alloc(9); r != Nil {
		t.Errorf("oversized allocation succeeded at %d", r)
	}
	if a.Used() != 24 {
		t.Errorf("failed allocation changed used to %d", a.Used())
	}
	if r := a.Alloc(8); r != 24 {
		t.Errorf("exact fit: want 24, got %d", r)
	}
	if r := a.Alloc(0); r != 32 {
		t.Errorf("empty allocation at end: want 32, got %d", r)
	}
	if r := a.Alloc(1); r != Nil {
		t.Errorf("allocation in full arena succeeded at %d", r)
	}
	if r := a.Alloc(-1); r != Nil {
		t.Errorf("negative allocation succeeded at %d", r)
	}
}

func TestAllocHuge(t *testing.T) {
	a := New(64)
	for _, size := range []int{math.MaxInt, math.MaxInt - 3, math.MaxInt - Align, 65} {
		if r := a.Alloc(size); r != Nil {
			t.Errorf("Alloc(%d) succeeded at %d", size, r)
		}
		if a.Used() != 0 {
			t.Fatalf("Alloc(%d) changed used to %d", size, a.Used())
		}
	}
	if r := a.Alloc(8); r != 0 {
		t.Errorf("first real allocation at %d", r)
	}
	if r := a.Alloc(8); r != 8 {
		t.Errorf("second real allocation at %d", r)
	}
}

func TestReset(t *testing.T) {
	a := New(16)
	r := a.Alloc(16)
	b := a.Bytes(r, 16)
	for i := range b {
		b[i] = byte(i + 1)
	}
	g := a.Gen()
	a.Reset()
	if a.Used() != 0 {
		t.Errorf("used after reset: %d", a.Used())
	}
	if a.Gen() == g {
		t.Error("reset did not change generation")
	}
	r = a.Alloc(16)
	if r != 0 {
		t.Fatalf("allocation after reset at %d", r)
	}
	// Reset does not clear the buffer.
	if b := a.Bytes(r, 16); b[3] != 4 {
		t.Errorf("reset touched buffer contents: %v", b)
	}
}

func TestDestroy(t *testing.T) {
	a := New(DefaultCap)
	a.Alloc(100)
	g := a.Gen()
	a.Destroy()
	if a.Cap() != 0 || a.Used() != 0 {
		t.Errorf("destroyed arena has cap %d used %d", a.Cap(), a.Used())
	}
	if a.Gen() == g {
		t.Error("destroy did not change generation")
	}
	if r := a.Alloc(1); r != Nil {
		t.Errorf("allocation after destroy succeeded at %d", r)
	}
	if r := a.Alloc(0); r != 0 {
		t.Errorf("empty allocation after destroy: want 0, got %d", r)
	}
}

func TestBytesBounded(t *testing.T) {
	a := New(32)
	r := a.Alloc(8)
	b := a.Bytes(r, 8)
	if len(b) != 8 || cap(b) != 8 {
		t.Errorf("Bytes gave len %d cap %d", len(b), cap(b))
	}
}
