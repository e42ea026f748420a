package genetics

import (
	"math/rand"
	"testing"
)

func TestDnaCloneIsIndependent(t *testing.T) {
	d := Dna{1, 2, 3}
	c := d.Clone()
	if !c.Equal(d) {
		t.Fatalf("clone %v != original %v", c, d)
	}
	c[0] = 9
	if d[0] != 1 {
		t.Error("mutating clone changed original")
	}
	if Dna(nil).Clone() != nil {
		t.Error("clone of nil should be nil")
	}
}

func TestDnaTextRoundTrip(t *testing.T) {
	d := Dna{0xde, 0xad, 0xbe, 0xef, 0x00}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var got Dna
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if !got.Equal(d) {
		t.Errorf("round trip = %v, want %v", got, d)
	}
	if err := got.UnmarshalText([]byte("not base64!")); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestCrossoverMixesParents(t *testing.T) {
	a := Dna{0x00, 0x00, 0x00, 0x00}
	b := Dna{0xff, 0xff, 0xff, 0xff}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		child := NewGenome(a).Crossover(rng, b).Dna()
		if len(child) != len(a) {
			t.Fatalf("child length = %d, want %d", len(child), len(a))
		}
		// Single cut: the child is a run of a-bits followed by a run of b-bits.
		seenOne := false
		for j := 0; j < len(child)*8; j++ {
			bit := child[j/8] >> uint(7-j%8) & 1
			if bit == 1 {
				seenOne = true
			} else if seenOne {
				t.Fatalf("child %08b is not a single-cut crossover", child)
			}
		}
		if !seenOne {
			t.Fatalf("child %v has no bits from the second parent", child)
		}
	}
	if a[0] != 0 || b[0] != 0xff {
		t.Error("parents mutated by crossover")
	}
}

func TestCrossoverDeterministicWithSeed(t *testing.T) {
	a := Dna{0x12, 0x34, 0x56}
	b := Dna{0xab, 0xcd, 0xef}
	c1 := NewGenome(a).Crossover(rand.New(rand.NewSource(42)), b).Dna()
	c2 := NewGenome(a).Crossover(rand.New(rand.NewSource(42)), b).Dna()
	if !c1.Equal(c2) {
		t.Errorf("same seed gave %v and %v", c1, c2)
	}
}

func TestCrossoverWithEmptyOtherIsClone(t *testing.T) {
	a := Dna{5, 6, 7}
	child := NewGenome(a).Crossover(rand.New(rand.NewSource(1)), nil).Dna()
	if !child.Equal(a) {
		t.Errorf("child = %v, want %v", child, a)
	}
}

func TestMutate(t *testing.T) {
	g := NewGenome(Dna{0, 0, 0, 0})
	rng := rand.New(rand.NewSource(3))
	if n := g.Mutate(rng, 0); n != 0 {
		t.Errorf("rate 0 flipped %d bits", n)
	}
	if n := g.Mutate(rng, 1); n != 32 {
		t.Errorf("rate 1 flipped %d bits, want 32", n)
	}
	if !g.Dna().Equal(Dna{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("dna after full mutation = %v", g.Dna())
	}
}

func TestReader(t *testing.T) {
	r := NewReader(Dna{0b10110000, 0xff})
	if got := r.Bits(4); got != 0b1011 {
		t.Errorf("Bits(4) = %b, want 1011", got)
	}
	if got := r.Bits(4); got != 0 {
		t.Errorf("Bits(4) = %b, want 0", got)
	}
	if got := r.Unit(); got != 1 {
		t.Errorf("Unit() = %v, want 1", got)
	}
	// Wraps to the start
	if !r.Bool() {
		t.Error("Bool() after wrap = false, want true")
	}
	for i := 0; i < 100; i++ {
		if v := r.Int(5); v < 0 || v >= 5 {
			t.Fatalf("Int(5) = %d out of range", v)
		}
	}
	if NewReader(nil).Bits(8) != 0 {
		t.Error("empty reader should read zeros")
	}
}

func TestGender(t *testing.T) {
	if (Dna{0x02}).Gender() != 0 || (Dna{0x03}).Gender() != 1 || Dna(nil).Gender() != 0 {
		t.Error("unexpected gender values")
	}
}
