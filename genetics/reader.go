package genetics

// Reader consumes a Dna as a stream of bits, most significant first.
// Reads past the end wrap around, so any Dna decodes to something.
type Reader struct {
	dna Dna
	pos int
}

// NewReader creates a bit reader over dna.
func NewReader(dna Dna) *Reader {
	return &Reader{dna: dna}
}

// Bits reads n bits (n <= 32) as an unsigned integer.
func (r *Reader) Bits(n int) uint32 {
	if len(r.dna) == 0 {
		return 0
	}
	total := len(r.dna) * 8
	var v uint32
	for i := 0; i < n; i++ {
		p := r.pos % total
		bit := (r.dna[p/8] >> uint(7-p%8)) & 1
		v = v<<1 | uint32(bit)
		r.pos++
	}
	return v
}

// Int reads a value in [0, n) using as few bits as cover n.
func (r *Reader) Int(n int) int {
	if n <= 1 {
		return 0
	}
	bits := 0
	for (1 << bits) < n {
		bits++
	}
	return int(r.Bits(bits)) % n
}

// Unit reads 8 bits as a value in [0, 1].
func (r *Reader) Unit() float64 {
	return float64(r.Bits(8)) / 255
}

// Range reads 8 bits mapped into [lo, hi].
func (r *Reader) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Unit()
}

// Bool reads one bit.
func (r *Reader) Bool() bool {
	return r.Bits(1) == 1
}
