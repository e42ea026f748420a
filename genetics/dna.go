// Package genetics provides the heritable encoding of minions and its recombination.
package genetics

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math/rand"
)

// Dna is an opaque heritable byte string.
type Dna []byte

// Random returns n random bytes.
func Random(rng *rand.Rand, n int) Dna {
	d := make(Dna, n)
	rng.Read(d)
	return d
}

// Equal compares two Dna values by content.
func (d Dna) Equal(other Dna) bool {
	return bytes.Equal(d, other)
}

// Clone returns an independent copy.
func (d Dna) Clone() Dna {
	if d == nil {
		return nil
	}
	c := make(Dna, len(d))
	copy(c, d)
	return c
}

// Gender returns 0 or 1, taken from the lowest bit of the first byte.
func (d Dna) Gender() uint8 {
	if len(d) == 0 {
		return 0
	}
	return d[0] & 1
}

// MarshalText encodes the Dna as base64, used by gene pool CSV files.
func (d Dna) MarshalText() ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(d)))
	base64.StdEncoding.Encode(out, d)
	return out, nil
}

// UnmarshalText decodes a base64 Dna.
func (d *Dna) UnmarshalText(text []byte) error {
	buf := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(buf, text)
	if err != nil {
		return fmt.Errorf("decoding dna: %w", err)
	}
	*d = Dna(buf[:n])
	return nil
}

func (d Dna) String() string {
	text, _ := d.MarshalText()
	return string(text)
}
