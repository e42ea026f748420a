package genetics

import "math/rand"

// Genome wraps a Dna for recombination.
type Genome struct {
	dna Dna
}

// NewGenome takes a private copy of dna.
func NewGenome(dna Dna) Genome {
	return Genome{dna: dna.Clone()}
}

// Dna returns the genome's encoding.
func (g Genome) Dna() Dna {
	return g.dna
}

// Crossover performs single-point crossover at bit granularity.
// Bits before the cut come from the receiver, bits after from other.
// The offspring has the receiver's length; missing bits of a shorter
// other are taken from the receiver.
func (g Genome) Crossover(rng *rand.Rand, other Dna) Genome {
	n := len(g.dna)
	child := g.dna.Clone()
	if n == 0 || len(other) == 0 {
		return Genome{dna: child}
	}

	bits := n * 8
	cut := rng.Intn(bits)
	for i := cut; i < bits; i++ {
		byteIdx, bit := i/8, uint(7-i%8)
		if byteIdx >= len(other) {
			break
		}
		mask := byte(1) << bit
		child[byteIdx] = child[byteIdx]&^mask | other[byteIdx]&mask
	}
	return Genome{dna: child}
}

// Mutate flips each bit with probability rate and returns the number of flips.
func (g Genome) Mutate(rng *rand.Rand, rate float64) int {
	if rate <= 0 {
		return 0
	}
	flips := 0
	for i := range g.dna {
		for bit := 0; bit < 8; bit++ {
			if rng.Float64() < rate {
				g.dna[i] ^= 1 << uint(bit)
				flips++
			}
		}
	}
	return flips
}
