package world

import (
	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/genetics"
)

// GeneRecord is one gene pool entry keyed by the agent it came from.
type GeneRecord struct {
	Id  components.Id
	Dna genetics.Dna
}

// GenePool returns the seed Dna used for new minions.
func (w *World) GenePool() []genetics.Dna { return w.genePool }

// SetGenePool replaces the seed Dna and resets the cursor.
func (w *World) SetGenePool(pool []genetics.Dna) {
	w.genePool = pool
	w.poolCursor = 0
}

func (w *World) nextFromPool() genetics.Dna {
	if len(w.genePool) == 0 {
		return genetics.Random(w.rng, w.cfg.Genetics.DnaBytes)
	}
	dna := w.genePool[w.poolCursor%len(w.genePool)].Clone()
	w.poolCursor++
	return dna
}

// MinionGenes returns the Dna of every live minion, for dumping.
func (w *World) MinionGenes() []GeneRecord {
	var out []GeneRecord
	for a := range w.Agents(components.KindMinion) {
		if a.IsActive() {
			out = append(out, GeneRecord{Id: a.Id, Dna: a.Dna.Clone()})
		}
	}
	return out
}
