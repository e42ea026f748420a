package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/minions/genetics"
	"github.com/pthm-cable/minions/world"
)

// DefaultGenePoolFile is the gene pool file used when none is given.
const DefaultGenePoolFile = "minion_gene_pool.csv"

// GeneRecord is one row of a gene pool file.
type GeneRecord struct {
	Id  uint32 `csv:"id"`
	Dna string `csv:"dna"` // base64
}

// GeneRecords converts live minion genes into file rows.
func GeneRecords(genes []world.GeneRecord) []GeneRecord {
	out := make([]GeneRecord, len(genes))
	for i, g := range genes {
		out[i] = GeneRecord{Id: uint32(g.Id), Dna: g.Dna.String()}
	}
	return out
}

// SaveGenePool writes the records to path, replacing any existing file.
func SaveGenePool(path string, records []GeneRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating gene pool %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return fmt.Errorf("writing gene pool: %w", err)
	}
	return nil
}

// LoadGenePool reads the Dna stored at path. Rows that fail to decode are
// reported as an error rather than skipped.
func LoadGenePool(path string) ([]genetics.Dna, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gene pool %s: %w", path, err)
	}
	defer f.Close()

	var records []GeneRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("reading gene pool: %w", err)
	}

	pool := make([]genetics.Dna, 0, len(records))
	for _, r := range records {
		var dna genetics.Dna
		if err := dna.UnmarshalText([]byte(r.Dna)); err != nil {
			return nil, fmt.Errorf("gene pool row %d: %w", r.Id, err)
		}
		if len(dna) == 0 {
			continue
		}
		pool = append(pool, dna)
	}
	return pool, nil
}
