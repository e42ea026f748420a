package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/minions/config"
)

// File names inside a run directory.
const (
	ConfigFile     = "config.yaml"
	GenePoolFile   = "gene_pool.csv"
	PopulationFile = "telemetry.csv"
	EventsFile     = "events.csv"
	PerfFile       = "perf.csv"
	BookmarksFile  = "bookmarks.csv"
)

// csvLog appends gocsv rows to one file, writing the header with the first row.
type csvLog struct {
	name   string
	file   *os.File
	header bool
}

func openLog(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{name: name, file: f}, nil
}

// append writes rows, which must be a slice of gocsv-tagged structs.
func (l *csvLog) append(rows any) error {
	var err error
	if l.header {
		err = gocsv.MarshalWithoutHeaders(rows, l.file)
	} else {
		err = gocsv.Marshal(rows, l.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	l.header = true
	return nil
}

// OutputManager writes one run's artefacts into a directory: population and
// energy per window, alife events per window, tick timings, bookmarks, the
// config and the minion gene pool.
type OutputManager struct {
	dir string

	population *csvLog
	events     *csvLog
	perf       *csvLog
	bookmarks  *csvLog

	rigRejected int
}

// NewOutputManager creates the output directory and its logs.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, l := range []struct {
		dst  **csvLog
		name string
	}{
		{&om.population, PopulationFile},
		{&om.events, EventsFile},
		{&om.perf, PerfFile},
		{&om.bookmarks, BookmarksFile},
	} {
		log, err := openLog(dir, l.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*l.dst = log
	}
	return om, nil
}

// WriteConfig saves the run's configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteTelemetry appends a window to the population and events logs.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.population.append([]WindowStats{stats}); err != nil {
		return err
	}

	om.rigRejected += stats.RigRejected
	row := stats.EventsRow()
	row.RigRejectedTotal = om.rigRejected
	return om.events.append([]EventsRow{row})
}

// RigRejected returns the number of rigs rejected over the whole run.
func (om *OutputManager) RigRejected() int {
	if om == nil {
		return 0
	}
	return om.rigRejected
}

// WritePerf appends a tick timing record.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.append([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteBookmark appends a bookmark record.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.append([]Bookmark{b})
}

// WriteGenePool saves the current gene pool next to the telemetry.
func (om *OutputManager) WriteGenePool(records []GeneRecord) error {
	if om == nil {
		return nil
	}
	return SaveGenePool(filepath.Join(om.dir, GenePoolFile), records)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every open log.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, l := range []*csvLog{om.population, om.events, om.perf, om.bookmarks} {
		if l != nil {
			errs = append(errs, l.file.Close())
		}
	}
	return errors.Join(errs...)
}

// SaveRun writes a config and the gene pool it produced into dir, so the
// pair can be replayed with -config and -gene-pool.
func SaveRun(dir string, cfg *config.Config, genes []GeneRecord) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating run directory: %w", err)
	}
	if err := cfg.WriteYAML(filepath.Join(dir, ConfigFile)); err != nil {
		return fmt.Errorf("writing run config: %w", err)
	}
	if len(genes) == 0 {
		return nil
	}
	return SaveGenePool(filepath.Join(dir, GenePoolFile), genes)
}
