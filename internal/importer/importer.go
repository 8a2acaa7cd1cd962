package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/circlemud/internal/game/world"
)

// Importer orchestrates content import from a Source to an output directory.
type Importer struct {
	source Source
	logger *zap.Logger
}

// New constructs an Importer backed by the given Source.
//
// Precondition: source must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{source: source, logger: logger}
}

// FileName is the output file name for a zone: its vnum, zero padded, and
// its name as an identifier.
func FileName(z ZoneSpec) string {
	return fmt.Sprintf("%03d_%s.yaml", z.Vnum, NameToID(z.Name))
}

// Run loads zones from sourceDir, checks that together they build a
// complete world, and writes them as YAML files to outputDir.
//
// Precondition: sourceDir must satisfy the source's layout requirements;
// outputDir must exist or be creatable.
// Postcondition: one zone YAML per zone is written to outputDir, or an error
// is returned and nothing is written.
func (imp *Importer) Run(sourceDir, outputDir string) error {
	overall := time.Now()

	zones, err := imp.source.Load(sourceDir)
	if err != nil {
		return fmt.Errorf("loading source: %w", err)
	}
	imp.logger.Info("loaded source zones", zap.Int("zones", len(zones)), zap.Duration("elapsed", time.Since(overall)))

	out := make(map[string][]byte, len(zones))
	files := make([]*world.ZoneFile, 0, len(zones))
	for _, zd := range zones {
		data, err := yaml.Marshal(zd)
		if err != nil {
			return fmt.Errorf("serialising zone %d: %w", zd.Zone.Vnum, err)
		}
		zf, err := world.LoadZoneFromBytes(data)
		if err != nil {
			return fmt.Errorf("zone %d failed validation: %w", zd.Zone.Vnum, err)
		}
		name := FileName(zd.Zone)
		if _, dup := out[name]; dup {
			return fmt.Errorf("two zones would be written to %s", name)
		}
		out[name] = data
		files = append(files, zf)
	}
	if err := world.New(nil, imp.logger).Build(files); err != nil {
		return fmt.Errorf("imported world does not build: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	for _, zd := range zones {
		name := FileName(zd.Zone)
		outPath := filepath.Join(outputDir, name)
		if err := os.WriteFile(outPath, out[name], 0o644); err != nil {
			return fmt.Errorf("writing zone %d to %s: %w", zd.Zone.Vnum, outPath, err)
		}
		imp.logger.Info("wrote zone",
			zap.String("path", outPath),
			zap.Int("rooms", len(zd.Zone.Rooms)),
			zap.Int("mobiles", len(zd.Zone.Mobiles)),
			zap.Int("objects", len(zd.Zone.Objects)),
			zap.Int("resets", len(zd.Zone.Resets)),
		)
	}
	imp.logger.Info("import complete", zap.Duration("elapsed", time.Since(overall)))
	return nil
}
