// Package main converts CircleMUD text world files into zone YAML.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/importer"
	"github.com/cory-johannsen/circlemud/internal/importer/legacy"
)

func main() {
	format := flag.String("format", "legacy", "source format: legacy")
	sourceDir := flag.String("source", "", "path to the source world directory (holding wld/, zon/, mob/, obj/)")
	outputDir := flag.String("output", "content/world", "path to output zone directory")
	noSpecials := flag.Bool("no-specials", false, "do not assign the stock special procedures")
	flag.Parse()

	if *sourceDir == "" {
		fmt.Fprintln(os.Stderr, "usage: import-content -source <dir> [-output <dir>] [-format legacy] [-no-specials]")
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var src importer.Source
	switch *format {
	case "legacy":
		var opts []legacy.Option
		if *noSpecials {
			opts = append(opts, legacy.WithoutSpecials())
		}
		src = legacy.NewSource(logger, opts...)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (supported: legacy)\n", *format)
		os.Exit(1)
	}

	start := time.Now()
	if err := importer.New(src, logger).Run(*sourceDir, *outputDir); err != nil {
		logger.Error("import failed", zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("import complete in %s\n", time.Since(start).Round(time.Millisecond))
}
