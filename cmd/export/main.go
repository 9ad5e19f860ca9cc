package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/kuhatje/Spur-AMP/internal/common/config"
	"github.com/kuhatje/Spur-AMP/internal/planner/mapper"
	"github.com/kuhatje/Spur-AMP/internal/planner/parser"
	"github.com/kuhatje/Spur-AMP/internal/planner/scene"
)

// ============================================================
// Batch Export
// ============================================================

func main() {
	cfg := config.Load()

	in := flag.String("in", "", "project file to export (required)")
	out := flag.String("out", cfg.ExportDir, "output directory")
	project := flag.String("project", mapper.DefaultProjectName, "project name in the manufacturing export")
	layoutPath := flag.String("layout", "", "also copy the Revit payload here (e.g. "+cfg.LayoutJSONPath+")")
	cell := flag.Float64("cell", cfg.CellSizeFeet, "cell size in feet")
	story := flag.Float64("story", cfg.StoryHeightFeet, "story height in feet")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*in, *out, *project, *layoutPath, mapper.Options{CellSizeFeet: *cell, StoryHeightFeet: *story}); err != nil {
		log.Fatalf("[EXPORT] %v", err)
	}
}

func run(in, out, project, layoutPath string, opts mapper.Options) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := parser.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	written, exportErr := mapper.NewExporter(opts, nil, scene.DefaultConfig()).Export(b, out, project)
	for _, path := range written {
		fmt.Println(path)
	}

	// the importer gets the exported payload byte for byte
	revit := filepath.Join(out, mapper.RevitFile)
	if layoutPath != "" && slices.Contains(written, revit) {
		if err := mapper.CopyFileAtomic(revit, layoutPath); err != nil {
			return errors.Join(exportErr, err)
		}
		fmt.Println(layoutPath)
	}
	return exportErr
}
