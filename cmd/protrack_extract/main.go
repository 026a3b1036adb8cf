package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"protrack-analyzer/pipeline"
)

func main() {
	var (
		samples     = flag.String("samples", "", "Write the full-resolution sample artifact to this path")
		format      = flag.String("format", "csv", "Sample artifact format: csv|parquet")
		fitPath     = flag.String("fit", "", "Export the jump as a FIT activity file")
		logbookPath = flag.String("logbook", "", "Append the jump to a sqlite logbook at this path")
		jsonOut     = flag.Bool("json", false, "Emit the run result as JSON instead of the text summary")
		debug       = flag.Bool("debug", false, "Verbose logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <input.txt> [output.csv]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := newLogger(*debug)
	defer logger.Sync()

	result, err := pipeline.Run(pipeline.Options{
		InputPath:   flag.Arg(0),
		OutputCSV:   flag.Arg(1),
		SamplesPath: *samples,
		Format:      *format,
		FITPath:     *fitPath,
		LogbookPath: *logbookPath,
		Logger:      logger.Sugar(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "protrack_extract failed: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "json encode failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Print(result.Analysis.Notes)
	fmt.Printf("Output: %s\n", result.OutputCSV)
	if result.SamplesPath != "" {
		fmt.Printf("Samples: %s\n", result.SamplesPath)
	}
	if result.FITPath != "" {
		fmt.Printf("FIT activity: %s\n", result.FITPath)
	}
	if result.LogbookPath != "" {
		if result.LogbookSkipped {
			fmt.Printf("Logbook: %s (jump already recorded, skipped)\n", result.LogbookPath)
		} else {
			fmt.Printf("Logbook: %s\n", result.LogbookPath)
		}
	}
}

func newLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	return logger
}
