// Package pipeline orchestrates one decode run: parse the dump, reconstruct
// the series, and write the requested artifacts.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	protrack "protrack-analyzer"
	"protrack-analyzer/dump"
	"protrack-analyzer/logbook"
)

// Run executes the full extraction pipeline for one input file. Nothing is
// written until the dump has parsed and the series are fully reconstructed,
// so a malformed file never leaves a partial CSV behind.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.InputPath) == "" {
		return nil, fmt.Errorf("input path is required")
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "parquet" {
		return nil, fmt.Errorf("unsupported format %q (expected csv|parquet)", format)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	rec, err := dump.ParseFile(opts.InputPath)
	if err != nil {
		return nil, err
	}
	analysis := protrack.Analyze(rec)
	log.Infow("decoded jump",
		"jump", rec.JumpNumber,
		"layout", rec.Layout.String(),
		"samples", analysis.SampleCount,
		"deployment_index", analysis.DeploymentIndex,
	)

	outputCSV := opts.OutputCSV
	if outputCSV == "" {
		outputCSV = fmt.Sprintf("%d.csv", rec.JumpNumber)
	}
	if err := writeDeploymentCSV(outputCSV, analysis); err != nil {
		return nil, fmt.Errorf("write output csv: %w", err)
	}

	result := &Result{
		JumpNumber:      rec.JumpNumber,
		Layout:          rec.Layout.String(),
		SampleCount:     analysis.SampleCount,
		DeploymentIndex: analysis.DeploymentIndex,
		OutputCSV:       outputCSV,
		Analysis:        analysis,
	}

	if opts.SamplesPath != "" {
		switch format {
		case "csv":
			err = writeSamplesCSV(opts.SamplesPath, analysis)
		case "parquet":
			err = writeSamplesParquet(opts.SamplesPath, analysis)
		}
		if err != nil {
			return nil, fmt.Errorf("write samples %s: %w", format, err)
		}
		result.SamplesPath = opts.SamplesPath

		summaryPath := filepath.Join(filepath.Dir(opts.SamplesPath), "jump_summary.json")
		if err := writeJSON(summaryPath, analysis); err != nil {
			return nil, fmt.Errorf("write jump_summary.json: %w", err)
		}
		result.SummaryPath = summaryPath
	}

	if opts.FITPath != "" {
		if err := writeFITActivity(opts.FITPath, analysis); err != nil {
			return nil, fmt.Errorf("write fit activity: %w", err)
		}
		result.FITPath = opts.FITPath
	}

	if opts.LogbookPath != "" {
		if err := appendToLogbook(opts.LogbookPath, analysis, result); err != nil {
			return nil, err
		}
	}
	log.Infow("extraction complete", "output", outputCSV)
	return result, nil
}

func appendToLogbook(path string, analysis *protrack.Analysis, result *Result) error {
	book, err := logbook.Open(path)
	if err != nil {
		return fmt.Errorf("open logbook: %w", err)
	}
	defer book.Close()

	err = book.AddJump(analysis)
	if errors.Is(err, logbook.ErrDuplicate) {
		result.LogbookSkipped = true
	} else if err != nil {
		return fmt.Errorf("append to logbook: %w", err)
	}
	result.LogbookPath = path
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
