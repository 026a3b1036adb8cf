package pipeline

import (
	"go.uber.org/zap"

	protrack "protrack-analyzer"
)

// Options configures the protrack_extract pipeline.
type Options struct {
	// InputPath is the ProTrack II text dump to decode.
	InputPath string

	// OutputCSV is the deployment-table CSV path. Empty selects
	// <jumpNumber>.csv in the working directory.
	OutputCSV string

	// SamplesPath, when set, writes the full-resolution sample artifact.
	SamplesPath string

	// Format selects the sample artifact encoding: csv|parquet.
	Format string

	// FITPath, when set, exports the jump as a FIT activity file.
	FITPath string

	// LogbookPath, when set, appends the jump to a local sqlite logbook.
	LogbookPath string

	Logger *zap.SugaredLogger
}

// Result returns generated output paths and headline numbers.
type Result struct {
	JumpNumber      int    `json:"jump_number"`
	Layout          string `json:"layout"`
	SampleCount     int    `json:"sample_count"`
	DeploymentIndex int    `json:"deployment_index"`
	OutputCSV       string `json:"output_csv"`
	SamplesPath     string `json:"samples_path,omitempty"`
	SummaryPath     string `json:"summary_path,omitempty"`
	FITPath         string `json:"fit_path,omitempty"`
	LogbookPath     string `json:"logbook_path,omitempty"`
	LogbookSkipped  bool   `json:"logbook_skipped,omitempty"`

	// Analysis is the full reconstruction backing the artifacts above.
	Analysis *protrack.Analysis `json:"-"`
}
