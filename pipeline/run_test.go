package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"protrack-analyzer/logbook"
)

func TestRunWritesDeploymentCSV(t *testing.T) {
	dir := t.TempDir()
	input := writeTestDump(t, dir)
	out := filepath.Join(dir, "jump.csv")

	result, err := Run(Options{InputPath: input, OutputCSV: out})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.JumpNumber != 123 || result.Layout != "current" {
		t.Fatalf("unexpected result header: %+v", result)
	}
	if result.OutputCSV != out {
		t.Fatalf("output path: got %q, want %q", result.OutputCSV, out)
	}

	rows := readCSV(t, out)
	if len(rows) < 2 {
		t.Fatalf("expected header plus data rows, got %d rows", len(rows))
	}
	if rows[0][0] != "Altitude(ft)" || rows[0][1] != "SAS(mph)" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	// Rows run from the first full-window sample down to the deployment
	// crossing and stop there. Every altitude stays above the 1000 m
	// (3281 ft) threshold.
	for _, row := range rows[1:] {
		ft, err := strconv.Atoi(row[0])
		if err != nil {
			t.Fatalf("altitude cell %q: %v", row[0], err)
		}
		if ft <= 3280 {
			t.Fatalf("row altitude %d ft at or below deployment threshold", ft)
		}
	}
	wantRows := result.DeploymentIndex - 32
	if len(rows)-1 != wantRows {
		t.Fatalf("data rows: got %d, want %d", len(rows)-1, wantRows)
	}
}

func TestRunDefaultsOutputToJumpNumber(t *testing.T) {
	dir := t.TempDir()
	input := writeTestDump(t, dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	result, err := Run(Options{InputPath: input})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.OutputCSV != "123.csv" {
		t.Fatalf("default output: got %q, want 123.csv", result.OutputCSV)
	}
	if _, err := os.Stat(filepath.Join(dir, "123.csv")); err != nil {
		t.Fatalf("default output file missing: %v", err)
	}
}

func TestRunSamplesArtifactAndSummary(t *testing.T) {
	dir := t.TempDir()
	input := writeTestDump(t, dir)
	samples := filepath.Join(dir, "samples.csv")

	result, err := Run(Options{
		InputPath:   input,
		OutputCSV:   filepath.Join(dir, "jump.csv"),
		SamplesPath: samples,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	rows := readCSV(t, samples)
	if len(rows) != result.SampleCount+1 {
		t.Fatalf("samples rows: got %d, want %d", len(rows)-1, result.SampleCount)
	}
	if rows[0][0] != "time_s" || rows[0][len(rows[0])-1] != "comment" {
		t.Fatalf("unexpected samples header: %v", rows[0])
	}
	// Row markers land on the fixed exit offset, the speed-start offset and
	// the detected deployment sample.
	assertComment(t, rows, 8, "Exit")
	assertComment(t, rows, 32, "Speed Accurate")
	assertComment(t, rows, result.DeploymentIndex, "Deployment")
	// Derivative cells are empty until a full lookback window exists.
	if rows[9][4] != "" {
		t.Fatalf("speed cell before window should be empty, got %q", rows[9][4])
	}
	if rows[40][4] == "" {
		t.Fatalf("speed cell after window start should be filled")
	}

	summary := filepath.Join(dir, "jump_summary.json")
	if result.SummaryPath != summary {
		t.Fatalf("summary path: got %q, want %q", result.SummaryPath, summary)
	}
	data, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var decoded struct {
		JumpNumber int    `json:"jump_number"`
		Layout     string `json:"layout"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if decoded.JumpNumber != 123 || decoded.Layout != "current" {
		t.Fatalf("unexpected summary: %+v", decoded)
	}
}

func TestRunSamplesParquet(t *testing.T) {
	dir := t.TempDir()
	input := writeTestDump(t, dir)
	samples := filepath.Join(dir, "samples.parquet")

	result, err := Run(Options{
		InputPath:   input,
		OutputCSV:   filepath.Join(dir, "jump.csv"),
		SamplesPath: samples,
		Format:      "parquet",
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	info, err := os.Stat(result.SamplesPath)
	if err != nil {
		t.Fatalf("parquet artifact missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("parquet artifact is empty")
	}
}

func TestRunFITExport(t *testing.T) {
	dir := t.TempDir()
	input := writeTestDump(t, dir)
	fitPath := filepath.Join(dir, "jump.fit")

	result, err := Run(Options{
		InputPath: input,
		OutputCSV: filepath.Join(dir, "jump.csv"),
		FITPath:   fitPath,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	data, err := os.ReadFile(result.FITPath)
	if err != nil {
		t.Fatalf("fit file missing: %v", err)
	}
	if len(data) < 14 || string(data[8:12]) != ".FIT" {
		t.Fatalf("output is not a FIT file (%d bytes)", len(data))
	}
}

func TestRunLogbookSkipsDuplicates(t *testing.T) {
	dir := t.TempDir()
	input := writeTestDump(t, dir)
	db := filepath.Join(dir, "logbook.db")
	opts := Options{
		InputPath:   input,
		OutputCSV:   filepath.Join(dir, "jump.csv"),
		LogbookPath: db,
	}

	first, err := Run(opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.LogbookSkipped {
		t.Fatal("first run should record the jump")
	}
	second, err := Run(opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.LogbookSkipped {
		t.Fatal("second run should skip the duplicate")
	}

	book, err := logbook.Open(db)
	if err != nil {
		t.Fatalf("open logbook: %v", err)
	}
	defer book.Close()
	count, err := book.JumpCount()
	if err != nil {
		t.Fatalf("count jumps: %v", err)
	}
	if count != 1 {
		t.Fatalf("logbook rows: got %d, want 1", count)
	}
}

func TestRunRejectsMalformedDump(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.txt")
	text := dumpText(t)
	// Truncate the PIE marker off the end.
	text = text[:strings.LastIndex(text, "PIE")]
	if err := os.WriteFile(input, []byte(text), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	out := filepath.Join(dir, "jump.csv")

	if _, err := Run(Options{InputPath: input, OutputCSV: out}); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("malformed input must not leave an output file behind: %v", err)
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	if _, err := Run(Options{InputPath: "whatever.txt", Format: "xml"}); err == nil {
		t.Fatal("expected format error")
	}
}

func TestRunRequiresInputPath(t *testing.T) {
	if _, err := Run(Options{}); err == nil {
		t.Fatal("expected input path error")
	}
}

func assertComment(t *testing.T, rows [][]string, index int, want string) {
	t.Helper()
	got := rows[index+1][len(rows[index+1])-1]
	if got != want {
		t.Fatalf("comment at sample %d: got %q, want %q", index, got, want)
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func writeTestDump(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "jump.txt")
	if err := os.WriteFile(path, []byte(dumpText(t)), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	return path
}

// dumpText renders a complete current-layout dump: aircraft samples at
// 4000 m, a steady freefall past the 1000 m deployment altitude and a short
// canopy descent.
func dumpText(t *testing.T) string {
	t.Helper()

	var alts []float64
	for i := 0; i < 8; i++ {
		alts = append(alts, 4000)
	}
	alt := 4000.0
	for alt > 1000 {
		alts = append(alts, alt)
		alt -= 10.5
	}
	for i := 0; i < 60; i++ {
		alts = append(alts, alt)
		alt -= 1.5
	}

	var profile strings.Builder
	for i, a := range alts {
		p := 10132.5 * math.Pow(1.0-a/44330.8, 1.0/0.190263)
		profile.WriteString(strconv.Itoa(int(math.Round(p))))
		profile.WriteString(",")
		if (i+1)%16 == 0 {
			profile.WriteString("\n")
		}
	}

	lines := []string{
		"ProTrack II JIB",
		"1.00",
		"1",
		"1.00",
		"PT2-0042",
		"123",
		"20230611",
		"140322",
		"4000",
		"1000",
		"71",
		"40", "42", "30", "38", "41",
		"42", "44", "32", "40", "43",
		"15",
		"0",
		"0", "0", "0", "0", "0",
		"0", "0", "0", "0", "0",
		"JIE",
		"PIB",
		"10132",
		"1",
		"1",
		strconv.Itoa(len(alts)),
		strings.TrimSuffix(profile.String(), "\n"),
		"PIE",
	}
	return strings.Join(lines, "\n")
}
