package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	protrack "protrack-analyzer"
	"protrack-analyzer/dump"
)

func main() {
	var (
		jsonOut    = flag.Bool("json", false, "Emit full analysis as JSON")
		showPhases = flag.Bool("phases", false, "Include the phase table in text output")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <input.txt>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	rec, err := dump.ParseFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode failed: %v\n", err)
		os.Exit(1)
	}
	analysis := protrack.Analyze(rec)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis); err != nil {
			fmt.Fprintf(os.Stderr, "json encode failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Print(analysis.Notes)
	if *showPhases {
		fmt.Println()
		fmt.Print(protrack.BuildPhaseTable(analysis))
	}
}
