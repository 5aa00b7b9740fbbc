package scan

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"
	"unicode/utf8"

	"codemap/internal/model"
)

// Failure modes that are written out in full and then swallowed. The
// log is the product: an empty or garbled linter run is a finding to
// report, not a reason to blow up.
var (
	ErrEmptyOutput   = errors.New("linter produced no output")
	ErrMalformedJSON = errors.New("linter output was not valid JSON")
)

// Options configures a scan run.
type Options struct {
	LogPath string  // Report destination, LogName when empty
	Runner  *Runner // Command runner, NewRunner() when nil
}

// Run drives the whole lint-and-report pipeline: execute ESLint,
// triage its output, write the debug log. Every failure is contained;
// the worst outcome is a log that ends with a crash note.
func Run(opts Options) {
	if opts.Runner == nil {
		opts.Runner = NewRunner()
	}
	rep := NewReport(opts.LogPath)

	fmt.Printf("🚀 Starting Scan... (Writing to %s)\n", rep.Path)
	rep.WriteHeader(time.Now())

	defer func() {
		if v := recover(); v != nil {
			fmt.Printf("🔥 SCAN CRASHED: %v\n", v)
			rep.WriteCrash(v)
		}
	}()

	err := run(opts, rep)
	if err == nil || errors.Is(err, ErrEmptyOutput) || errors.Is(err, ErrMalformedJSON) {
		// The sentinel cases already told their story on stdout and in
		// the log.
		return
	}
	fmt.Printf("🔥 SCAN CRASHED: %v\n", err)
	rep.WriteCrash(err)
}

func run(opts Options, rep *Report) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot resolve working directory: %w", err)
	}
	fmt.Printf("📂 Working Directory: %s\n", cwd)
	fmt.Printf("⚡ Executing: %s\n", opts.Runner.Command)
	rep.WriteRunContext(cwd, opts.Runner.Command)

	res, err := opts.Runner.Run()
	if err != nil {
		return fmt.Errorf("could not execute linter: %w", err)
	}
	return processOutput(rep, cwd, res)
}

// processOutput triages one captured linter run and writes the report.
func processOutput(rep *Report, cwd string, res model.CommandResult) error {
	fmt.Printf("📋 Return Code: %d\n", res.ExitCode)
	fmt.Printf("📊 Output Size: %d chars\n", utf8.RuneCountInString(res.Stdout))

	if res.Stderr != "" {
		fmt.Printf("⚠️ STDERR detected (Check %s)\n", rep.Path)
		rep.WriteStderr(res.Stderr)
	}

	if res.Stdout == "" {
		fmt.Println("❌ STDOUT is empty. ESLint produced no output.")
		rep.WriteEmptyOutput()
		return ErrEmptyOutput
	}

	fmt.Println("🧩 Parsing JSON...")
	var reports []model.FileReport
	if err := json.Unmarshal([]byte(res.Stdout), &reports); err != nil {
		fmt.Println("❌ JSON Decode Failed.")
		rep.WriteMalformed(res.Stdout)
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	broken := FilterAndSort(reports)
	fmt.Printf("📝 Found %d broken files. Writing details...\n", len(broken))
	rep.WriteSummary(len(broken))
	for _, file := range broken {
		rep.WriteFileSection(cwd, file)
	}

	fmt.Printf("✅ DONE. Check %s now.\n", rep.Path)
	return nil
}

// FilterAndSort keeps the files with at least one error, worst first.
// The sort is stable so equal counts stay in ESLint's original order.
func FilterAndSort(reports []model.FileReport) []model.FileReport {
	var broken []model.FileReport
	for _, f := range reports {
		if f.ErrorCount > 0 {
			broken = append(broken, f)
		}
	}
	sort.SliceStable(broken, func(i, j int) bool {
		return broken[i].ErrorCount > broken[j].ErrorCount
	})
	return broken
}
