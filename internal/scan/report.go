package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codemap/internal/model"
)

// LogName is the default report file, created in the working directory.
const LogName = "logs.txt"

// Report appends plain-text sections to the debug log. Writes are best
// effort: a failed write is shouted to stdout and the run carries on.
type Report struct {
	Path string
}

func NewReport(path string) *Report {
	if path == "" {
		path = LogName
	}
	return &Report{Path: path}
}

// write opens, writes and closes per call so every section lands on
// disk even if a later one panics.
func (r *Report) write(content string, reset bool) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if reset {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(r.Path, flags, 0644)
	if err != nil {
		fmt.Printf("❌ CRITICAL: Could not write to %s: %v\n", r.Path, err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		fmt.Printf("❌ CRITICAL: Could not write to %s: %v\n", r.Path, err)
	}
}

// Reset truncates the log and writes content as its first section.
func (r *Report) Reset(content string) { r.write(content, true) }

// Append adds a section to the end of the log.
func (r *Report) Append(content string) { r.write(content, false) }

// WriteHeader starts a fresh report. Time of day only; the log is a
// scratch artifact, not an archive.
func (r *Report) WriteHeader(now time.Time) {
	r.Reset("--- ESLINT DEBUG REPORT ---\n")
	r.Append("Generated: " + now.Format("15:04:05") + "\n")
	r.Append(strings.Repeat("-", 27) + "\n\n")
}

// WriteRunContext records where the scan ran and what it executed.
func (r *Report) WriteRunContext(cwd, command string) {
	r.Append("Run Location: " + cwd + "\n")
	r.Append("Command: " + command + "\n\n")
}

// WriteStderr copies the linter's stderr into the report. Stderr often
// holds the real story (missing plugins, config errors) when stdout
// looks fine.
func (r *Report) WriteStderr(stderr string) {
	r.Append("--- STDERR (Errors from ESLint) ---\n" + stderr + "\n\n")
}

// WriteEmptyOutput records that the linter printed nothing at all.
func (r *Report) WriteEmptyOutput() {
	r.Append("ERROR: ESLint returned empty output. Is ESLint installed?\n")
}

// WriteMalformed dumps the head of unparseable output. 500 chars is
// enough to recognise an npm error banner without copying megabytes of
// broken JSON into the log.
func (r *Report) WriteMalformed(raw string) {
	r.Append("CRITICAL ERROR: ESLint output was not valid JSON.\n")
	r.Append("First 500 chars of raw output:\n" + firstChars(raw, 500) + "\n")
}

// WriteSummary records how many files had errors.
func (r *Report) WriteSummary(n int) {
	r.Append(fmt.Sprintf("Found %d files with errors.\n", n))
}

// WriteFileSection emits one banner-delimited block per broken file.
// Paths are relativised against cwd when possible; ESLint reports them
// absolute, which is noise when the log sits next to the code.
func (r *Report) WriteFileSection(cwd string, file model.FileReport) {
	name := file.FilePath
	if name == "" {
		name = "unknown"
	} else if rel, err := filepath.Rel(cwd, name); err == nil {
		name = rel
	}

	banner := strings.Repeat("=", 40)
	r.Append(fmt.Sprintf("\n%s\n📄 %s (%d errors)\n%s\n", banner, name, file.ErrorCount, banner))

	for _, msg := range file.Messages {
		rule := msg.RuleID
		if rule == "" {
			rule = "unknown"
		}
		// Multi-line messages are flattened so each finding stays a
		// single greppable line.
		text := strings.ReplaceAll(msg.Message, "\n", " ")
		r.Append(fmt.Sprintf("  ❌ Line %d: [%s] %s\n", msg.Line, rule, text))
	}
}

// WriteCrash records a failure that escaped every other handler.
func (r *Report) WriteCrash(v any) {
	r.Append(fmt.Sprintf("\n🔥 CRITICAL SCRIPT CRASH: %v\n", v))
}

// firstChars truncates on a rune boundary so a multi-byte character is
// never cut in half. The input is sliced, never copied; a garbled run
// can hand us megabytes.
func firstChars(s string, n int) string {
	seen := 0
	for i := range s {
		if seen == n {
			return s[:i]
		}
		seen++
	}
	return s
}
