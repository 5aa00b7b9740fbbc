package model

// CommandResult captures what the lint subprocess produced. A nonzero exit
// code is not an error here; ESLint exits 1 whenever it finds problems.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// LintMessage is one diagnostic inside a file report. Field names follow the
// ESLint JSON formatter so the records unmarshal directly.
type LintMessage struct {
	Line    int    `json:"line"`
	RuleID  string `json:"ruleId"` // Empty when ESLint reports null (fatal parse errors do this)
	Message string `json:"message"`
}

// FileReport is one per-file record from the linter's JSON output.
// Extra fields in the JSON (severity, fixes, source text) are ignored.
type FileReport struct {
	FilePath   string        `json:"filePath"`
	ErrorCount int           `json:"errorCount"`
	Messages   []LintMessage `json:"messages"`
}
