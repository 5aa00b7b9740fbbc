package mapper

// Config carries every tunable of a map run.
type Config struct {
	IgnoreDirs     map[string]bool // Directory names pruned before descent
	IgnoreFiles    map[string]bool // Exact file names skipped
	CodeExtensions map[string]bool // Extensions (with dot) whose files get signature extraction
	MaxSignatures  int             // Cap on labels listed per file
}

// DefaultConfig returns the stock ignore sets and limits. Tuned for
// JS/TS projects: lockfiles and dependency dirs explode the map without
// telling a reader anything.
func DefaultConfig() Config {
	return Config{
		IgnoreDirs: map[string]bool{
			"node_modules": true, ".git": true, "dist": true, "build": true,
			"coverage": true, ".next": true, ".vscode": true, "__pycache__": true,
			".aider.tags.cache.v4": true, ".qodo": true,
		},
		IgnoreFiles: map[string]bool{
			"package-lock.json": true, "yarn.lock": true, "pnpm-lock.yaml": true,
			".DS_Store": true, ".env": true, ".env.local": true,
			".aider.chat.history.md": true, ".aider.input.history": true,
			".gitignore": true, ".llmignore": true,
		},
		CodeExtensions: map[string]bool{
			".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".mjs": true, ".cjs": true,
		},
		MaxSignatures: 10,
	}
}
