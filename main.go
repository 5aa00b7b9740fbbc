package main

import (
	"encoding/json"
	"fmt"
	"os"

	"codemap/internal/mapper"
	"codemap/internal/model"
	"codemap/internal/scan"
	"codemap/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

// Downstream tooling globs for the v2 name; keep it stable.
const defaultMapFile = "codebase_map_v2.txt"

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "codemaphq",
		Repository: "codemap",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/codemaphq/codemap/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: codemap [options]\n\n")
		fmt.Fprintf(os.Stderr, "codemap condenses a JS/TS project for LLM context: every directory\n")
		fmt.Fprintf(os.Stderr, "and file that matters, with class/function/export signatures inline.\n")
		fmt.Fprintf(os.Stderr, "It can also run ESLint and distill the findings into a debug log.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  codemap             # Write codebase_map_v2.txt for the current directory\n")
		fmt.Fprintf(os.Stderr, "  codemap --scan      # Run ESLint and write logs.txt\n")
		fmt.Fprintf(os.Stderr, "  codemap -o map.txt  # Save the map under a different name\n")
		fmt.Fprintf(os.Stderr, "  codemap --json      # Output the map as JSON\n")
		fmt.Fprintf(os.Stderr, "  codemap --tui       # Browse the map interactively\n")
	}

	scanFlag := pflag.BoolP("scan", "s", false, "Run ESLint and write the debug report")
	jsonFlag := pflag.BoolP("json", "j", false, "Output the map as JSON instead of text")
	tuiFlag := pflag.BoolP("tui", "t", false, "Browse the map interactively")
	outputFlag := pflag.StringP("output", "o", "", "Write to this file instead of the default")
	verboseFlag := pflag.BoolP("verbose", "v", false, "List ignored paths while mapping")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("codemap version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	if *scanFlag {
		runScanMode(*outputFlag)
		return
	}

	if *tuiFlag {
		runTuiMode()
		return
	}

	if *jsonFlag {
		runJsonMode()
		return
	}

	// Default: write the text map
	runMapMode(*outputFlag, *verboseFlag)
}

func runMapMode(outputFile string, verbose bool) {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving working directory: %v\n", err)
		os.Exit(1)
	}
	if outputFile == "" {
		outputFile = defaultMapFile
	}

	fmt.Printf("Scanning: %s\n", cwd)
	fmt.Println("Generating extended map (v2)...")

	cm, err := mapper.New(mapper.DefaultConfig()).Build(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error mapping %s: %v\n", cwd, err)
		os.Exit(1)
	}

	if verbose {
		for _, p := range cm.Ignored {
			fmt.Printf("  (ignored) %s\n", p)
		}
	}

	blob := mapper.Render(cm)
	if err := os.WriteFile(outputFile, []byte(blob), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing map to %s: %v\n", outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("✅ Done! Map saved to '%s'\n", outputFile)
	fmt.Printf("Total tokens (est): %d\n", mapper.EstimateTokens(blob))

	for _, w := range cm.Warnings {
		fmt.Printf("⚠️ %s\n", w)
	}
}

func runJsonMode() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving working directory: %v\n", err)
		os.Exit(1)
	}

	cm, err := mapper.New(mapper.DefaultConfig()).Build(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error mapping %s: %v\n", cwd, err)
		os.Exit(1)
	}
	cm.TokenEstimate = mapper.EstimateTokens(mapper.Render(cm))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(cm)
}

func runScanMode(outputFile string) {
	scan.Run(scan.Options{LogPath: outputFile})
}

func runTuiMode() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving working directory: %v\n", err)
		os.Exit(1)
	}

	m := tui.InitialModel(cwd, mapper.DefaultConfig())
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
