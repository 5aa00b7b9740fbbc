package mapper

import (
	"strings"
	"unicode/utf8"

	"codemap/internal/model"
)

// Four runes per token is the usual back-of-envelope for LLM context.
const tokenDivisor = 4

// RenderLines formats one line per entry, index-aligned with
// cm.Entries so callers can map a rendered line back to its entry.
func RenderLines(cm *model.CodeMap) []string {
	lines := make([]string, len(cm.Entries))
	for i, e := range cm.Entries {
		lines[i] = renderEntry(e)
	}
	return lines
}

// Render returns the map exactly as it is written to disk: LF
// separators, no trailing newline.
func Render(cm *model.CodeMap) string {
	return strings.Join(RenderLines(cm), "\n")
}

func renderEntry(e model.MapEntry) string {
	indent := strings.Repeat(" ", 4*e.Depth)
	if e.IsDir {
		if e.Depth == 0 {
			return model.IconDir + " " + model.RootLabel + "/"
		}
		return indent + model.IconDir + " " + e.Name + "/"
	}
	line := indent + model.IconFile + " " + e.Name
	if len(e.Sigs) > 0 {
		line += "  [" + strings.Join(e.Sigs, ", ") + "]"
	}
	return line
}

// EstimateTokens guesses the context cost of a rendered map. Runes,
// not bytes, so the icons do not triple-count.
func EstimateTokens(rendered string) int {
	return utf8.RuneCountInString(rendered) / tokenDivisor
}
