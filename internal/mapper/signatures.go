package mapper

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// sigRule pairs a pattern with the label printed for each capture.
// Rules are applied in table order over the whole source, so a file's
// signature list groups classes first, then functions, then exports.
type sigRule struct {
	re    *regexp.Regexp
	label string
}

var sigRules = []sigRule{
	// Class declarations.
	{regexp.MustCompile(`class\s+(\w+)`), "Class: %s"},
	// Plain and async function declarations.
	{regexp.MustCompile(`(?:async\s+)?function\s+(\w+)\s*\(`), "ƒ: %s"},
	// Arrow functions bound to a const/let/var. The lazy .*? keeps the
	// arg scan on one line, so multi-line parameter lists are not picked
	// up. That is a known blind spot, not a bug to fix here.
	{regexp.MustCompile(`(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?\(.*?\)\s*=>`), "ƒ: %s"},
	// CommonJS exports, with or without the module. prefix.
	{regexp.MustCompile(`(?:module\.)?exports\.(\w+)\s*=`), "Export: %s"},
	// TypeScript interfaces.
	{regexp.MustCompile(`interface\s+(\w+)`), "Interface: %s"},
}

// Extractor pulls top-level signature labels out of JS/TS source text.
type Extractor struct {
	maxSignatures int
}

func NewExtractor(maxSignatures int) *Extractor {
	return &Extractor{maxSignatures: maxSignatures}
}

// Extract returns the deduplicated signature labels for src, truncated
// to the configured cap. When the cap cuts the list, a final
// "...(+N more)" pseudo-label reports how many were dropped.
func (e *Extractor) Extract(src string) []string {
	var labels []string
	for _, rule := range sigRules {
		for _, m := range rule.re.FindAllStringSubmatch(src, -1) {
			labels = append(labels, fmt.Sprintf(rule.label, m[1]))
		}
	}
	if len(labels) == 0 {
		return nil
	}

	// Keep the first occurrence of each label. A name matched by two
	// rules produces two distinct labels, so both survive.
	seen := make(map[string]bool, len(labels))
	unique := labels[:0]
	for _, l := range labels {
		if seen[l] {
			continue
		}
		seen[l] = true
		unique = append(unique, l)
	}

	if e.maxSignatures > 0 && len(unique) > e.maxSignatures {
		out := make([]string, 0, e.maxSignatures+1)
		out = append(out, unique[:e.maxSignatures]...)
		out = append(out, fmt.Sprintf("...(+%d more)", len(unique)-e.maxSignatures))
		return out
	}
	return unique
}

// ExtractFile reads and scans one source file. Any read failure yields
// an empty list; a file we cannot open still appears in the map, just
// without annotations.
func (e *Extractor) ExtractFile(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	// Binary files sometimes carry code extensions; drop invalid bytes.
	return e.Extract(strings.ToValidUTF8(string(data), ""))
}
