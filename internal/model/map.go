package model

// MapEntry represents a single directory or file line in the codebase map.
type MapEntry struct {
	Path  string   `json:"path"`  // Relative to the scan root, slash-separated ("" for the root itself)
	Name  string   `json:"name"`  // Base name of the entry
	Depth int      `json:"depth"` // Nesting level; the root is 0, its files are 1
	IsDir bool     `json:"is_dir"`
	Sigs  []string `json:"signatures,omitempty"` // Extracted labels, only set for code files
}

// CodeMap contains the walked tree and everything needed to render or
// serialize it. Entries are in final output order (directory, its files,
// then each subdirectory block).
type CodeMap struct {
	Root          string     `json:"root"`
	Entries       []MapEntry `json:"entries"`
	TokenEstimate int        `json:"token_estimate"`
	Warnings      []string   `json:"warnings,omitempty"`
	Ignored       []string   `json:"-"` // Pruned paths, kept for verbose output only
}

// Dirs returns the number of directory entries, including the root.
func (m *CodeMap) Dirs() int {
	n := 0
	for _, e := range m.Entries {
		if e.IsDir {
			n++
		}
	}
	return n
}

// Files returns the number of file entries.
func (m *CodeMap) Files() int {
	return len(m.Entries) - m.Dirs()
}
