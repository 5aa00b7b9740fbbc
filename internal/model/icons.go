package model

// Centralized icons shared by the renderer and the TUI.
// The folder/file emoji are part of the map's output format and must not
// change; the rest are single-width characters for consistent terminal
// rendering inside the TUI.
const (
	IconDir    = "📁" // Directory line marker
	IconFile   = "📄" // File line marker
	IconCursor = "▶" // Selected line in the TUI
	IconMatch  = "≈" // Search match marker
	IconWarn   = "!" // Walk warning marker
)

// RootLabel is what the scan root is called in the rendered map, regardless
// of the real directory name.
const RootLabel = "PROJECT_ROOT"
