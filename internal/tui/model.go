package tui

import (
	"codemap/internal/mapper"
	"codemap/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Root    string
	Cfg     mapper.Config
	Map     *model.CodeMap
	Lines   []string // Rendered map lines, index-aligned with Map.Entries
	Tokens  int
	Loading bool
	Err     error

	// UI State
	SelectedIdx int
	DetailFocus bool // Tab hands the scroll keys to the detail panel
	WindowSize  tea.WindowSizeMsg

	// Search State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of Map.Entries to show
	SearchActive    bool

	// Components
	DetailViewport viewport.Model
}

// InitialModel returns the initial state. The walk itself runs in a
// background command so a big tree shows a loading line instead of a
// frozen terminal.
func InitialModel(root string, cfg mapper.Config) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Name or signature..."
	ti.CharLimit = 50
	ti.Width = 20

	return AppModel{
		Root:        root,
		Cfg:         cfg,
		Loading:     true,
		InputBuffer: ti,
		SelectedIdx: 0,
	}
}
