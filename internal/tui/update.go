package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"codemap/internal/mapper"
	"codemap/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// How much of a selected file the detail panel loads.
const previewLines = 40

// MsgMapReady indicates the walk finished and carries the result.
type MsgMapReady struct {
	Map   *model.CodeMap
	Lines []string
}

// MsgError indicates the walk failed outright.
type MsgError error

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		// Mirror the layout math in View so the viewport fills the
		// right panel interior exactly.
		netWidth := msg.Width - 6
		if netWidth < 20 {
			netWidth = 20
		}
		interiorHeight := msg.Height - 8
		if interiorHeight < 2 {
			interiorHeight = 2
		}
		m.DetailViewport.Width = netWidth - netWidth/2
		m.DetailViewport.Height = interiorHeight - 1
		m.refreshDetail()
		return m, nil

	case MsgMapReady:
		m.Loading = false
		m.Map = msg.Map
		m.Lines = msg.Lines
		m.Tokens = mapper.EstimateTokens(strings.Join(msg.Lines, "\n"))
		// Start unfiltered: every entry visible.
		m.FilteredIndices = make([]int, len(m.Map.Entries))
		for i := range m.Map.Entries {
			m.FilteredIndices[i] = i
		}
		m.SelectedIdx = 0
		m.refreshDetail()
		return m, nil

	case MsgError:
		m.Err = msg
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.performSearch()
				m.refreshDetail()
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.SearchActive = false
				m.InputBuffer.SetValue("")
				m.performSearch()
				m.refreshDetail()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		if m.Loading || m.Map == nil {
			// Nothing else to drive until the walk finishes.
			return m, nil
		}

		switch msg.String() {
		case "esc":
			if m.SearchActive {
				m.SearchActive = false
				m.InputBuffer.SetValue("")
				m.performSearch()
				m.refreshDetail()
			}
		case "tab":
			m.DetailFocus = !m.DetailFocus
		case "up", "k":
			if m.DetailFocus {
				m.DetailViewport, cmd = m.DetailViewport.Update(msg)
				return m, cmd
			}
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.refreshDetail()
			}
		case "down", "j":
			if m.DetailFocus {
				m.DetailViewport, cmd = m.DetailViewport.Update(msg)
				return m, cmd
			}
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
				m.refreshDetail()
			}
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			// Always scrolls the detail panel; the left list moves one
			// row at a time.
			m.DetailViewport, cmd = m.DetailViewport.Update(msg)
			return m, cmd
		case "g":
			if m.DetailFocus {
				m.DetailViewport.GotoTop()
			} else {
				m.SelectedIdx = 0
				m.refreshDetail()
			}
		case "G":
			if m.DetailFocus {
				m.DetailViewport.GotoBottom()
			} else if n := len(m.FilteredIndices); n > 0 {
				m.SelectedIdx = n - 1
				m.refreshDetail()
			}
		case "/":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		}
	}

	return m, cmd
}

// performSearch filters the list to entries whose rendered line
// contains the query. Matching the rendered line means one search hits
// file names, directory names and signature labels alike.
func (m *AppModel) performSearch() {
	if m.Map == nil {
		return
	}
	term := strings.ToLower(m.InputBuffer.Value())
	if term == "" {
		m.SearchActive = false
		m.FilteredIndices = make([]int, len(m.Map.Entries))
		for i := range m.Map.Entries {
			m.FilteredIndices[i] = i
		}
	} else {
		m.SearchActive = true
		var result []int
		for i, line := range m.Lines {
			if strings.Contains(strings.ToLower(line), term) {
				result = append(result, i)
			}
		}
		m.FilteredIndices = result
	}

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		if len(m.FilteredIndices) > 0 {
			m.SelectedIdx = len(m.FilteredIndices) - 1
		} else {
			m.SelectedIdx = 0
		}
	}
}

// refreshDetail rebuilds the right panel for the current selection and
// rewinds its scroll position.
func (m *AppModel) refreshDetail() {
	if m.Map == nil {
		return
	}
	m.DetailViewport.SetContent(m.detailContent())
	m.DetailViewport.GotoTop()
}

func (m AppModel) detailContent() string {
	if len(m.FilteredIndices) == 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return "\nNo entries match."
	}
	idx := m.FilteredIndices[m.SelectedIdx]
	entry := m.Map.Entries[idx]

	display := entry.Path
	if display == "" {
		display = model.RootLabel
	}

	var b strings.Builder
	if entry.IsDir {
		b.WriteString(fmt.Sprintf("\nDirectory:  %s/", display))
		files, dirs := m.childCounts(idx)
		b.WriteString(fmt.Sprintf("\nContains:   %d files, %d directories", files, dirs))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("\nFile:       %s", display))
	if len(entry.Sigs) > 0 {
		b.WriteString(fmt.Sprintf("\n\n--- Signatures (%d) ---", len(entry.Sigs)))
		for _, s := range entry.Sigs {
			b.WriteString("\n  " + s)
		}
	}

	preview := model.GetFilePreview(filepath.Join(m.Map.Root, filepath.FromSlash(entry.Path)), previewLines)
	if preview.ErrorMsg != "" {
		b.WriteString("\n\n(preview unavailable: " + preview.ErrorMsg + ")")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("\n\n--- Preview (%d lines total) ---", preview.Total))
	lnWidth := len(fmt.Sprintf("%d", len(preview.Lines)))
	if lnWidth < 2 {
		lnWidth = 2
	}
	for i, line := range preview.Lines {
		b.WriteString(fmt.Sprintf("\n %*d | %s", lnWidth, i+1, line))
	}
	if preview.Truncated {
		b.WriteString(fmt.Sprintf("\n ... %d more lines", preview.Total-len(preview.Lines)))
	}
	return b.String()
}

// childCounts tallies the direct children of the directory entry at
// idx. The walk keeps a subtree contiguous, so scanning forward until
// the depth drops back out is enough.
func (m AppModel) childCounts(idx int) (files, dirs int) {
	parent := m.Map.Entries[idx]
	for _, e := range m.Map.Entries[idx+1:] {
		if e.Depth <= parent.Depth {
			break
		}
		if e.Depth != parent.Depth+1 {
			continue
		}
		if e.IsDir {
			dirs++
		} else {
			files++
		}
	}
	return files, dirs
}

// BuildMapCmd walks the tree in the background and delivers the result
// as a message.
func BuildMapCmd(root string, cfg mapper.Config) tea.Cmd {
	return func() tea.Msg {
		cm, err := mapper.New(cfg).Build(root)
		if err != nil {
			return MsgError(err)
		}
		return MsgMapReady{Map: cm, Lines: mapper.RenderLines(cm)}
	}
}
