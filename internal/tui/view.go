package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codemap/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Walking the project tree... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.Err)
	}

	// Layout dimensions
	// Subtracting 6 for horizontal margin (borders x2 + buffer)
	// Subtracting 8 for vertical margin (title, footer, borders + buffer)
	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2
	if interiorHeight < 2 {
		interiorHeight = 2
	}

	// LEFT PANEL: the map itself
	var leftView strings.Builder
	leftView.WriteString(titleStyle.Render("Codebase Map"))
	leftView.WriteString("\n\n")

	// Windowing Logic for Left Panel
	// Header is 2 lines (Title + 1 blank line)
	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	endIdx := len(m.FilteredIndices)

	if len(m.FilteredIndices) > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - visibleItems/2
		}
		if startIdx < 0 {
			startIdx = 0
		}
		if startIdx+visibleItems > len(m.FilteredIndices) {
			startIdx = len(m.FilteredIndices) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	for i := startIdx; i < endIdx; i++ {
		idx := m.FilteredIndices[i]

		prefix := "  "
		if i == m.SelectedIdx {
			prefix = model.IconCursor + " "
		}
		line := prefix + m.Lines[idx]

		// Truncate on runes; the icons are multi-byte and a byte slice
		// could cut one in half.
		if runes := []rune(line); len(runes) > leftWidth-2 {
			line = string(runes[:leftWidth-5]) + "..."
		}

		style := normalStyle
		if i == m.SelectedIdx {
			style = selectedStyle
		}
		leftView.WriteString(style.Render(line))
		leftView.WriteString("\n")
	}

	lBorderColor := borderColor
	if !m.DetailFocus {
		lBorderColor = activeColor
	}
	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lBorderColor).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	// RIGHT PANEL: details for the selection
	var rightView strings.Builder
	rightView.WriteString(titleStyle.Render("Details"))
	rightView.WriteString("\n")
	rightView.WriteString(m.DetailViewport.View())

	rBorderColor := borderColor
	if m.DetailFocus {
		rBorderColor = activeColor
	}
	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(rBorderColor).
		Render(rightView.String())

	// Footer: stats line, then help or the live search input.
	status := fmt.Sprintf("%d dirs • %d files • ~%d tokens", m.Map.Dirs(), m.Map.Files(), m.Tokens)
	if m.SearchActive {
		status += fmt.Sprintf(" • %s %d matches", model.IconMatch, len(m.FilteredIndices))
	}
	if len(m.Map.Warnings) > 0 {
		status += fmt.Sprintf(" • %s %d warnings", model.IconWarn, len(m.Map.Warnings))
	}

	help := "Help: ↑/↓: Navigate • Tab: Switch Panel • /: Search • Esc: Clear • q: Quit"
	footer := "\n" + dimStyle.Render(status) + "\n" + help
	if m.InputMode {
		footer = fmt.Sprintf("\n%s\nSearch: %s", dimStyle.Render(status), m.InputBuffer.View())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + footer
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, BuildMapCmd(m.Root, m.Cfg))
}
