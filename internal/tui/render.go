package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/keymapedit/internal/cli"
	"github.com/studiowebux/keymapedit/internal/keybinds"
	"github.com/studiowebux/keymapedit/internal/keymap"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGreen)

	styleTitleUnfocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGray)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// sidebarWidth returns the file list width; renderMain and updateViewport
// must agree on it
func (m *Model) sidebarWidth() int {
	width := max(40, m.width*40/100)
	if m.width < 100 {
		width = m.width / 2
	}
	return width
}

// renderMain renders the main TUI view (file sidebar + details panel)
func (m *Model) renderMain() string {
	if m.width == 0 {
		return ""
	}

	sidebarWidth := m.sidebarWidth()
	detailsWidth := m.width - sidebarWidth - 4 // Account for borders

	sidebar := m.renderSidebar(sidebarWidth-2, m.height-3) // -3 = -1 (status) -2 (borders)
	details := m.renderDetails(detailsWidth-2, m.height-3)

	sidebarBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGreen).
		Width(sidebarWidth).
		Height(m.height - 1). // Leave 1 line for status bar
		Render(sidebar)

	detailsBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(detailsWidth).
		Height(m.height - 1).
		Render(details)

	mainView := lipgloss.JoinHorizontal(
		lipgloss.Top,
		sidebarBox,
		detailsBox,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		mainView,
		m.renderStatusBar(),
	)
}

// renderSidebar renders the file list sidebar
func (m *Model) renderSidebar(width, height int) string {
	var lines []string

	lines = append(lines, styleTitle.Render("Keymaps"))
	lines = append(lines, "")

	files := m.explorer.GetFiles()
	current := m.explorer.GetCurrentIndex()
	offset := m.explorer.GetScrollOffset()

	pageSize := height - 4 // Reserve space for title, blank lines, footer, and padding
	if pageSize < 1 {
		pageSize = 1
	}

	endIdx := offset + pageSize
	if endIdx > len(files) {
		endIdx = len(files)
	}

	for i := offset; i < endIdx; i++ {
		hexNum := fmt.Sprintf("%x", i)

		maxNameLen := width - len(hexNum) - 4
		if maxNameLen < 10 {
			maxNameLen = 10
		}
		name := truncateRunes(files[i].DisplayName, maxNameLen)

		line := fmt.Sprintf("%s %s", hexNum, name)

		// Selected gets highlighted, search matches get yellow
		if i == current {
			line = styleSelected.Render(line)
		} else if m.explorer.IsSearchMatch(i) {
			line = styleWarning.Render(line)
		}

		lines = append(lines, line)
	}

	lines = append(lines, "")
	switch {
	case len(files) > 0:
		lines = append(lines, styleSubtle.Render(fmt.Sprintf("[%d/%d]", current+1, len(files))))
	case m.editor.Session().Folder() == "":
		lines = append(lines, styleSubtle.Render("No folder selected, press f"))
	default:
		lines = append(lines, styleSubtle.Render("No keymap files found"))
	}

	content := strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height - 5).
		Padding(1).
		Render(content)
}

// renderDetails shows the session and the selected file
func (m *Model) renderDetails(width, height int) string {
	sess := m.editor.Session()

	folder := sess.Folder()
	if folder == "" {
		folder = styleSubtle.Render("(none)")
	}

	entries := len(keymap.DefaultSet())
	if tmpl := sess.Template(); tmpl != nil {
		entries = len(tmpl.Entries)
	}

	lines := []string{
		styleTitle.Render("Session"),
		fmt.Sprintf("Folder:   %s", folder),
		fmt.Sprintf("Template: %s (%d entries)", sess.TemplateName(), entries),
		"",
	}

	if file := m.explorer.GetCurrentFile(); file != nil {
		lines = append(lines,
			styleTitle.Render("Selected"),
			fmt.Sprintf("Name:     %s", file.DisplayName),
			fmt.Sprintf("File:     %s", file.Name),
			fmt.Sprintf("Size:     %d bytes", file.Size),
			fmt.Sprintf("Modified: %s", file.ModifiedTime.Local().Format("2006-01-02 15:04")),
			"",
		)
	}

	apply := m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionApply)
	preview := m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionPreview)
	lines = append(lines, styleSubtle.Render(fmt.Sprintf("%s: insert macros and save | %s: preview", apply, preview)))

	if m.busy {
		lines = append(lines, "", styleWarning.Render("Working..."))
	}

	return lipgloss.NewStyle().
		MaxWidth(width).
		Height(height).
		Padding(1).
		AlignHorizontal(lipgloss.Left).
		Render(strings.Join(lines, "\n"))
}

// addCursor adds a visible cursor (█) to a text string
func addCursor(text string) string {
	return text + "█"
}

// addCursorAt draws the cursor at a rune position
func addCursorAt(text string, pos int) string {
	runes := []rune(text)
	if pos < 0 || pos > len(runes) {
		pos = len(runes)
	}
	return string(runes[:pos]) + "█" + string(runes[pos:])
}

// renderStatusBar renders the status bar at the bottom
func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf("Template: %s", m.editor.Session().TemplateName())
	if m.mode == ModeNormal && m.keybinds.Pending(keybinds.ContextNormal) {
		left += styleSubtle.Render("  g-")
	}

	right := ""
	query, currentMatch, totalMatches := m.explorer.GetSearchInfo()

	switch m.mode {
	case ModeSearch:
		right = fmt.Sprintf("Search: %s", addCursor(m.searchInput))
	default:
		if totalMatches > 0 {
			right = styleWarning.Render(fmt.Sprintf("%q: %d of %d | ", query, currentMatch, totalMatches))
		}

		if m.errorMsg != "" {
			right += styleError.Render(m.errorMsg + " (enter for details)")
		} else if m.statusMsg != "" {
			if strings.HasPrefix(m.statusMsg, "Saved") || strings.Contains(m.statusMsg, "copied") ||
				strings.HasSuffix(m.statusMsg, "deleted") || strings.HasPrefix(m.statusMsg, "Template") {
				right += styleSuccess.Render(m.statusMsg)
			} else {
				right += m.statusMsg
			}
		} else if totalMatches == 0 {
			right += styleSubtle.Render("Press / to search | ? for help | q to quit")
		}
	}

	// Center spacing
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// getFileListHeight calculates the height available for the file list
func (m *Model) getFileListHeight() int {
	height := m.height - FileListHeightOffset
	if height < 1 {
		return 1
	}
	return height
}

// updateViewport resizes the modal viewports to the window
func (m *Model) updateViewport() {
	modalWidth := m.width - ModalWidthMargin
	modalHeight := m.height - ModalHeightMarginMed
	if modalWidth < 20 {
		modalWidth = 20
	}
	if modalHeight < 5 {
		modalHeight = 5
	}

	m.modalView.Width = modalWidth - ViewportPaddingHorizontal
	m.modalView.Height = modalHeight - ModalOverheadLines

	m.helpView.Width = m.width - 4
	m.helpView.Height = m.height - ContentOffsetHelp

	m.explorer.AdjustScrollOffset(m.getFileListHeight())
}

// helpActions orders the key help; the labels follow the manual's wording
var helpActions = []struct {
	action keybinds.Action
	label  string
}{
	{keybinds.ActionApply, "Insert macros and save"},
	{keybinds.ActionPreview, "Preview without saving"},
	{keybinds.ActionDeleteFile, "Delete file (with confirmation)"},
	{keybinds.ActionSelectFolder, "Select folder"},
	{keybinds.ActionImportTemplate, "Import template"},
	{keybinds.ActionClearTemplate, "Use the built-in default set"},
	{keybinds.ActionCopyPath, "Copy folder path"},
	{keybinds.ActionRefreshFiles, "Refresh file list"},
	{keybinds.ActionOpenSearch, "Search files"},
	{keybinds.ActionSearchNext, "Next search match"},
	{keybinds.ActionSearchPrev, "Previous search match"},
	{keybinds.ActionOpenLog, "Activity log"},
	{keybinds.ActionNavigateUp, "Move up"},
	{keybinds.ActionNavigateDown, "Move down"},
	{keybinds.ActionGoToTop, "First file"},
	{keybinds.ActionGoToBottom, "Last file"},
	{keybinds.ActionOpenHelp, "This help"},
	{keybinds.ActionQuit, "Quit"},
}

// updateHelpView fills the help viewport with the manual and the active
// key bindings
func (m *Model) updateHelpView() {
	var b strings.Builder
	b.WriteString(cli.ManualText)
	b.WriteString("\nKey bindings\n")
	for _, h := range helpActions {
		keys := m.keybinds.GetBindingString(keybinds.ContextNormal, h.action)
		fmt.Fprintf(&b, "  %-18s %s\n", keys, h.label)
	}
	b.WriteString("\nIn popups: esc or q closes, j/k scrolls. In the delete prompt: y confirms, n cancels.\n")

	m.helpView.SetContent(wrapText(b.String(), m.helpView.Width))
}

// wrapText word-wraps text to width, keeping existing line breaks
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// truncateRunes shortens s to maxLen runes with an ellipsis
func truncateRunes(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
