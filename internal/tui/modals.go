package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/keymapedit/internal/keybinds"
	"github.com/studiowebux/keymapedit/internal/types"
)

// renderHelp renders the manual and key bindings
func (m *Model) renderHelp() string {
	footer := "↑/↓ j/k: scroll | g/G: top/bottom | ESC/q: close"

	// Footer is OUTSIDE viewport so it stays visible
	fullContent := styleTitle.Render("Manual") + "\n\n" + m.helpView.View() + "\n\n" + styleSubtle.Render(footer)

	helpView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(m.width-ModalWidthMarginNarrow).
		Height(m.height-ModalHeightMarginMed).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpView,
	)
}

// renderDeleteModal asks for confirmation before deleting a file
func (m *Model) renderDeleteModal() string {
	name := "(none)"
	if m.deleteTarget != nil {
		name = m.deleteTarget.DisplayName
		if m.deleteTarget.DisplayName != m.deleteTarget.Name {
			name += " (" + m.deleteTarget.Name + ")"
		}
	}

	content := strings.Join([]string{
		styleError.Render("Delete file"),
		"",
		fmt.Sprintf("Are you sure you want to delete %s?", name),
		styleWarning.Render("This cannot be undone."),
		"",
		styleSubtle.Render(fmt.Sprintf("%s: delete | %s: cancel",
			m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirm),
			m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionCancel))),
	}, "\n")

	return m.renderDialog(content, colorRed, 60)
}

// renderInputModal renders the folder and template path prompts
func (m *Model) renderInputModal() string {
	title := "Select folder"
	hint := "Folder holding the keymap JSON files"
	if m.mode == ModeTemplateInput {
		title = "Import template"
		hint = "Keymap file whose controls are appended instead of the default set"
	}

	content := strings.Join([]string{
		styleTitle.Render(title),
		"",
		styleSubtle.Render(hint),
		"",
		"> " + addCursorAt(m.inputValue, m.inputCursor),
		"",
		styleSubtle.Render("Enter: confirm | ESC: cancel | Ctrl+V: paste | Ctrl+K: clear"),
	}, "\n")

	return m.renderDialog(content, colorCyan, 80)
}

// renderPreviewModal shows what an apply would remove and append
func (m *Model) renderPreviewModal() string {
	if m.preview == nil {
		return m.renderMain()
	}

	modalWidth := m.width - ModalWidthMargin
	modalHeight := m.height - ModalHeightMarginMed

	out := m.preview
	template := out.Template
	if template == "" {
		template = "built-in defaults"
	}
	header := strings.Join([]string{
		styleTitle.Render("Preview of " + out.File.DisplayName),
		fmt.Sprintf("Template: %s | kept %d, removed %d, appended %d",
			template, out.Stats.Retained, out.Stats.Removed, out.Stats.Appended),
	}, "\n")

	// The removed list can be long; it scrolls in the shared viewport
	m.modalView.Width = int(float64(modalWidth-SplitPaneBorderWidth)*SplitViewEqual) - 2
	m.modalView.Height = modalHeight - ModalOverheadLines - 2
	if m.modalView.Height < 1 {
		m.modalView.Height = 1
	}
	savedOffset := m.modalView.YOffset
	m.modalView.SetContent(labelList(out.Removed, "Nothing in the corner region"))
	m.modalView.SetYOffset(savedOffset)

	cfg := SplitPaneConfig{
		ModalWidth:       modalWidth,
		ModalHeight:      modalHeight,
		LeftTitle:        fmt.Sprintf("Removed (%d)", len(out.Removed)),
		LeftContent:      m.modalView.View(),
		LeftBorderColor:  colorRed,
		RightTitle:       fmt.Sprintf("Appended (%d)", len(out.Appended)),
		RightContent:     labelList(out.Appended, "Template is empty"),
		RightBorderColor: colorGreen,
		Header:           header,
		Footer:           "Nothing was written | j/k: scroll | ESC/q: close",
		LeftWidthRatio:   SplitViewEqual,
	}

	return renderSplitPaneModal(cfg, m.width, m.height)
}

// labelList renders entry labels one per line
func labelList(labels []string, empty string) string {
	if len(labels) == 0 {
		return styleSubtle.Render(empty)
	}
	lines := make([]string, len(labels))
	for i, label := range labels {
		if label == "" {
			label = "(unnamed)"
		}
		lines[i] = "- " + label
	}
	return strings.Join(lines, "\n")
}

// renderActivityModal lists the most recent journal entries
func (m *Model) renderActivityModal() string {
	var b strings.Builder
	if len(m.activity) == 0 {
		b.WriteString(styleSubtle.Render("No activity recorded yet"))
	}
	for i, entry := range m.activity {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatActivity(entry))
	}

	width := m.width - ModalWidthMargin
	height := m.height - ModalHeightMarginSmall

	return m.renderModalWithFooter(
		fmt.Sprintf("Activity (%d)", len(m.activity)),
		b.String(),
		"j/k: scroll | g/G: top/bottom | ESC/q: close",
		width, height,
	)
}

// formatActivity renders one journal entry on a single line
func formatActivity(entry types.ActivityEntry) string {
	when := styleSubtle.Render(entry.Timestamp.Local().Format("01-02 15:04:05"))

	var subject string
	switch entry.Operation {
	case types.OperationSelectFolder:
		subject = entry.Folder
	case types.OperationImportTemplate:
		subject = fmt.Sprintf("%s (%d entries)", entry.Template, entry.Appended)
	case types.OperationApply:
		template := entry.Template
		if template == "" {
			template = "defaults"
		}
		subject = fmt.Sprintf("%s with %s: kept %d, removed %d, appended %d",
			entry.File, template, entry.Retained, entry.Removed, entry.Appended)
	default:
		subject = entry.File
	}

	line := fmt.Sprintf("%s %-15s %s", when, entry.Operation, subject)
	if !entry.Succeeded() {
		line += " " + styleError.Render("failed: "+entry.Error)
	}
	return line
}

// renderErrorDetailModal shows the full text of the last error
func (m *Model) renderErrorDetailModal() string {
	width := m.width - ModalWidthMargin
	height := m.height - ModalOverheadMinimal
	if width < 50 {
		width = 50
	}
	if height < 10 {
		height = 10
	}

	contentWidth := width - ViewportPaddingHorizontal
	content := styleError.Render(wrapText(m.fullErrorMsg, contentWidth))

	return m.renderModalWithFooter("Error Details", content, "j/k: scroll | Enter/ESC: close", width, height)
}
