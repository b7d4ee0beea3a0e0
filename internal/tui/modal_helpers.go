package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// SplitPaneConfig defines the configuration for a split-pane modal
type SplitPaneConfig struct {
	// Modal dimensions
	ModalWidth  int
	ModalHeight int

	// Left pane
	LeftTitle       string
	LeftContent     string
	LeftBorderColor lipgloss.AdaptiveColor

	// Right pane
	RightTitle       string
	RightContent     string
	RightBorderColor lipgloss.AdaptiveColor

	// Header is shown above both panes, Footer below them
	Header string
	Footer string

	// Left pane gets this share of the width (0.0 to 1.0, default 0.5)
	LeftWidthRatio float64
}

// renderSplitPaneModal renders two bordered panes side by side, centered
func renderSplitPaneModal(cfg SplitPaneConfig, totalWidth, totalHeight int) string {
	paneHeight := cfg.ModalHeight - 4 // Account for borders and padding
	if cfg.Header != "" {
		paneHeight -= lipgloss.Height(cfg.Header) + 1
	}
	if paneHeight < 3 {
		paneHeight = 3
	}

	ratio := cfg.LeftWidthRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = SplitViewEqual
	}

	leftWidth := int(float64(cfg.ModalWidth-SplitPaneBorderWidth) * ratio)
	rightWidth := cfg.ModalWidth - leftWidth - SplitPaneBorderWidth

	pane := func(title, content string, color lipgloss.AdaptiveColor, width int) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Width(width).
			Height(paneHeight).
			MaxHeight(paneHeight+2). // Content taller than the pane is cut, borders kept
			Padding(0, 1).
			Render(styleTitleFocused.Render(title) + "\n" + content)
	}

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		pane(cfg.LeftTitle, cfg.LeftContent, cfg.LeftBorderColor, leftWidth),
		pane(cfg.RightTitle, cfg.RightContent, cfg.RightBorderColor, rightWidth),
	)

	parts := []string{}
	if cfg.Header != "" {
		parts = append(parts, cfg.Header+"\n")
	}
	parts = append(parts, panes, "\n"+styleSubtle.Render(cfg.Footer))

	return lipgloss.Place(
		totalWidth,
		totalHeight,
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
}

// renderModalWithFooter renders a modal with the shared scrollable
// viewport and a fixed footer
func (m *Model) renderModalWithFooter(title, content, footer string, width, height int) string {
	// For small terminals, use almost full screen
	maxWidth := m.width - ViewportPaddingHorizontal
	maxHeight := m.height - ModalHeightMarginSmall
	if width > maxWidth {
		width = maxWidth
	}
	if height > maxHeight {
		height = maxHeight
	}

	// Ensure minimum reasonable size (but allow small for tiny terminals)
	if width < 30 && m.width >= 30 {
		width = 30
	}
	if height < 8 && m.height >= 8 {
		height = 8
	}

	// Title (2 lines), padding (2) and border (2); footer adds a blank line
	footerLines := 0
	if footer != "" {
		footerLines = 2
	}
	contentHeight := height - ModalOverheadLines - footerLines
	if contentHeight < 1 {
		contentHeight = height - ModalOverheadMinimal - footerLines
		if contentHeight < 1 {
			contentHeight = 1
		}
	}

	m.modalView.Width = width - ViewportPaddingHorizontal
	if m.modalView.Width < 10 {
		m.modalView.Width = 10
	}
	m.modalView.Height = contentHeight

	// SetContent resets nothing but the lines; keep the user's scroll
	savedOffset := m.modalView.YOffset
	m.modalView.SetContent(content)
	m.modalView.SetYOffset(savedOffset)

	fullContent := styleTitle.Render(title) + "\n\n" + m.modalView.View()
	if footer != "" {
		fullContent += "\n\n" + styleSubtle.Render(footer)
	}

	modalBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(fullContent)

	// Modal is full screen or nearly full screen
	if width >= m.width-2 || height >= m.height-1 {
		return modalBox
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalBox,
	)
}

// renderDialog renders a small fixed-size box without a viewport
func (m *Model) renderDialog(content string, color lipgloss.AdaptiveColor, width int) string {
	if width > m.width-ModalWidthMargin {
		width = m.width - ModalWidthMargin
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(width).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}
