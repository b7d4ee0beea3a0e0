package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin       = 6  // Standard horizontal margin (m.width - 6)
	ModalWidthMarginNarrow = 10 // Narrow horizontal margin for focused modals (m.width - 10)
	ModalHeightMarginSmall = 2  // Small vertical margin (m.height - 2)
	ModalHeightMarginMed   = 4  // Medium vertical margin (m.height - 4)

	// Viewport Padding and Borders
	ViewportPaddingHorizontal = 4 // Horizontal padding (left + right)

	// Content Area Offsets
	ContentOffsetHelp    = 10 // m.height - 10 for help viewer
	FileListHeightOffset = 7  // m.height - 7 for the file sidebar

	// Modal Content Calculations
	ModalOverheadLines   = 6 // Title (2) + padding (2) + border (2)
	ModalOverheadMinimal = 4 // Border + title for minimal modals

	// Split View Ratios
	SplitViewEqual = 0.5 // Equal 50/50 split for split-pane modals

	// Split Pane Layout
	SplitPaneBorderWidth = 3 // Border width between split panes

	// Messages longer than this are cut in the footer; the full text stays
	// available in the detail modal
	FooterMessageMax = 100

	// Folder events closer together than this trigger a single re-list
	WatchDebounceMillis = 150

	// Rows shown in the activity log modal
	ActivityLogLimit = 100
)
