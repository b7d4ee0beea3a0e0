package cli

import (
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// highlightJSON writes source with terminal colors
func highlightJSON(w io.Writer, source string) error {
	return quick.Highlight(w, source, "json", highlightFormatter, highlightStyle)
}
