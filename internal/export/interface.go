package export

import (
	"fmt"

	"github.com/iksnae/deepseek-export/internal"
)

// Artifact is one rendered export output.
type Artifact struct {
	Format   string
	Filename string
	MIMEType string
	Content  []byte
}

// Renderer serializes an ordered chat set into one target format. Renderers
// are pure over their inputs and safe to run concurrently.
type Renderer interface {
	Render(chats []internal.Chat, kind string, criteria *internal.FilterCriteria, stats internal.ExportStats) (Artifact, error)
	Format() string
}

// Formats lists the supported render formats.
var Formats = []string{"json", "txt", "markdown", "doc"}

// NewRenderer creates a renderer for the given format.
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "json":
		return &JSONRenderer{}, nil
	case "txt":
		return &TextRenderer{}, nil
	case "markdown", "md":
		return &MarkdownRenderer{}, nil
	case "doc":
		return &DocRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, txt, markdown, doc)", format)
	}
}
