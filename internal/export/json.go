package export

import (
	"encoding/json"
	"time"

	"github.com/iksnae/deepseek-export/internal"
)

// structureNote documents the extraction path for consumers of the artifact.
const structureNote = "Messages extracted from DeepSeek structure: history-message -> data -> chat_messages -> fragments -> content"

// JSONRenderer produces the structured-data artifact. The chats are embedded
// verbatim so the artifact round-trips back to an equivalent chat sequence.
type JSONRenderer struct{}

type jsonMetadata struct {
	ExportDate string                   `json:"exportDate"`
	Type       string                   `json:"type"`
	Filters    *internal.FilterCriteria `json:"filters"`
	Stats      internal.ExportStats     `json:"stats"`
	Note       string                   `json:"note"`
}

// JSONDocument is the top-level shape of the JSON artifact.
type JSONDocument struct {
	Metadata jsonMetadata    `json:"metadata"`
	Chats    []internal.Chat `json:"chats"`
}

func (r *JSONRenderer) Render(chats []internal.Chat, kind string, criteria *internal.FilterCriteria, stats internal.ExportStats) (Artifact, error) {
	doc := JSONDocument{
		Metadata: jsonMetadata{
			ExportDate: time.Now().Format(time.RFC3339),
			Type:       kind,
			Filters:    criteria,
			Stats:      stats,
			Note:       structureNote,
		},
		Chats: chats,
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Format:   r.Format(),
		Filename: Filename(kind, "json", criteria),
		MIMEType: "application/json",
		Content:  content,
	}, nil
}

func (r *JSONRenderer) Format() string {
	return "json"
}
