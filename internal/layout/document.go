package layout

import (
	"encoding/json"
	"errors"
	"fmt"

	"seatlab/internal/scene"
)

var ErrInvalidDocument = errors.New("invalid layout document")

// DocumentType is the discriminator carried by every saved layout.
const DocumentType = "canvas"

// Document is the portable JSON representation of a scene plus its side
// tables.
type Document struct {
	Type       string         `json:"type"`
	Rows       []Row          `json:"rows"`
	Categories []Category     `json:"categories"`
	Canvas     scene.Snapshot `json:"canvas"`
}

// BuildDocument assembles a document from the live scene and side tables.
func BuildDocument(s *scene.Scene, rows []Row, categories []Category) Document {
	return Document{
		Type:       DocumentType,
		Rows:       rows,
		Categories: categories,
		Canvas:     s.TakeSnapshot(),
	}
}

// EncodeDocument renders the document as UTF-8 JSON.
func EncodeDocument(doc Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode layout document: %w", err)
	}
	return data, nil
}

// DecodeDocument parses a layout document. Two shapes are accepted: the full
// envelope with rows/categories, and a legacy bare scene snapshot (object
// list only). Anything else is ErrInvalidDocument; the caller's scene is not
// touched here, so a failed decode can never destroy live state.
func DecodeDocument(data []byte) (Document, error) {
	var probe struct {
		Type       string          `json:"type"`
		Rows       []Row           `json:"rows"`
		Categories []Category      `json:"categories"`
		Canvas     json.RawMessage `json:"canvas"`
		Objects    json.RawMessage `json:"objects"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if probe.Canvas != nil {
		var snap scene.Snapshot
		if err := json.Unmarshal(probe.Canvas, &snap); err != nil {
			return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return Document{
			Type:       DocumentType,
			Rows:       probe.Rows,
			Categories: probe.Categories,
			Canvas:     snap,
		}, nil
	}

	// Legacy shape: the document is a bare snapshot without the
	// rows/categories envelope.
	if probe.Objects != nil {
		snap, err := scene.DecodeSnapshot(data)
		if err != nil {
			return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return Document{Type: DocumentType, Canvas: snap}, nil
	}

	return Document{}, fmt.Errorf("%w: neither a layout envelope nor a scene snapshot", ErrInvalidDocument)
}

// CategoryIndex builds an id lookup for the document's categories.
func CategoryIndex(categories []Category) map[string]Category {
	idx := make(map[string]Category, len(categories))
	for _, c := range categories {
		idx[c.ID] = c
	}
	return idx
}
