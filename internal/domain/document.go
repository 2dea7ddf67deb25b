package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Document is the content of a question, answer or comment. Clients send it
// either as a plain string or as a structured rich-text JSON document, so it
// is modeled as an explicit sum of the two shapes instead of interface{}.
type Document struct {
	text       string
	structured json.RawMessage
}

// PlainText builds a plain-string document.
func PlainText(s string) Document {
	return Document{text: s}
}

// StructuredDocument builds a document from rich-text JSON.
func StructuredDocument(raw json.RawMessage) Document {
	return Document{structured: raw}
}

// IsStructured reports whether the document carries rich-text JSON.
func (d Document) IsStructured() bool {
	return d.structured != nil
}

// IsZero reports whether the document has no content at all.
func (d Document) IsZero() bool {
	return d.structured == nil && strings.TrimSpace(d.text) == ""
}

// Text returns the plain form; empty for structured documents.
func (d Document) Text() string {
	return d.text
}

// Serialized returns the JSON-serialized form of the document. This is the
// string the mention scanner runs over, matching the original behavior of
// scanning the stringified content.
func (d Document) Serialized() string {
	b, err := d.MarshalJSON()
	if err != nil {
		return d.text
	}
	return string(b)
}

func (d Document) MarshalJSON() ([]byte, error) {
	if d.structured != nil {
		return d.structured, nil
	}
	return json.Marshal(d.text)
}

func (d *Document) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	switch {
	case trimmed == "" || trimmed == "null":
		*d = Document{}
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Document{text: s}
	default:
		if !json.Valid(b) {
			return fmt.Errorf("document: invalid JSON content")
		}
		raw := make(json.RawMessage, len(trimmed))
		copy(raw, trimmed)
		*d = Document{structured: raw}
	}
	return nil
}

// Value stores structured documents as their JSON text and plain documents
// as the bare string.
func (d Document) Value() (driver.Value, error) {
	if d.structured != nil {
		return string(d.structured), nil
	}
	return d.text, nil
}

// Scan restores a document from its stored text. A leading '{' or '[' marks
// a structured document; everything else is plain text. The column does not
// record which form was written, so plain text whose whole body is valid
// JSON re-reads as structured.
func (d *Document) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*d = Document{}
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("document: cannot scan %T", src)
	}

	trimmed := strings.TrimSpace(s)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid([]byte(trimmed)) {
		*d = StructuredDocument(json.RawMessage(trimmed))
		return nil
	}
	*d = PlainText(s)
	return nil
}
