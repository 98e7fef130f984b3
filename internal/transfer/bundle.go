package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/muralboard/mural/internal/domain"
)

// Bundle is the board's import/export document.
type Bundle struct {
	ProjectName string
	Reminders   []*domain.Reminder
	Categories  []*domain.Category
}

// bundleDoc mirrors the wire shape. The board's original web client wrote
// Portuguese keys (nomeProjeto/lembretes/categorias); both spellings are
// accepted on import and the legacy ones are written on export so old
// backup files keep round-tripping.
type bundleDoc struct {
	ProjectName string             `json:"projectName,omitempty"`
	NomeProjeto string             `json:"nomeProjeto,omitempty"`
	Reminders   []*domain.Reminder `json:"reminders,omitempty"`
	// No omitempty: an exported empty board must keep its reminders key or
	// it would fail its own reimport.
	Lembretes []*domain.Reminder `json:"lembretes"`
	Categories  []*domain.Category `json:"categories,omitempty"`
	Categorias  []*domain.Category `json:"categorias,omitempty"`
}

// Decode parses an import document: either a bundle object or, for the
// oldest backups, a bare reminder array. Any parse failure rejects the
// whole file; a partial import never happens.
func Decode(data []byte) (*Bundle, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty import file")
	}

	if trimmed[0] == '[' {
		var reminders []*domain.Reminder
		if err := json.Unmarshal(trimmed, &reminders); err != nil {
			return nil, fmt.Errorf("invalid reminder array: %w", err)
		}
		b := &Bundle{Reminders: reminders}
		normalize(b)
		return b, nil
	}

	var doc bundleDoc
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid bundle: %w", err)
	}

	b := &Bundle{
		ProjectName: doc.ProjectName,
		Reminders:   doc.Reminders,
		Categories:  doc.Categories,
	}
	if b.ProjectName == "" {
		b.ProjectName = doc.NomeProjeto
	}
	if b.Reminders == nil {
		b.Reminders = doc.Lembretes
	}
	if b.Categories == nil {
		b.Categories = doc.Categorias
	}

	if b.Reminders == nil {
		return nil, fmt.Errorf("bundle has no reminders field")
	}

	normalize(b)
	return b, nil
}

// Encode serializes a bundle with the legacy key spelling.
func Encode(b *Bundle) ([]byte, error) {
	doc := bundleDoc{
		NomeProjeto: b.ProjectName,
		Lembretes:   b.Reminders,
		Categorias:  b.Categories,
	}
	if doc.Lembretes == nil {
		doc.Lembretes = []*domain.Reminder{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode bundle: %w", err)
	}
	return data, nil
}

// normalize applies permissive defaults: records keep their ids when
// present, get fresh ones when missing, and zero values stand in for any
// absent field. No schema versioning beyond this.
func normalize(b *Bundle) {
	now := time.Now()
	for _, r := range b.Reminders {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = r.CreatedAt
		}
		for i := range r.Checklist {
			if r.Checklist[i].ID == "" {
				r.Checklist[i].ID = uuid.NewString()
			}
		}
		for i := range r.Comments {
			if r.Comments[i].ID == "" {
				r.Comments[i].ID = uuid.NewString()
			}
		}
		for i := range r.Snippets {
			if r.Snippets[i].ID == "" {
				r.Snippets[i].ID = uuid.NewString()
			}
		}
	}
	for _, c := range b.Categories {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
	}
}
