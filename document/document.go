package document

import (
	"strings"

	"github.com/google/uuid"
)

// Document is an ordered list of paragraphs sharing one linear offset space.
// It owns its paragraphs exclusively; a paragraph removed from the document
// becomes unreachable.
type Document struct {
	ID         string
	Paragraphs []*Paragraph
}

// New creates an empty document with a fresh identity.
func New() *Document {
	id, err := uuid.NewV7()
	if err != nil {
		// v7 generation only fails when the entropy source is broken
		id = uuid.New()
	}
	return &Document{ID: id.String()}
}

// AppendParagraph adds a paragraph at the end of the document and assigns its
// start index.
func (d *Document) AppendParagraph(p *Paragraph) {
	d.Paragraphs = append(d.Paragraphs, p)
	d.RefreshIndexes()
}

// RemoveParagraph detaches the paragraph at the given position. Out of range
// positions are ignored.
func (d *Document) RemoveParagraph(at int) {
	if at < 0 || at >= len(d.Paragraphs) {
		return
	}
	d.Paragraphs = append(d.Paragraphs[:at], d.Paragraphs[at+1:]...)
	d.RefreshIndexes()
}

// RefreshIndexes reassigns paragraph start indexes by chaining end indexes.
// Called after every structural mutation - start indexes are only trusted
// immediately after a refresh.
func (d *Document) RefreshIndexes() {
	count := 0
	for _, p := range d.Paragraphs {
		p.StartIndex = count
		count = p.EndIndex()
	}
}

// Text returns the visible text of the whole document, paragraphs separated
// by newlines.
func (d *Document) Text() string {
	var buf strings.Builder
	for i, p := range d.Paragraphs {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(p.Text())
	}
	return buf.String()
}

// Bookmarks returns bookmark starts from all paragraphs with document-wide
// character positions.
func (d *Document) Bookmarks() []BookmarkPos {
	d.RefreshIndexes()
	var result []BookmarkPos
	for _, p := range d.Paragraphs {
		for _, b := range p.Bookmarks() {
			result = append(result, BookmarkPos{Name: b.Name, Position: p.StartIndex + b.Position})
		}
	}
	return result
}
