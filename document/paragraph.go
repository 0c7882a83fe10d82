package document

import (
	"strings"
)

// Paragraph is an ordered sequence of block-level children addressable by a
// single linear character offset. StartIndex is assigned by the owning
// document on insertion; the end index is always recomputed from the current
// children, never cached across a mutation.
type Paragraph struct {
	StyleName  string
	StartIndex int
	Children   []Block
}

// Length returns the paragraph length in offset space, deleted text and
// inline drawing placeholders included.
func (p *Paragraph) Length() int {
	total := 0
	for i := range p.Children {
		total += p.Children[i].Length()
	}
	return total
}

// EndIndex returns the paragraph end in document offset space. Recomputed on
// every call.
func (p *Paragraph) EndIndex() int {
	return p.StartIndex + p.Length()
}

// Text returns the visible text of the paragraph: all non-deleted text with
// tabs rendered as "\t" and line breaks as "\n".
func (p *Paragraph) Text() string {
	var buf strings.Builder
	for i := range p.Children {
		buf.WriteString(p.Children[i].Text())
	}
	return buf.String()
}

// RawText returns the paragraph text in offset space: the string every
// character offset indexes into, deleted text included.
func (p *Paragraph) RawText() string {
	var buf strings.Builder
	for i := range p.Children {
		buf.WriteString(p.Children[i].RawText())
	}
	return buf.String()
}

// BookmarkPos reports a bookmark start together with its paragraph-local
// character position.
type BookmarkPos struct {
	Name     string
	Position int
}

// Bookmarks returns all bookmark starts with their character positions, in
// document order.
func (p *Paragraph) Bookmarks() []BookmarkPos {
	var result []BookmarkPos
	count := 0
	for i := range p.Children {
		if p.Children[i].Kind == BlockBookmarkStart {
			result = append(result, BookmarkPos{
				Name:     p.Children[i].Bookmark.Name,
				Position: count,
			})
		}
		count += p.Children[i].Length()
	}
	return result
}

// AppendRun adds a run at the end of the paragraph. Zero-length runs are
// structurally invalid and are silently not added.
func (p *Paragraph) AppendRun(r *Run) {
	if r == nil || r.Length() == 0 {
		return
	}
	p.Children = append(p.Children, Block{Kind: BlockRun, Run: r})
}

// AppendText adds a plain text run with the given formatting at the end of
// the paragraph.
func (p *Paragraph) AppendText(text string, props *Formatting) {
	if text == "" {
		return
	}
	p.AppendRun(NewTextRun(text, props))
}
