package document

import (
	"dcx/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the document. It exists solely for
// manual inspection during debugging.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "Document id=%q paragraphs=%d", d.ID, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		tw.paragraph(1, p, i)
	}
	return tw.String()
}

// String returns a readable tree of the paragraph.
func (p *Paragraph) String() string {
	if p == nil {
		return "<nil Paragraph>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.paragraph(0, p, 0)
	return tw.String()
}

func (tw treeWriter) paragraph(depth int, p *Paragraph, idx int) {
	tw.Line(depth, "Paragraph[%d] style=%q start=%d len=%d", idx, p.StyleName, p.StartIndex, p.Length())
	for i := range p.Children {
		tw.block(depth+1, &p.Children[i], i)
	}
}

func (tw treeWriter) block(depth int, b *Block, idx int) {
	switch b.Kind {
	case BlockRun:
		tw.run(depth, b.Run, idx)
	case BlockTrackedChange:
		tc := b.Change
		tw.Line(depth, "TrackedChange[%d] kind=%s id=%d author=%q runs=%d", idx, tc.Kind, tc.ID, tc.Author, len(tc.Runs))
		for i, r := range tc.Runs {
			tw.run(depth+1, r, i)
		}
	case BlockBookmarkStart:
		tw.Line(depth, "BookmarkStart[%d] id=%d name=%q", idx, b.Bookmark.ID, b.Bookmark.Name)
	case BlockBookmarkEnd:
		tw.Line(depth, "BookmarkEnd[%d] id=%d", idx, b.Bookmark.ID)
	case BlockField:
		tw.Line(depth, "Field[%d] instruction=%q", idx, b.Field.Instruction)
		if b.Field.Value != "" {
			tw.TextBlock(depth+1, "Value", b.Field.Value)
		}
	case BlockHyperlink:
		h := b.Hyperlink
		tw.Line(depth, "Hyperlink[%d] relID=%q anchor=%q runs=%d", idx, h.RelID, h.Anchor, len(h.Runs))
		for i, r := range h.Runs {
			tw.run(depth+1, r, i)
		}
	case BlockDrawing:
		tw.Line(depth, "Drawing[%d] relID=%q name=%q inline=%t", idx, b.Drawing.RelID, b.Drawing.Name, b.Drawing.Inline)
	default:
		tw.Line(depth, "Unknown[%d] kind=%q", idx, b.Kind)
	}
}

func (tw treeWriter) run(depth int, r *Run, idx int) {
	tw.Line(depth, "Run[%d] fragments=%d len=%d formatted=%t", idx, len(r.Fragments), r.Length(), !emptyFormatting(r.Properties))
	for i := range r.Fragments {
		f := &r.Fragments[i]
		switch f.Kind {
		case FragmentText, FragmentDeletedText:
			tw.TextBlock(depth+1, string(f.Kind), f.Value)
		default:
			tw.Line(depth+1, "%s", f.Kind)
		}
	}
}
