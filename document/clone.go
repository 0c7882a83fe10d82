package document

// Clone and deep copy functions for paragraph trees. Splitting and replace
// matching work on copies so that no two nodes ever share mutable state.

// Clone creates a deep copy of the paragraph.
func (p *Paragraph) Clone() *Paragraph {
	if p == nil {
		return nil
	}
	clone := &Paragraph{
		StyleName:  p.StyleName,
		StartIndex: p.StartIndex,
		Children:   make([]Block, len(p.Children)),
	}
	for i := range p.Children {
		clone.Children[i] = cloneBlock(&p.Children[i])
	}
	return clone
}

func cloneBlock(b *Block) Block {
	clone := Block{Kind: b.Kind}
	switch b.Kind {
	case BlockRun:
		clone.Run = b.Run.cloneRun()
	case BlockTrackedChange:
		clone.Change = cloneTrackedChange(b.Change)
	case BlockBookmarkStart, BlockBookmarkEnd:
		bm := *b.Bookmark
		clone.Bookmark = &bm
	case BlockField:
		f := *b.Field
		clone.Field = &f
	case BlockHyperlink:
		clone.Hyperlink = cloneHyperlink(b.Hyperlink)
	case BlockDrawing:
		d := *b.Drawing
		clone.Drawing = &d
	default:
		// this should never happen
		panic("unsupported block kind")
	}
	return clone
}

func cloneTrackedChange(tc *TrackedChange) *TrackedChange {
	if tc == nil {
		return nil
	}
	clone := &TrackedChange{
		Kind:   tc.Kind,
		ID:     tc.ID,
		Author: tc.Author,
		Date:   tc.Date,
		Runs:   make([]*Run, len(tc.Runs)),
	}
	for i := range tc.Runs {
		clone.Runs[i] = tc.Runs[i].cloneRun()
	}
	return clone
}

func cloneHyperlink(h *HyperlinkRef) *HyperlinkRef {
	if h == nil {
		return nil
	}
	clone := &HyperlinkRef{
		RelID:   h.RelID,
		Anchor:  h.Anchor,
		Tooltip: h.Tooltip,
		Runs:    make([]*Run, len(h.Runs)),
	}
	for i := range h.Runs {
		clone.Runs[i] = h.Runs[i].cloneRun()
	}
	return clone
}

// cloneFormattingPtr deep-copies an optional formatting block. New runs
// produced by splits must never share formatting with the original.
func cloneFormattingPtr(f *Formatting) *Formatting {
	if f == nil {
		return nil
	}
	clone := &Formatting{}
	clone.Merge(f)
	return clone
}
