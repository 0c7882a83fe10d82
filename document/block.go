package document

import "strings"

// BlockKind distinguishes the different kinds of paragraph children.
type BlockKind string

const (
	BlockRun           BlockKind = "run"
	BlockTrackedChange BlockKind = "trackedChange"
	BlockBookmarkStart BlockKind = "bookmarkStart"
	BlockBookmarkEnd   BlockKind = "bookmarkEnd"
	BlockField         BlockKind = "fieldPlaceholder"
	BlockHyperlink     BlockKind = "hyperlink"
	BlockDrawing       BlockKind = "drawing"
)

// Bookmark marks a named position in the paragraph. The same struct backs
// both start and end markers; only the start carries a name.
type Bookmark struct {
	ID   int
	Name string
}

// FieldPlaceholder is an opaque simple field: an instruction plus its last
// calculated display value. The core never evaluates fields.
type FieldPlaceholder struct {
	Instruction string
	Value       string
}

// HyperlinkRef groups the display runs of a hyperlink together with its
// relationship id (external targets) or anchor (internal targets).
type HyperlinkRef struct {
	RelID   string
	Anchor  string
	Tooltip string
	Runs    []*Run
}

// Length returns the display text length of the hyperlink in offset space.
func (h *HyperlinkRef) Length() int {
	total := 0
	for _, r := range h.Runs {
		total += r.Length()
	}
	return total
}

// Text returns the visible display text of the hyperlink.
func (h *HyperlinkRef) Text() string {
	var buf strings.Builder
	for _, r := range h.Runs {
		buf.WriteString(r.Text())
	}
	return buf.String()
}

// RawText returns the hyperlink display text in offset space.
func (h *HyperlinkRef) RawText() string {
	var buf strings.Builder
	for _, r := range h.Runs {
		buf.WriteString(r.RawText())
	}
	return buf.String()
}

// SplitAt divides the hyperlink at a local offset into two hyperlinks
// sharing the same target, partitioning the display runs. Absent sides are
// nil, same policy as Run.SplitAt.
func (h *HyperlinkRef) SplitAt(at int) (*HyperlinkRef, *HyperlinkRef, error) {
	total := h.Length()
	if at < 0 || at > total {
		return nil, nil, ErrInvalidSplitBoundary
	}

	left := &HyperlinkRef{RelID: h.RelID, Anchor: h.Anchor, Tooltip: h.Tooltip}
	right := &HyperlinkRef{RelID: h.RelID, Anchor: h.Anchor, Tooltip: h.Tooltip}

	count := 0
	for _, r := range h.Runs {
		rlen := r.Length()
		switch {
		case count+rlen <= at:
			left.Runs = append(left.Runs, r.cloneRun())
		case count >= at:
			right.Runs = append(right.Runs, r.cloneRun())
		default:
			lr, rr, err := r.SplitAt(at - count)
			if err != nil {
				return nil, nil, err
			}
			if lr != nil {
				left.Runs = append(left.Runs, lr)
			}
			if rr != nil {
				right.Runs = append(right.Runs, rr)
			}
		}
		count += rlen
	}

	if left.Length() == 0 {
		left = nil
	}
	if right.Length() == 0 {
		right = nil
	}
	return left, right, nil
}

// DrawingRef is an opaque reference to an embedded picture or shape. The
// core never touches the media itself. Inline drawings occupy one character
// in offset space, anchored (floating) drawings occupy none.
type DrawingRef struct {
	RelID  string
	Name   string
	Inline bool
}

// Block stores a single paragraph child, keeping the original ordering.
// Exactly one pointer field matching Kind is set.
type Block struct {
	Kind      BlockKind
	Run       *Run
	Change    *TrackedChange
	Bookmark  *Bookmark
	Field     *FieldPlaceholder
	Hyperlink *HyperlinkRef
	Drawing   *DrawingRef
}

// Length returns the block length in offset space. Bookmarks and field
// placeholders contribute nothing; inline drawings synthesize one character.
func (b *Block) Length() int {
	switch b.Kind {
	case BlockRun:
		return b.Run.Length()
	case BlockTrackedChange:
		return b.Change.Length()
	case BlockHyperlink:
		return b.Hyperlink.Length()
	case BlockDrawing:
		if b.Drawing.Inline {
			return 1
		}
		return 0
	case BlockBookmarkStart, BlockBookmarkEnd, BlockField:
		return 0
	default:
		// this should never happen
		panic("unsupported block kind")
	}
}

// Text returns the visible text of the block.
func (b *Block) Text() string {
	switch b.Kind {
	case BlockRun:
		return b.Run.Text()
	case BlockTrackedChange:
		return b.Change.Text()
	case BlockHyperlink:
		return b.Hyperlink.Text()
	case BlockBookmarkStart, BlockBookmarkEnd, BlockField, BlockDrawing:
		return ""
	default:
		// this should never happen
		panic("unsupported block kind")
	}
}

// RawText returns the block text in offset space. Inline drawings occupy a
// character in offset arithmetic but render as nothing, so they contribute an
// object-replacement placeholder to keep raw offsets and raw text aligned.
func (b *Block) RawText() string {
	switch b.Kind {
	case BlockRun:
		return b.Run.RawText()
	case BlockTrackedChange:
		return b.Change.RawText()
	case BlockHyperlink:
		return b.Hyperlink.RawText()
	case BlockDrawing:
		if b.Drawing.Inline {
			return "\uFFFC"
		}
		return ""
	case BlockBookmarkStart, BlockBookmarkEnd, BlockField:
		return ""
	default:
		// this should never happen
		panic("unsupported block kind")
	}
}
