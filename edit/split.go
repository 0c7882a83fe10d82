package edit

import (
	"dcx/document"
)

// splitBlock divides one paragraph child at a block-local offset, delegating
// node-local splitting to the node itself. Sides with zero text length come
// back nil and must be omitted from the rebuilt child list, never kept as
// empty placeholders.
func splitBlock(b *document.Block, at int) (*document.Block, *document.Block, error) {
	switch b.Kind {
	case document.BlockRun:
		left, right, err := b.Run.SplitAt(at)
		if err != nil {
			return nil, nil, err
		}
		return runBlock(left), runBlock(right), nil
	case document.BlockTrackedChange:
		left, right, err := b.Change.SplitAt(at)
		if err != nil {
			return nil, nil, err
		}
		return changeBlock(left), changeBlock(right), nil
	case document.BlockHyperlink:
		left, right, err := b.Hyperlink.SplitAt(at)
		if err != nil {
			return nil, nil, err
		}
		return linkBlock(left), linkBlock(right), nil
	case document.BlockDrawing:
		// atomic: the whole unit goes to one side, never partial
		switch at {
		case 0:
			return nil, &document.Block{Kind: b.Kind, Drawing: b.Drawing}, nil
		case b.Length():
			return &document.Block{Kind: b.Kind, Drawing: b.Drawing}, nil, nil
		default:
			return nil, nil, document.ErrInvalidSplitBoundary
		}
	default:
		// zero-length kinds cannot be split; boundary splits pass them whole
		if at != 0 {
			return nil, nil, document.ErrInvalidSplitBoundary
		}
		clone := *b
		return nil, &clone, nil
	}
}

func runBlock(r *document.Run) *document.Block {
	if r == nil {
		return nil
	}
	return &document.Block{Kind: document.BlockRun, Run: r}
}

func changeBlock(tc *document.TrackedChange) *document.Block {
	if tc == nil {
		return nil
	}
	return &document.Block{Kind: document.BlockTrackedChange, Change: tc}
}

func linkBlock(h *document.HyperlinkRef) *document.Block {
	if h == nil {
		return nil
	}
	return &document.Block{Kind: document.BlockHyperlink, Hyperlink: h}
}
