package edit

import (
	"fmt"

	"dcx/document"
)

// Mode selects the boundary tie-break rule for offset resolution.
type Mode string

const (
	// ModeInsert resolves a boundary offset to the fragment that begins
	// there - insertions occur logically before the located point. The
	// paragraph length itself is a valid insert offset (append point).
	ModeInsert Mode = "insert"

	// ModeDelete resolves only to a fragment whose range strictly contains
	// the offset.
	ModeDelete Mode = "delete"
)

// Location identifies a fragment found by offset resolution, together with
// the explicit ancestor path needed to re-attach split results. Path holds
// child indexes from the paragraph down: one element for a top-level run,
// two for a run inside a tracked-change wrapper or hyperlink. No parent
// pointers are ever stored on the tree itself.
//
// For an atomic non-text unit (an inline drawing) Run is nil and Path still
// identifies the paragraph child.
type Location struct {
	Path          []int
	Run           *document.Run
	RunStart      int // paragraph offset where the run begins
	Fragment      int // fragment index within the run
	FragmentStart int // paragraph offset where the fragment begins
}

// LocateFragment resolves a character offset to the fragment containing it,
// walking children depth-first left-to-right and descending only into the
// first child whose cumulative length exceeds idx. Zero-length children
// (bookmarks, fields, anchored drawings, emptied runs) are stepped over.
//
// In insert mode, idx == paragraph length is the append point and resolves
// to (nil, nil). Everything else out of range fails with
// ErrOffsetOutOfRange.
func LocateFragment(p *document.Paragraph, idx int, mode Mode) (*Location, error) {
	length := p.Length()
	if idx < 0 {
		return nil, fmt.Errorf("locating offset %d in mode %s: %w", idx, mode, ErrOffsetOutOfRange)
	}
	switch mode {
	case ModeInsert:
		if idx > length {
			return nil, fmt.Errorf("locating offset %d in paragraph of length %d: %w", idx, length, ErrOffsetOutOfRange)
		}
	case ModeDelete:
		if idx >= length {
			return nil, fmt.Errorf("locating offset %d in paragraph of length %d: %w", idx, length, ErrOffsetOutOfRange)
		}
	default:
		// this should never happen
		panic("unsupported edit mode")
	}

	count := 0
	for ci := range p.Children {
		b := &p.Children[ci]
		blen := b.Length()
		if count+blen <= idx {
			count += blen
			continue
		}
		switch b.Kind {
		case document.BlockRun:
			return locateInRun(b.Run, []int{ci}, count, idx)
		case document.BlockTrackedChange:
			return locateInRuns(b.Change.Runs, ci, count, idx)
		case document.BlockHyperlink:
			return locateInRuns(b.Hyperlink.Runs, ci, count, idx)
		case document.BlockDrawing:
			// atomic unit, nothing to descend into
			return &Location{Path: []int{ci}, RunStart: count, FragmentStart: count}, nil
		default:
			// zero-length kinds were stepped over above
			return nil, fmt.Errorf("offset %d resolved into non-addressable %s child: %w", idx, b.Kind, document.ErrOrphanedNode)
		}
	}

	// only reachable for the insert append point (idx == length)
	return nil, nil
}

func locateInRuns(runs []*document.Run, ci, start, idx int) (*Location, error) {
	count := start
	for ri, r := range runs {
		rlen := r.Length()
		if count+rlen <= idx {
			count += rlen
			continue
		}
		return locateInRun(r, []int{ci, ri}, count, idx)
	}
	// the caller established that idx falls inside this child
	return nil, fmt.Errorf("offset %d lost inside wrapper: %w", idx, document.ErrOrphanedNode)
}

func locateInRun(r *document.Run, path []int, runStart, idx int) (*Location, error) {
	count := runStart
	for fi := range r.Fragments {
		flen := r.Fragments[fi].Length()
		if count+flen <= idx {
			count += flen
			continue
		}
		return &Location{
			Path:          path,
			Run:           r,
			RunStart:      runStart,
			Fragment:      fi,
			FragmentStart: count,
		}, nil
	}
	return nil, fmt.Errorf("offset %d lost inside run: %w", idx, document.ErrOrphanedNode)
}

// childStart returns the paragraph offset where child ci begins.
func childStart(p *document.Paragraph, ci int) int {
	count := 0
	for i := 0; i < ci; i++ {
		count += p.Children[i].Length()
	}
	return count
}
