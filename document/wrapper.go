package document

import (
	"strings"
	"time"
)

// TrackedChangeKind distinguishes insertion and deletion wrappers.
type TrackedChangeKind string

const (
	TrackedInsertion TrackedChangeKind = "insertion"
	TrackedDeletion  TrackedChangeKind = "deletion"
)

// TrackedChange groups one or more runs marked as inserted or deleted
// content. Wrappers are flat - a wrapper never nests another wrapper - and
// participate in offset counting as if their runs were inline in the
// paragraph. IDs are document-wide and reassigned by the edit session after
// every structural edit.
type TrackedChange struct {
	Kind   TrackedChangeKind
	ID     int
	Author string
	Date   time.Time
	Runs   []*Run
}

// Length returns the wrapper length in offset space, deleted text included.
func (tc *TrackedChange) Length() int {
	total := 0
	for _, r := range tc.Runs {
		total += r.Length()
	}
	return total
}

// Text returns the visible text of the wrapper. Deletion wrappers hold
// deleted-text fragments which render as nothing, so their visible text is
// naturally empty.
func (tc *TrackedChange) Text() string {
	var buf strings.Builder
	for _, r := range tc.Runs {
		buf.WriteString(r.Text())
	}
	return buf.String()
}

// RawText returns the wrapper text in offset space.
func (tc *TrackedChange) RawText() string {
	var buf strings.Builder
	for _, r := range tc.Runs {
		buf.WriteString(r.RawText())
	}
	return buf.String()
}

// SplitAt divides the wrapper at a wrapper-local offset into two wrappers
// sharing kind, author and date, partitioning the contained runs. A side
// with zero text length is reported as nil, same policy as Run.SplitAt.
func (tc *TrackedChange) SplitAt(at int) (*TrackedChange, *TrackedChange, error) {
	total := tc.Length()
	if at < 0 || at > total {
		return nil, nil, ErrInvalidSplitBoundary
	}

	left := &TrackedChange{Kind: tc.Kind, ID: tc.ID, Author: tc.Author, Date: tc.Date}
	right := &TrackedChange{Kind: tc.Kind, ID: tc.ID, Author: tc.Author, Date: tc.Date}

	count := 0
	for _, r := range tc.Runs {
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
