package document

import (
	"strings"
)

// Run is an ordered sequence of fragments sharing one formatting block.
// Offsets are not stored - a run's position is resolved against the paragraph
// it is walked from.
type Run struct {
	Properties *Formatting
	Fragments  []Fragment
}

// NewTextRun creates a single-fragment plain text run.
func NewTextRun(text string, props *Formatting) *Run {
	return &Run{
		Properties: cloneFormattingPtr(props),
		Fragments:  []Fragment{NewTextFragment(text)},
	}
}

// Length returns the run length in offset space, deleted text included.
func (r *Run) Length() int {
	total := 0
	for i := range r.Fragments {
		total += r.Fragments[i].Length()
	}
	return total
}

// Text returns the visible text of the run, skipping deleted text.
func (r *Run) Text() string {
	var buf strings.Builder
	for i := range r.Fragments {
		buf.WriteString(r.Fragments[i].Text())
	}
	return buf.String()
}

// RawText returns the run text in offset space, deleted text included.
func (r *Run) RawText() string {
	var buf strings.Builder
	for i := range r.Fragments {
		buf.WriteString(r.Fragments[i].RawText())
	}
	return buf.String()
}

// SplitAt divides the run at a run-local offset into a left and a right part,
// each carrying its own copy of the formatting block. A side with zero text
// length is reported as nil, never as an empty run - callers must treat
// absence as "nothing to splice here". Tab and line-break fragments are
// atomic: they land whole on one side, which integer offsets guarantee.
//
// Returns ErrInvalidSplitBoundary when at is outside [0, Length()].
func (r *Run) SplitAt(at int) (*Run, *Run, error) {
	total := r.Length()
	if at < 0 || at > total {
		return nil, nil, ErrInvalidSplitBoundary
	}
	if at == 0 {
		return nil, r.cloneRun(), nil
	}
	if at == total {
		return r.cloneRun(), nil, nil
	}

	left := &Run{Properties: cloneFormattingPtr(r.Properties)}
	right := &Run{Properties: cloneFormattingPtr(r.Properties)}

	count := 0
	for i := range r.Fragments {
		f := &r.Fragments[i]
		flen := f.Length()
		switch {
		case count+flen <= at:
			left.Fragments = append(left.Fragments, cloneFragment(f))
		case count >= at:
			right.Fragments = append(right.Fragments, cloneFragment(f))
		default:
			// split point is inside this fragment
			lf, rf, err := splitFragment(f, at-count)
			if err != nil {
				return nil, nil, err
			}
			left.Fragments = append(left.Fragments, lf)
			right.Fragments = append(right.Fragments, rf)
		}
		count += flen
	}

	if left.Length() == 0 {
		left = nil
	}
	if right.Length() == 0 {
		right = nil
	}
	return left, right, nil
}

// splitFragment partitions one fragment at a fragment-local character
// boundary strictly inside it. Only text-bearing fragments can be split;
// atomic fragments cannot contain an internal boundary.
func splitFragment(f *Fragment, at int) (Fragment, Fragment, error) {
	switch f.Kind {
	case FragmentText, FragmentDeletedText:
		runes := []rune(f.Value)
		if at <= 0 || at >= len(runes) {
			return Fragment{}, Fragment{}, ErrInvalidSplitBoundary
		}
		lf := Fragment{Kind: f.Kind, Value: string(runes[:at])}
		rf := Fragment{Kind: f.Kind, Value: string(runes[at:])}
		lf.RefreshPreserveSpace()
		rf.RefreshPreserveSpace()
		return lf, rf, nil
	default:
		return Fragment{}, Fragment{}, ErrInvalidSplitBoundary
	}
}

func (r *Run) cloneRun() *Run {
	clone := &Run{
		Properties: cloneFormattingPtr(r.Properties),
		Fragments:  make([]Fragment, len(r.Fragments)),
	}
	copy(clone.Fragments, r.Fragments)
	return clone
}

func cloneFragment(f *Fragment) Fragment {
	return *f
}
