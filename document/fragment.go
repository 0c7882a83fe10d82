package document

import (
	"strings"
	"unicode/utf8"
)

// FragmentKind distinguishes the atomic content units a run can hold.
type FragmentKind string

const (
	FragmentText        FragmentKind = "text"
	FragmentDeletedText FragmentKind = "deletedText"
	FragmentTab         FragmentKind = "tab"
	FragmentLineBreak   FragmentKind = "lineBreak"
)

// Fragment is an atomic span of run content. Value is empty for tab and
// line-break fragments, which contribute a single character each. Offsets are
// never stored on the fragment - they are recomputed from ancestor sums on
// every walk.
type Fragment struct {
	Kind  FragmentKind
	Value string

	// PreserveSpace marks fragments whose value starts or ends with a
	// literal space so serialization keeps that whitespace. Recomputed
	// after every split.
	PreserveSpace bool
}

// NewTextFragment creates a plain text fragment with the preserve-space flag
// already computed.
func NewTextFragment(value string) Fragment {
	f := Fragment{Kind: FragmentText, Value: value}
	f.RefreshPreserveSpace()
	return f
}

// NewDeletedTextFragment creates a deleted-text fragment with the
// preserve-space flag already computed.
func NewDeletedTextFragment(value string) Fragment {
	f := Fragment{Kind: FragmentDeletedText, Value: value}
	f.RefreshPreserveSpace()
	return f
}

// Length returns the number of characters the fragment occupies in offset
// arithmetic. Deleted text counts the same as plain text; tabs and line
// breaks count as one character each. Characters are Unicode code points.
func (f *Fragment) Length() int {
	switch f.Kind {
	case FragmentText, FragmentDeletedText:
		return utf8.RuneCountInString(f.Value)
	case FragmentTab, FragmentLineBreak:
		return 1
	default:
		// this should never happen
		panic("unsupported fragment kind")
	}
}

// Text returns the visible text of the fragment: tabs render as "\t", line
// breaks as "\n", deleted text renders as nothing.
func (f *Fragment) Text() string {
	switch f.Kind {
	case FragmentText:
		return f.Value
	case FragmentDeletedText:
		return ""
	case FragmentTab:
		return "\t"
	case FragmentLineBreak:
		return "\n"
	default:
		// this should never happen
		panic("unsupported fragment kind")
	}
}

// RawText returns the fragment text in offset space, where deleted text still
// occupies its characters. This is the string all offset arithmetic runs
// against.
func (f *Fragment) RawText() string {
	if f.Kind == FragmentDeletedText {
		return f.Value
	}
	return f.Text()
}

// RefreshPreserveSpace recomputes the preserve-space flag from the current
// value. Tab and line-break fragments never need it.
func (f *Fragment) RefreshPreserveSpace() {
	switch f.Kind {
	case FragmentText, FragmentDeletedText:
		f.PreserveSpace = strings.HasPrefix(f.Value, " ") || strings.HasSuffix(f.Value, " ")
	default:
		f.PreserveSpace = false
	}
}
