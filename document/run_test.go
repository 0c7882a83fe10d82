package document

import (
	"errors"
	"testing"
)

func TestFragmentText(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		f := NewTextFragment("Hello")
		if f.Length() != 5 {
			t.Fatalf("length: expected 5, got %d", f.Length())
		}
		if f.Text() != "Hello" || f.RawText() != "Hello" {
			t.Fatalf("text mismatch: %q / %q", f.Text(), f.RawText())
		}
	})

	t.Run("deleted text is raw only", func(t *testing.T) {
		f := NewDeletedTextFragment("gone")
		if f.Length() != 4 {
			t.Fatalf("length: expected 4, got %d", f.Length())
		}
		if f.Text() != "" {
			t.Fatalf("deleted text should not be visible, got %q", f.Text())
		}
		if f.RawText() != "gone" {
			t.Fatalf("raw text: expected %q, got %q", "gone", f.RawText())
		}
	})

	t.Run("tab and break are single characters", func(t *testing.T) {
		tab := Fragment{Kind: FragmentTab}
		br := Fragment{Kind: FragmentLineBreak}
		if tab.Length() != 1 || br.Length() != 1 {
			t.Fatalf("tab/break lengths: %d/%d", tab.Length(), br.Length())
		}
		if tab.Text() != "\t" || br.Text() != "\n" {
			t.Fatalf("tab/break text: %q/%q", tab.Text(), br.Text())
		}
	})

	t.Run("multibyte text counts characters", func(t *testing.T) {
		f := NewTextFragment("か字х")
		if f.Length() != 3 {
			t.Fatalf("length: expected 3, got %d", f.Length())
		}
	})

	t.Run("preserve space follows edge whitespace", func(t *testing.T) {
		f := NewTextFragment("padded ")
		if !f.PreserveSpace {
			t.Fatalf("trailing space should set preserve-space")
		}
		f.Value = "trimmed"
		f.RefreshPreserveSpace()
		if f.PreserveSpace {
			t.Fatalf("no edge whitespace, preserve-space should drop")
		}
	})
}

func TestRunSplitAt(t *testing.T) {
	newRun := func() *Run {
		return &Run{Fragments: []Fragment{
			NewTextFragment("Hello"),
			{Kind: FragmentTab},
			NewTextFragment("World"),
		}}
	}

	t.Run("split inside a fragment", func(t *testing.T) {
		left, right, err := newRun().SplitAt(8)
		if err != nil {
			t.Fatalf("SplitAt: %v", err)
		}
		if left == nil || right == nil {
			t.Fatalf("both sides expected")
		}
		if left.Text() != "Hello\tWo" {
			t.Fatalf("left: %q", left.Text())
		}
		if right.Text() != "rld" {
			t.Fatalf("right: %q", right.Text())
		}
	})

	t.Run("split on a fragment boundary", func(t *testing.T) {
		left, right, err := newRun().SplitAt(5)
		if err != nil {
			t.Fatalf("SplitAt: %v", err)
		}
		if left.Text() != "Hello" || right.Text() != "\tWorld" {
			t.Fatalf("boundary split: %q / %q", left.Text(), right.Text())
		}
		if len(left.Fragments) != 1 || len(right.Fragments) != 2 {
			t.Fatalf("fragment counts: %d / %d", len(left.Fragments), len(right.Fragments))
		}
	})

	t.Run("empty sides are nil", func(t *testing.T) {
		r := newRun()
		left, right, err := r.SplitAt(0)
		if err != nil {
			t.Fatalf("SplitAt(0): %v", err)
		}
		if left != nil || right == nil || right.Text() != r.Text() {
			t.Fatalf("split at start: left=%v right=%v", left, right)
		}
		left, right, err = r.SplitAt(r.Length())
		if err != nil {
			t.Fatalf("SplitAt(end): %v", err)
		}
		if right != nil || left == nil || left.Text() != r.Text() {
			t.Fatalf("split at end: left=%v right=%v", left, right)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		if _, _, err := newRun().SplitAt(12); !errors.Is(err, ErrInvalidSplitBoundary) {
			t.Fatalf("expected ErrInvalidSplitBoundary, got %v", err)
		}
		if _, _, err := newRun().SplitAt(-1); !errors.Is(err, ErrInvalidSplitBoundary) {
			t.Fatalf("expected ErrInvalidSplitBoundary, got %v", err)
		}
	})

	t.Run("formatting carried to both sides", func(t *testing.T) {
		props := &Formatting{}
		props.SetSize(11)
		r := NewTextRun("abcd", props)
		left, right, err := r.SplitAt(2)
		if err != nil {
			t.Fatalf("SplitAt: %v", err)
		}
		if !left.Properties.Equals(props) || !right.Properties.Equals(props) {
			t.Fatalf("split sides lost formatting")
		}
		left.Properties.SetSize(20)
		if right.Properties.Equals(left.Properties) {
			t.Fatalf("split sides share formatting storage")
		}
	})
}

func TestTrackedChangeSplitAt(t *testing.T) {
	tc := &TrackedChange{
		Kind:   TrackedInsertion,
		Author: "reviewer",
		Runs: []*Run{
			NewTextRun("one ", nil),
			NewTextRun("two", nil),
		},
	}

	t.Run("splits straddling run", func(t *testing.T) {
		left, right, err := tc.SplitAt(6)
		if err != nil {
			t.Fatalf("SplitAt: %v", err)
		}
		if left.Text() != "one tw" || right.Text() != "o" {
			t.Fatalf("split: %q / %q", left.Text(), right.Text())
		}
		if left.Kind != TrackedInsertion || right.Kind != TrackedInsertion {
			t.Fatalf("kind lost on split")
		}
		if left.Author != "reviewer" || right.Author != "reviewer" {
			t.Fatalf("author lost on split")
		}
	})

	t.Run("deleted content keeps offsets", func(t *testing.T) {
		del := &TrackedChange{
			Kind: TrackedDeletion,
			Runs: []*Run{{Fragments: []Fragment{NewDeletedTextFragment("dropped")}}},
		}
		if del.Length() != 7 {
			t.Fatalf("deletion length: expected 7, got %d", del.Length())
		}
		if del.Text() != "" {
			t.Fatalf("deletion visible text should be empty, got %q", del.Text())
		}
		if del.RawText() != "dropped" {
			t.Fatalf("deletion raw text: %q", del.RawText())
		}
	})
}
