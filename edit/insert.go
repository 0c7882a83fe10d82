package edit

import (
	"fmt"

	"go.uber.org/zap"

	"dcx/document"
)

// InsertText inserts text at a paragraph character offset. The text is first
// segmented on raw tab and newline characters into a list of new runs - each
// plain segment becomes one run with the given formatting, each tab or
// newline its own single-fragment run. When the offset lands outside any
// existing run (empty paragraph, or offset equals the paragraph length) the
// new runs are appended; otherwise the covering child is split at the offset
// and the new runs are spliced between the halves, omitting absent halves.
func (s *Session) InsertText(p *document.Paragraph, offset int, text string, props *document.Formatting) error {
	if text == "" {
		return nil
	}

	loc, err := LocateFragment(p, offset, ModeInsert)
	if err != nil {
		return fmt.Errorf("inserting %d characters at offset %d: %w", len([]rune(text)), offset, err)
	}

	blocks := segmentText(text, props)

	if loc == nil {
		p.Children = append(p.Children, blocks...)
		s.log.Debug("Appended runs", zap.Int("runs", len(blocks)), zap.Int("offset", offset))
		s.afterEdit()
		return nil
	}

	ci := loc.Path[0]
	local := offset - childStart(p, ci)
	left, right, err := splitBlock(&p.Children[ci], local)
	if err != nil {
		return fmt.Errorf("splitting child %d at local offset %d: %w", ci, local, err)
	}

	rebuilt := make([]document.Block, 0, len(p.Children)+len(blocks)+1)
	rebuilt = append(rebuilt, p.Children[:ci]...)
	if left != nil {
		rebuilt = append(rebuilt, *left)
	}
	rebuilt = append(rebuilt, blocks...)
	if right != nil {
		rebuilt = append(rebuilt, *right)
	}
	rebuilt = append(rebuilt, p.Children[ci+1:]...)
	p.Children = rebuilt

	s.log.Debug("Inserted runs", zap.Int("runs", len(blocks)), zap.Int("offset", offset), zap.Int("child", ci))
	s.afterEdit()
	return nil
}

// segmentText splits raw text on tabs and newlines into run blocks. "\r\n"
// and a bare "\r" both become a single line break.
func segmentText(text string, props *document.Formatting) []document.Block {
	var blocks []document.Block
	flush := func(segment []rune) {
		if len(segment) == 0 {
			return
		}
		blocks = append(blocks, document.Block{Kind: document.BlockRun, Run: document.NewTextRun(string(segment), props)})
	}

	special := func(kind document.FragmentKind) document.Block {
		return document.Block{Kind: document.BlockRun, Run: &document.Run{
			Properties: cloneFormatting(props),
			Fragments:  []document.Fragment{{Kind: kind}},
		}}
	}

	var segment []rune
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\t':
			flush(segment)
			segment = segment[:0]
			blocks = append(blocks, special(document.FragmentTab))
		case '\n':
			flush(segment)
			segment = segment[:0]
			blocks = append(blocks, special(document.FragmentLineBreak))
		case '\r':
			flush(segment)
			segment = segment[:0]
			blocks = append(blocks, special(document.FragmentLineBreak))
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
		default:
			segment = append(segment, runes[i])
		}
	}
	flush(segment)
	return blocks
}

func cloneFormatting(f *document.Formatting) *document.Formatting {
	if f == nil {
		return nil
	}
	clone := &document.Formatting{}
	clone.Merge(f)
	return clone
}
