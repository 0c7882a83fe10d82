package edit

import (
	"fmt"

	"go.uber.org/zap"

	"dcx/document"
)

// RemoveText deletes count characters starting at a paragraph character
// offset. Each iteration locates the child covering the offset in delete
// mode, double-splits it (at the offset, then at the end of the doomed span)
// and re-splices the outer halves, discarding the middle. Wrapper and
// hyperlink children keep their grouping on both sides of the cut. processed
// strictly increases every iteration, so the loop always terminates.
//
// When the paragraph ends up with zero text length and is not the last
// paragraph of the session document, it is pruned from the document.
func (s *Session) RemoveText(p *document.Paragraph, offset, count int) error {
	if count <= 0 {
		return nil
	}
	if length := p.Length(); offset < 0 || offset >= length || offset+count > length {
		return fmt.Errorf("removing %d characters at offset %d from paragraph of length %d: %w",
			count, offset, length, ErrOffsetOutOfRange)
	}

	processed := 0
	for processed < count {
		remaining := count - processed

		ci, start, ok := findChild(p, offset)
		if !ok {
			// validated above, so the tree changed underneath us
			return fmt.Errorf("offset %d vanished after removing %d of %d characters: %w",
				offset, processed, count, document.ErrOrphanedNode)
		}

		b := p.Children[ci]
		blen := b.Length()
		local := offset - start

		if blen == 0 {
			// a zero-length affected child cannot make progress; consume the
			// remainder to guarantee termination
			s.log.Warn("Zero-length child during removal", zap.Int("child", ci), zap.Int("offset", offset))
			processed += remaining
			continue
		}

		take := remaining
		if avail := blen - local; take > avail {
			take = avail
		}

		left, doomed, err := splitBlock(&b, local)
		if err != nil {
			return fmt.Errorf("splitting child %d at local offset %d: %w", ci, local, err)
		}
		// second split of the double-split: everything left of it is the
		// doomed span and is simply dropped
		var right *document.Block
		if doomed != nil {
			_, right, err = splitBlock(doomed, take)
			if err != nil {
				return fmt.Errorf("splitting child %d remainder at %d: %w", ci, take, err)
			}
		}

		rebuilt := make([]document.Block, 0, len(p.Children)+1)
		rebuilt = append(rebuilt, p.Children[:ci]...)
		if left != nil {
			rebuilt = append(rebuilt, *left)
		}
		if right != nil {
			rebuilt = append(rebuilt, *right)
		}
		rebuilt = append(rebuilt, p.Children[ci+1:]...)
		p.Children = rebuilt

		processed += take
	}

	s.log.Debug("Removed text", zap.Int("offset", offset), zap.Int("count", count))
	s.pruneEmptyParagraph(p)
	s.afterEdit()
	return nil
}

// findChild returns the index and start offset of the child whose range
// strictly contains the given offset, stepping over zero-length children.
func findChild(p *document.Paragraph, offset int) (int, int, bool) {
	count := 0
	for ci := range p.Children {
		blen := p.Children[ci].Length()
		if count+blen > offset {
			return ci, count, true
		}
		count += blen
	}
	return 0, 0, false
}
