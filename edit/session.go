package edit

import (
	"go.uber.org/zap"

	"dcx/document"
)

// Session threads the mutable editing state - the tracked-change id counter
// and the logger - through all edit operations, instead of a process-wide
// singleton. One session owns one document; the model assumes exclusive
// access by a single logical editing session, callers needing concurrency
// must serialize externally.
//
// A session may be created without a document to edit standalone paragraphs;
// document-wide side effects (id renumbering, empty-paragraph pruning) are
// then skipped.
type Session struct {
	doc    *document.Document
	log    *zap.Logger
	author string

	nextChangeID int
}

// NewSession creates an editing session. log must not be nil.
func NewSession(doc *document.Document, log *zap.Logger) *Session {
	return &Session{
		doc:          doc,
		log:          log,
		nextChangeID: 1,
	}
}

// SetAuthor sets the author recorded on tracked changes created by this
// session.
func (s *Session) SetAuthor(author string) {
	s.author = author
}

// RenumberTrackedChanges reassigns document-wide tracked-change and bookmark
// ids, monotonic and collision-free. Invoked after every structural edit.
// A bookmark start and its end must keep one shared id, so ends are mapped
// to the new id of the start they were paired with, across paragraphs.
func (s *Session) RenumberTrackedChanges() {
	if s.doc == nil {
		return
	}
	renumbered := 0
	startIDs := make(map[int]int)
	var ends []*document.Bookmark
	for _, p := range s.doc.Paragraphs {
		for i := range p.Children {
			switch p.Children[i].Kind {
			case document.BlockTrackedChange:
				p.Children[i].Change.ID = s.nextChangeID
				s.nextChangeID++
				renumbered++
			case document.BlockBookmarkStart:
				startIDs[p.Children[i].Bookmark.ID] = s.nextChangeID
				p.Children[i].Bookmark.ID = s.nextChangeID
				s.nextChangeID++
			case document.BlockBookmarkEnd:
				// starts may still be pending, remap ends last
				ends = append(ends, p.Children[i].Bookmark)
			}
		}
	}
	for _, b := range ends {
		if id, ok := startIDs[b.ID]; ok {
			b.ID = id
			continue
		}
		// end marker without a matching start
		b.ID = s.nextChangeID
		s.nextChangeID++
	}
	if renumbered > 0 {
		s.log.Debug("Renumbered tracked changes", zap.Int("count", renumbered), zap.Int("next_id", s.nextChangeID))
	}
}

// afterEdit performs the document-wide bookkeeping every structural edit
// triggers.
func (s *Session) afterEdit() {
	if s.doc == nil {
		return
	}
	s.doc.RefreshIndexes()
	s.RenumberTrackedChanges()
}

// pruneEmptyParagraph detaches p from the session document when all its text
// is gone. The last paragraph of a document is never pruned - a container
// keeps at least one paragraph the same way a table cell keeps its sole
// paragraph.
func (s *Session) pruneEmptyParagraph(p *document.Paragraph) {
	if s.doc == nil || p.Length() > 0 || len(s.doc.Paragraphs) <= 1 {
		return
	}
	for i, candidate := range s.doc.Paragraphs {
		if candidate == p {
			s.log.Debug("Pruning emptied paragraph", zap.Int("index", i))
			s.doc.RemoveParagraph(i)
			return
		}
	}
}
