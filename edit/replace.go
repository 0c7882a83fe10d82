package edit

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"dcx/document"
)

// FormattingMatch selects how strictly a candidate run's formatting must
// agree with the match template.
type FormattingMatch string

const (
	// MatchSubset requires every property present on the template to be
	// present and equal on the candidate.
	MatchSubset FormattingMatch = "subset"

	// MatchExact requires the candidate to carry exactly the template's
	// property set, nothing more.
	MatchExact FormattingMatch = "exact"
)

// ReplaceOptions tunes find and replace behaviour. The zero value replaces
// literal occurrences unconditionally.
type ReplaceOptions struct {
	// Regex treats the search string as a regular expression.
	Regex bool

	// UseSubstitutions enables substitution references in the replacement:
	// $& for the whole match, $1..$9 for capture groups (regex searches
	// only), $` and $' for the text before and after the match, $$ for a
	// literal dollar sign.
	UseSubstitutions bool

	// MatchFormatting gates replacement on the formatting of the runs the
	// match spans. nil means no constraint. The template is read-only for
	// the whole operation.
	MatchFormatting *document.Formatting
	Match           FormattingMatch

	// NewFormatting is applied to the replacement runs. nil inserts
	// unformatted runs.
	NewFormatting *document.Formatting
}

// textMatch is one occurrence found in the paragraph's pre-edit text, in
// character offsets.
type textMatch struct {
	start, end int
	groups     []string
}

// ReplaceText finds all occurrences of search in the paragraph and replaces
// each with replacement, subject to the formatting gate. Matches are
// enumerated against the pre-edit text and processed in reverse offset
// order, so an applied replacement never shifts the offsets of matches still
// to be processed. This ordering is load-bearing: match positions are not
// re-derived between edits.
//
// Returns the number of replacements applied.
func (s *Session) ReplaceText(p *document.Paragraph, search, replacement string, opts *ReplaceOptions) (int, error) {
	if opts == nil {
		opts = &ReplaceOptions{}
	}
	if search == "" {
		return 0, nil
	}

	raw := p.RawText()
	rawRunes := []rune(raw)

	matches, err := findMatches(raw, search, opts.Regex)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, nil
	}

	replaced := 0
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]

		if !s.formattingAllows(p, m, opts) {
			s.log.Debug("Match rejected by formatting gate", zap.Int("start", m.start), zap.Int("end", m.end))
			continue
		}

		text := replacement
		if opts.UseSubstitutions {
			text = expandSubstitutions(replacement, rawRunes, m)
		}

		// insert first at the match end, then remove the original span;
		// the insertion sits after the span so the span's offsets hold
		if err := s.InsertText(p, m.end, text, opts.NewFormatting); err != nil {
			return replaced, fmt.Errorf("inserting replacement at offset %d: %w", m.end, err)
		}
		if err := s.RemoveText(p, m.start, m.end-m.start); err != nil {
			return replaced, fmt.Errorf("removing matched span [%d,%d): %w", m.start, m.end, err)
		}
		replaced++
	}

	if replaced > 0 {
		s.log.Debug("Replaced text", zap.String("search", search), zap.Int("count", replaced))
	}
	return replaced, nil
}

// findMatches enumerates non-overlapping occurrences left to right, in
// character offsets.
func findMatches(raw, search string, isRegex bool) ([]textMatch, error) {
	var matches []textMatch

	if isRegex {
		re, err := regexp.Compile(search)
		if err != nil {
			return nil, fmt.Errorf("compiling search pattern: %w", err)
		}
		for _, idx := range re.FindAllStringSubmatchIndex(raw, -1) {
			m := textMatch{
				start: runeOffset(raw, idx[0]),
				end:   runeOffset(raw, idx[1]),
			}
			for g := 0; 2*g < len(idx); g++ {
				if idx[2*g] < 0 {
					m.groups = append(m.groups, "")
					continue
				}
				m.groups = append(m.groups, raw[idx[2*g]:idx[2*g+1]])
			}
			matches = append(matches, m)
		}
		return matches, nil
	}

	from := 0
	for {
		rel := strings.Index(raw[from:], search)
		if rel < 0 {
			break
		}
		start := from + rel
		end := start + len(search)
		matches = append(matches, textMatch{
			start:  runeOffset(raw, start),
			end:    runeOffset(raw, end),
			groups: []string{search},
		})
		from = end
	}
	return matches, nil
}

// runeOffset converts a byte offset into raw to a character offset.
func runeOffset(raw string, byteOff int) int {
	return utf8.RuneCountInString(raw[:byteOff])
}

// formattingAllows walks the runs the match spans and accumulates the
// formatting match status. Every character of the span must be covered by a
// run whose formatting passes; spans touching non-run content (inline
// drawings) never pass a formatting gate. The template itself is never
// mutated.
func (s *Session) formattingAllows(p *document.Paragraph, m textMatch, opts *ReplaceOptions) bool {
	if opts.MatchFormatting == nil {
		return true
	}

	covered := 0
	count := 0
	for ci := range p.Children {
		for _, r := range childRuns(&p.Children[ci]) {
			start, end := count, count+r.length
			count = end
			if end <= m.start || start >= m.end {
				continue
			}
			if r.run == nil {
				// non-run content inside the span
				return false
			}
			switch opts.Match {
			case MatchExact:
				if !r.run.Properties.Equals(opts.MatchFormatting) {
					return false
				}
			default:
				if !r.run.Properties.Contains(opts.MatchFormatting) {
					return false
				}
			}
			covered += min(end, m.end) - max(start, m.start)
		}
	}
	return covered == m.end-m.start
}

// runSpan is one offset-contributing leaf during a formatting walk. run is
// nil for atomic non-text units.
type runSpan struct {
	run    *document.Run
	length int
}

func childRuns(b *document.Block) []runSpan {
	switch b.Kind {
	case document.BlockRun:
		return []runSpan{{run: b.Run, length: b.Run.Length()}}
	case document.BlockTrackedChange:
		spans := make([]runSpan, 0, len(b.Change.Runs))
		for _, r := range b.Change.Runs {
			spans = append(spans, runSpan{run: r, length: r.Length()})
		}
		return spans
	case document.BlockHyperlink:
		spans := make([]runSpan, 0, len(b.Hyperlink.Runs))
		for _, r := range b.Hyperlink.Runs {
			spans = append(spans, runSpan{run: r, length: r.Length()})
		}
		return spans
	case document.BlockDrawing:
		if b.Drawing.Inline {
			return []runSpan{{run: nil, length: 1}}
		}
		return nil
	case document.BlockBookmarkStart, document.BlockBookmarkEnd, document.BlockField:
		return nil
	default:
		// this should never happen
		panic("unsupported block kind")
	}
}

// expandSubstitutions renders a substitution template against one match.
// References: $& whole match, $1..$9 capture groups, $` prefix, $' suffix,
// $$ literal dollar. Unknown references render as nothing.
func expandSubstitutions(template string, raw []rune, m textMatch) string {
	var buf strings.Builder
	runes := []rune(template)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '$' || i+1 >= len(runes) {
			buf.WriteRune(runes[i])
			continue
		}
		i++
		switch c := runes[i]; {
		case c == '$':
			buf.WriteByte('$')
		case c == '&':
			buf.WriteString(string(raw[m.start:m.end]))
		case c == '`':
			buf.WriteString(string(raw[:m.start]))
		case c == '\'':
			buf.WriteString(string(raw[m.end:]))
		case c >= '1' && c <= '9':
			g := int(c - '0')
			if g < len(m.groups) {
				buf.WriteString(m.groups[g])
			}
		default:
			// not a reference, keep both characters
			buf.WriteByte('$')
			buf.WriteRune(c)
		}
	}
	return buf.String()
}
