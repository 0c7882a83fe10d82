// Package docx reads and writes the WordprocessingML rendition of the
// paragraph tree. It is a persistence collaborator: it consumes and produces
// document.Paragraph values but never participates in offset arithmetic.
package docx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"golang.org/x/text/language"

	"dcx/document"
)

const (
	nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRel  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsXML  = "http://www.w3.org/XML/1998/namespace"
)

// wordDateFormat is the dateTime layout WordprocessingML uses on tracked
// changes.
const wordDateFormat = "2006-01-02T15:04:05Z"

// ParseParagraph decodes a w:p element into a paragraph tree.
func ParseParagraph(el *etree.Element) (*document.Paragraph, error) {
	p := &document.Paragraph{}

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "pPr":
			for _, pr := range child.ChildElements() {
				if pr.Tag == "pStyle" {
					p.StyleName = attr(pr, "val")
				}
			}
		case "r":
			p.Children = append(p.Children, parseRunBlocks(child)...)
		case "ins", "del":
			tc, err := parseTrackedChange(child)
			if err != nil {
				return nil, fmt.Errorf("parsing w:%s: %w", child.Tag, err)
			}
			p.Children = append(p.Children, document.Block{Kind: document.BlockTrackedChange, Change: tc})
		case "bookmarkStart":
			id, _ := strconv.Atoi(attr(child, "id"))
			p.Children = append(p.Children, document.Block{
				Kind:     document.BlockBookmarkStart,
				Bookmark: &document.Bookmark{ID: id, Name: attr(child, "name")},
			})
		case "bookmarkEnd":
			id, _ := strconv.Atoi(attr(child, "id"))
			p.Children = append(p.Children, document.Block{
				Kind:     document.BlockBookmarkEnd,
				Bookmark: &document.Bookmark{ID: id},
			})
		case "fldSimple":
			field := &document.FieldPlaceholder{Instruction: strings.TrimSpace(attr(child, "instr"))}
			for _, fr := range child.ChildElements() {
				if fr.Tag != "r" {
					continue
				}
				for _, ft := range fr.ChildElements() {
					if ft.Tag == "t" {
						field.Value += ft.Text()
					}
				}
			}
			p.Children = append(p.Children, document.Block{Kind: document.BlockField, Field: field})
		case "hyperlink":
			link, err := parseHyperlink(child)
			if err != nil {
				return nil, fmt.Errorf("parsing w:hyperlink: %w", err)
			}
			p.Children = append(p.Children, document.Block{Kind: document.BlockHyperlink, Hyperlink: link})
		default:
			// proofing marks, section properties and other non-content
			// children are dropped
		}
	}

	return p, nil
}

// parseRunBlocks decodes a w:r element into paragraph blocks. A drawing in
// the middle of a run splits the run there, so inline objects keep their
// position in the offset space; each emitted segment carries its own copy of
// the run properties.
func parseRunBlocks(el *etree.Element) []document.Block {
	var (
		blocks []document.Block
		rPr    *etree.Element
		run    *document.Run
	)
	flush := func() {
		if r := guardRun(run); r != nil {
			blocks = append(blocks, document.Block{Kind: document.BlockRun, Run: r})
		}
		run = nil
	}
	segment := func() *document.Run {
		if run == nil {
			run = &document.Run{}
			if rPr != nil {
				run.Properties = parseFormatting(rPr)
			}
		}
		return run
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "rPr":
			rPr = child
		case "t":
			r := segment()
			r.Fragments = append(r.Fragments, document.NewTextFragment(child.Text()))
		case "delText":
			r := segment()
			r.Fragments = append(r.Fragments, document.NewDeletedTextFragment(child.Text()))
		case "tab":
			r := segment()
			r.Fragments = append(r.Fragments, document.Fragment{Kind: document.FragmentTab})
		case "br", "cr":
			r := segment()
			r.Fragments = append(r.Fragments, document.Fragment{Kind: document.FragmentLineBreak})
		case "drawing":
			flush()
			blocks = append(blocks, document.Block{Kind: document.BlockDrawing, Drawing: parseDrawing(child)})
		}
	}
	flush()
	return blocks
}

// guardRun drops structurally invalid zero-length runs during reassembly.
func guardRun(r *document.Run) *document.Run {
	if r == nil || len(r.Fragments) == 0 {
		return nil
	}
	return r
}

func parseRun(el *etree.Element) *document.Run {
	run := &document.Run{}

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "rPr":
			run.Properties = parseFormatting(child)
		case "t":
			f := document.NewTextFragment(child.Text())
			run.Fragments = append(run.Fragments, f)
		case "delText":
			f := document.NewDeletedTextFragment(child.Text())
			run.Fragments = append(run.Fragments, f)
		case "tab":
			run.Fragments = append(run.Fragments, document.Fragment{Kind: document.FragmentTab})
		case "br", "cr":
			run.Fragments = append(run.Fragments, document.Fragment{Kind: document.FragmentLineBreak})
		case "drawing":
			// drawings inside wrapper runs are not modeled
		}
	}

	if len(run.Fragments) == 0 && run.Properties == nil {
		return nil
	}
	return run
}

func parseTrackedChange(el *etree.Element) (*document.TrackedChange, error) {
	kind := document.TrackedInsertion
	if el.Tag == "del" {
		kind = document.TrackedDeletion
	}
	id, _ := strconv.Atoi(attr(el, "id"))
	tc := &document.TrackedChange{
		Kind:   kind,
		ID:     id,
		Author: attr(el, "author"),
	}
	if raw := attr(el, "date"); raw != "" {
		if date, err := time.Parse(wordDateFormat, raw); err == nil {
			tc.Date = date
		}
	}
	for _, child := range el.ChildElements() {
		if child.Tag != "r" {
			continue
		}
		if run := guardRun(parseRun(child)); run != nil {
			tc.Runs = append(tc.Runs, run)
		}
	}
	return tc, nil
}

func parseHyperlink(el *etree.Element) (*document.HyperlinkRef, error) {
	link := &document.HyperlinkRef{
		RelID:   attr(el, "id"),
		Anchor:  attr(el, "anchor"),
		Tooltip: attr(el, "tooltip"),
	}
	for _, child := range el.ChildElements() {
		if child.Tag != "r" {
			continue
		}
		if run := guardRun(parseRun(child)); run != nil {
			link.Runs = append(link.Runs, run)
		}
	}
	return link, nil
}

// BuildParagraph encodes a paragraph tree as a w:p element.
func BuildParagraph(p *document.Paragraph) *etree.Element {
	el := etree.NewElement("w:p")

	if p.StyleName != "" {
		pPr := el.CreateElement("w:pPr")
		pPr.CreateElement("w:pStyle").CreateAttr("w:val", p.StyleName)
	}

	for i := range p.Children {
		b := &p.Children[i]
		switch b.Kind {
		case document.BlockRun:
			if b.Run.Length() == 0 {
				// structurally invalid, omitted during reassembly
				continue
			}
			el.AddChild(buildRun(b.Run))
		case document.BlockTrackedChange:
			el.AddChild(buildTrackedChange(b.Change))
		case document.BlockBookmarkStart:
			bm := el.CreateElement("w:bookmarkStart")
			bm.CreateAttr("w:id", strconv.Itoa(b.Bookmark.ID))
			bm.CreateAttr("w:name", b.Bookmark.Name)
		case document.BlockBookmarkEnd:
			bm := el.CreateElement("w:bookmarkEnd")
			bm.CreateAttr("w:id", strconv.Itoa(b.Bookmark.ID))
		case document.BlockField:
			fld := el.CreateElement("w:fldSimple")
			fld.CreateAttr("w:instr", b.Field.Instruction)
			if b.Field.Value != "" {
				fld.CreateElement("w:r").CreateElement("w:t").SetText(b.Field.Value)
			}
		case document.BlockHyperlink:
			el.AddChild(buildHyperlink(b.Hyperlink))
		case document.BlockDrawing:
			el.AddChild(buildDrawing(b.Drawing))
		default:
			// this should never happen
			panic("unsupported block kind")
		}
	}

	return el
}

func buildRun(r *document.Run) *etree.Element {
	el := etree.NewElement("w:r")
	if r.Properties != nil {
		if rPr := buildFormatting(r.Properties); rPr != nil {
			el.AddChild(rPr)
		}
	}
	for i := range r.Fragments {
		f := &r.Fragments[i]
		switch f.Kind {
		case document.FragmentText:
			t := el.CreateElement("w:t")
			t.SetText(f.Value)
			if f.PreserveSpace {
				t.CreateAttr("xml:space", "preserve")
			}
		case document.FragmentDeletedText:
			t := el.CreateElement("w:delText")
			t.SetText(f.Value)
			if f.PreserveSpace {
				t.CreateAttr("xml:space", "preserve")
			}
		case document.FragmentTab:
			el.CreateElement("w:tab")
		case document.FragmentLineBreak:
			el.CreateElement("w:br")
		default:
			// this should never happen
			panic("unsupported fragment kind")
		}
	}
	return el
}

func buildTrackedChange(tc *document.TrackedChange) *etree.Element {
	tag := "w:ins"
	if tc.Kind == document.TrackedDeletion {
		tag = "w:del"
	}
	el := etree.NewElement(tag)
	el.CreateAttr("w:id", strconv.Itoa(tc.ID))
	if tc.Author != "" {
		el.CreateAttr("w:author", tc.Author)
	}
	if !tc.Date.IsZero() {
		el.CreateAttr("w:date", tc.Date.UTC().Format(wordDateFormat))
	}
	for _, r := range tc.Runs {
		el.AddChild(buildRun(r))
	}
	return el
}

func buildHyperlink(h *document.HyperlinkRef) *etree.Element {
	el := etree.NewElement("w:hyperlink")
	if h.RelID != "" {
		el.CreateAttr("r:id", h.RelID)
	}
	if h.Anchor != "" {
		el.CreateAttr("w:anchor", h.Anchor)
	}
	if h.Tooltip != "" {
		el.CreateAttr("w:tooltip", h.Tooltip)
	}
	for _, r := range h.Runs {
		el.AddChild(buildRun(r))
	}
	return el
}

func buildDrawing(d *document.DrawingRef) *etree.Element {
	// the core keeps drawings opaque; emit the minimal reference shape
	el := etree.NewElement("w:r")
	drawing := el.CreateElement("w:drawing")
	wrapper := "wp:anchor"
	if d.Inline {
		wrapper = "wp:inline"
	}
	w := drawing.CreateElement(wrapper)
	docPr := w.CreateElement("wp:docPr")
	docPr.CreateAttr("name", d.Name)
	blip := w.CreateElement("a:graphic").CreateElement("a:graphicData").
		CreateElement("pic:pic").CreateElement("pic:blipFill").CreateElement("a:blip")
	blip.CreateAttr("r:embed", d.RelID)
	return el
}

// attr returns an attribute value by local key, ignoring the namespace
// prefix. WordprocessingML attributes carry the w: (or r:) prefix and old
// producers are not consistent about it.
func attr(el *etree.Element, key string) string {
	for _, a := range el.Attr {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// parseDrawing extracts the opaque reference shape of a w:drawing element:
// inline or anchored placement, the display name, and the relationship id of
// the embedded media.
func parseDrawing(el *etree.Element) *document.DrawingRef {
	d := &document.DrawingRef{}
	for _, w := range el.ChildElements() {
		switch w.Tag {
		case "inline":
			d.Inline = true
		case "anchor":
			d.Inline = false
		default:
			continue
		}
		fillDrawingRef(w, d)
	}
	return d
}

func fillDrawingRef(el *etree.Element, d *document.DrawingRef) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "docPr":
			d.Name = attr(child, "name")
		case "blip":
			d.RelID = attr(child, "embed")
		}
		fillDrawingRef(child, d)
	}
}

func parseCulture(val string) *language.Tag {
	tag, err := language.Parse(val)
	if err != nil {
		return nil
	}
	return &tag
}
