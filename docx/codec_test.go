package docx

import (
	"strings"
	"testing"

	"github.com/beevik/etree"

	"dcx/document"
)

func parseParagraphXML(t *testing.T, xml string) *document.Paragraph {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		t.Fatalf("read xml: %v", err)
	}
	p, err := ParseParagraph(doc.Root())
	if err != nil {
		t.Fatalf("ParseParagraph: %v", err)
	}
	return p
}

func TestParseParagraph(t *testing.T) {
	t.Run("runs with styled text", func(t *testing.T) {
		p := parseParagraphXML(t, `<w:p xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
			<w:pPr><w:pStyle w:val="Heading1"/></w:pPr>
			<w:r><w:rPr><w:b/><w:sz w:val="28"/></w:rPr><w:t>Bold</w:t></w:r>
			<w:r><w:t xml:space="preserve"> text</w:t></w:r>
		</w:p>`)

		if p.StyleName != "Heading1" {
			t.Fatalf("style: %q", p.StyleName)
		}
		if p.Text() != "Bold text" {
			t.Fatalf("text: %q", p.Text())
		}
		props := p.Children[0].Run.Properties
		if props == nil || props.Bold == nil || !*props.Bold {
			t.Fatalf("bold not parsed: %+v", props)
		}
		if props.Size == nil || *props.Size != 14 {
			t.Fatalf("size (half-points 28): %+v", props.Size)
		}
		frag := p.Children[1].Run.Fragments[0]
		if !frag.PreserveSpace {
			t.Fatalf("xml:space=preserve not honored")
		}
	})

	t.Run("tabs and breaks", func(t *testing.T) {
		p := parseParagraphXML(t, `<w:p xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
			<w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r>
		</w:p>`)
		if p.Text() != "a\tb\nc" {
			t.Fatalf("text: %q", p.Text())
		}
		if p.Length() != 5 {
			t.Fatalf("length: %d", p.Length())
		}
	})

	t.Run("tracked deletion keeps raw text", func(t *testing.T) {
		p := parseParagraphXML(t, `<w:p xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
			<w:r><w:t>kept </w:t></w:r>
			<w:del w:id="3" w:author="reviewer" w:date="2024-01-02T03:04:05Z">
				<w:r><w:delText>dropped</w:delText></w:r>
			</w:del>
		</w:p>`)

		if p.Text() != "kept " {
			t.Fatalf("visible text: %q", p.Text())
		}
		if p.RawText() != "kept dropped" {
			t.Fatalf("raw text: %q", p.RawText())
		}
		b := p.Children[1]
		if b.Kind != document.BlockTrackedChange || b.Change.Kind != document.TrackedDeletion {
			t.Fatalf("deletion wrapper not parsed: %+v", b)
		}
		if b.Change.Author != "reviewer" || b.Change.ID != 3 {
			t.Fatalf("wrapper attributes: %+v", b.Change)
		}
	})

	t.Run("bookmarks and hyperlinks", func(t *testing.T) {
		p := parseParagraphXML(t, `<w:p xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
			xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
			<w:bookmarkStart w:id="1" w:name="target"/>
			<w:r><w:t>before </w:t></w:r>
			<w:bookmarkEnd w:id="1"/>
			<w:hyperlink r:id="rId7" w:tooltip="open">
				<w:r><w:t>link</w:t></w:r>
			</w:hyperlink>
		</w:p>`)

		bms := p.Bookmarks()
		if len(bms) != 1 || bms[0].Name != "target" || bms[0].Position != 0 {
			t.Fatalf("bookmarks: %+v", bms)
		}
		last := p.Children[len(p.Children)-1]
		if last.Kind != document.BlockHyperlink {
			t.Fatalf("hyperlink not parsed: %+v", last)
		}
		if last.Hyperlink.RelID != "rId7" || last.Hyperlink.Tooltip != "open" {
			t.Fatalf("hyperlink attributes: %+v", last.Hyperlink)
		}
		if p.Text() != "before link" {
			t.Fatalf("text: %q", p.Text())
		}
	})

	t.Run("drawing splits its run in place", func(t *testing.T) {
		p := parseParagraphXML(t, `<w:p xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
			<w:r><w:rPr><w:b/></w:rPr><w:t>ab</w:t><w:drawing><wp:inline xmlns:wp="x"><wp:docPr name="photo"/></wp:inline></w:drawing><w:t>cd</w:t></w:r>
		</w:p>`)

		if len(p.Children) != 3 {
			t.Fatalf("expected run, drawing, run - got %d children", len(p.Children))
		}
		if p.Children[0].Kind != document.BlockRun || p.Children[0].Run.Text() != "ab" {
			t.Fatalf("leading segment: %+v", p.Children[0])
		}
		if p.Children[1].Kind != document.BlockDrawing {
			t.Fatalf("drawing did not keep its position: %+v", p.Children[1])
		}
		if p.Children[2].Kind != document.BlockRun || p.Children[2].Run.Text() != "cd" {
			t.Fatalf("trailing segment: %+v", p.Children[2])
		}
		if p.RawText() != "ab￼cd" {
			t.Fatalf("offset space: %q", p.RawText())
		}
		for _, i := range []int{0, 2} {
			props := p.Children[i].Run.Properties
			if props == nil || props.Bold == nil || !*props.Bold {
				t.Fatalf("segment %d lost its properties: %+v", i, props)
			}
		}
		if p.Children[0].Run.Properties == p.Children[2].Run.Properties {
			t.Fatalf("segments share one properties struct")
		}
	})

	t.Run("empty runs are pruned", func(t *testing.T) {
		p := parseParagraphXML(t, `<w:p xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
			<w:r><w:rPr><w:b/></w:rPr></w:r>
			<w:r><w:t>only</w:t></w:r>
		</w:p>`)
		if len(p.Children) != 1 {
			t.Fatalf("fragment-less run survived: %d children", len(p.Children))
		}
	})
}

func TestBuildParagraph(t *testing.T) {
	roundTrip := func(t *testing.T, p *document.Paragraph) *document.Paragraph {
		t.Helper()
		el := BuildParagraph(p)
		doc := etree.NewDocument()
		doc.SetRoot(el)
		out, err := ParseParagraph(doc.Root())
		if err != nil {
			t.Fatalf("reparse: %v", err)
		}
		return out
	}

	t.Run("text and formatting survive a round trip", func(t *testing.T) {
		p := &document.Paragraph{StyleName: "Quote"}
		props := &document.Formatting{}
		b := true
		props.Bold = &b
		props.SetSize(11.5)
		p.AppendText("styled ", props)
		p.AppendText("plain", nil)

		out := roundTrip(t, p)
		if out.StyleName != "Quote" {
			t.Fatalf("style: %q", out.StyleName)
		}
		if out.Text() != p.Text() {
			t.Fatalf("text: %q vs %q", out.Text(), p.Text())
		}
		if !out.Children[0].Run.Properties.Equals(props) {
			t.Fatalf("formatting lost: %+v", out.Children[0].Run.Properties)
		}
		if out.Children[1].Run.Properties != nil {
			t.Fatalf("plain run gained formatting")
		}
	})

	t.Run("preserve-space text is marked", func(t *testing.T) {
		p := &document.Paragraph{}
		p.AppendText("spaced ", nil)

		el := BuildParagraph(p)
		doc := etree.NewDocument()
		doc.SetRoot(el)
		xml, err := doc.WriteToString()
		if err != nil {
			t.Fatalf("serialize: %v", err)
		}
		if !strings.Contains(xml, `xml:space="preserve"`) {
			t.Fatalf("missing space preservation: %s", xml)
		}
	})

	t.Run("tracked change round trip", func(t *testing.T) {
		p := &document.Paragraph{}
		p.Children = append(p.Children, document.Block{Kind: document.BlockTrackedChange, Change: &document.TrackedChange{
			Kind:   document.TrackedDeletion,
			ID:     5,
			Author: "editor",
			Runs:   []*document.Run{{Fragments: []document.Fragment{document.NewDeletedTextFragment("cut")}}},
		}})

		out := roundTrip(t, p)
		if out.RawText() != "cut" || out.Text() != "" {
			t.Fatalf("deletion content: raw %q visible %q", out.RawText(), out.Text())
		}
		tc := out.Children[0].Change
		if tc.Kind != document.TrackedDeletion || tc.Author != "editor" || tc.ID != 5 {
			t.Fatalf("wrapper attributes: %+v", tc)
		}
	})

	t.Run("zero-length runs are not serialized", func(t *testing.T) {
		p := &document.Paragraph{}
		p.Children = append(p.Children, document.Block{Kind: document.BlockRun, Run: &document.Run{}})
		p.AppendText("real", nil)

		out := roundTrip(t, p)
		if len(out.Children) != 1 || out.Text() != "real" {
			t.Fatalf("unexpected children: %d, text %q", len(out.Children), out.Text())
		}
	})

	t.Run("bookmark and drawing round trip", func(t *testing.T) {
		p := &document.Paragraph{}
		p.Children = append(p.Children,
			document.Block{Kind: document.BlockBookmarkStart, Bookmark: &document.Bookmark{ID: 2, Name: "pos"}},
			document.Block{Kind: document.BlockRun, Run: document.NewTextRun("pic:", nil)},
			document.Block{Kind: document.BlockDrawing, Drawing: &document.DrawingRef{RelID: "rId9", Name: "photo", Inline: true}},
			document.Block{Kind: document.BlockBookmarkEnd, Bookmark: &document.Bookmark{ID: 2, Name: "pos"}},
		)

		out := roundTrip(t, p)
		bms := out.Bookmarks()
		if len(bms) != 1 || bms[0].Name != "pos" {
			t.Fatalf("bookmarks: %+v", bms)
		}
		var d *document.DrawingRef
		for i := range out.Children {
			if out.Children[i].Kind == document.BlockDrawing {
				d = out.Children[i].Drawing
			}
		}
		if d == nil || d.RelID != "rId9" || d.Name != "photo" || !d.Inline {
			t.Fatalf("drawing: %+v", d)
		}
		if out.Length() != p.Length() {
			t.Fatalf("offset space changed: %d vs %d", out.Length(), p.Length())
		}
	})
}
