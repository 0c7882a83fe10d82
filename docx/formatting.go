package docx

import (
	"strconv"

	"github.com/beevik/etree"

	"dcx/document"
)

// Formatting codec: w:rPr to document.Formatting and back. Absent elements
// stay nil so the sparse merge semantics survive a round trip.

func parseFormatting(el *etree.Element) *document.Formatting {
	f := &document.Formatting{}

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "b":
			f.Bold = toggle(child)
		case "i":
			f.Italic = toggle(child)
		case "caps":
			if v := toggle(child); v != nil && *v {
				caps := document.CapsAll
				f.Caps = &caps
			}
		case "smallCaps":
			if v := toggle(child); v != nil && *v {
				caps := document.CapsSmall
				f.Caps = &caps
			}
		case "color":
			if v := attr(child, "val"); v != "" {
				f.Color = &v
			}
		case "lang":
			f.Culture = parseCulture(attr(child, "val"))
		case "emboss":
			setEffect(f, child, document.EffectEmboss)
		case "imprint":
			setEffect(f, child, document.EffectEngrave)
		case "outline":
			setEffect(f, child, document.EffectOutline)
		case "shadow":
			setEffect(f, child, document.EffectShadow)
		case "rFonts":
			if v := attr(child, "ascii"); v != "" {
				f.Font = &v
			}
		case "highlight":
			if v := attr(child, "val"); v != "" {
				h := document.Highlight(v)
				f.Highlight = &h
			}
		case "vanish":
			f.Hidden = toggle(child)
		case "kern":
			if v, err := strconv.Atoi(attr(child, "val")); err == nil {
				f.Kerning = &v
			}
		case "w":
			if v, err := strconv.Atoi(attr(child, "val")); err == nil {
				f.ExpansionScale = &v
			}
		case "position":
			if v, err := strconv.Atoi(attr(child, "val")); err == nil {
				f.Position = &v
			}
		case "sz":
			// stored in half-points
			if v, err := strconv.Atoi(attr(child, "val")); err == nil {
				f.SetSize(float64(v) / 2)
			}
		case "spacing":
			// stored in twentieths of a point
			if v, err := strconv.Atoi(attr(child, "val")); err == nil {
				f.SetSpacing(float64(v) / 20)
			}
		case "vertAlign":
			switch attr(child, "val") {
			case "subscript":
				f.SetSubscript(true)
			case "superscript":
				f.SetSuperscript(true)
			}
		case "strike":
			if v := toggle(child); v != nil && *v {
				st := document.StrikeSingle
				f.StrikeThrough = &st
			}
		case "dstrike":
			if v := toggle(child); v != nil && *v {
				st := document.StrikeDouble
				f.StrikeThrough = &st
			}
		case "u":
			if v := attr(child, "val"); v != "" {
				u := document.UnderlineStyle(v)
				f.Underline = &u
			}
			if v := attr(child, "color"); v != "" && v != "auto" {
				f.UnderlineColor = &v
			}
		case "noProof":
			f.NoProof = toggle(child)
		}
	}

	if *f == (document.Formatting{}) {
		return nil
	}
	return f
}

// toggle decodes an on/off property element: absent val means true, any of
// the usual false spellings means false.
func toggle(el *etree.Element) *bool {
	v := true
	switch attr(el, "val") {
	case "false", "0", "off":
		v = false
	}
	return &v
}

func setEffect(f *document.Formatting, el *etree.Element, effect document.Effect) {
	if v := toggle(el); v != nil && *v {
		f.Effect = &effect
	}
}

func buildFormatting(f *document.Formatting) *etree.Element {
	el := etree.NewElement("w:rPr")

	if f.Font != nil {
		el.CreateElement("w:rFonts").CreateAttr("w:ascii", *f.Font)
	}
	if f.Bold != nil {
		buildToggle(el, "w:b", *f.Bold)
	}
	if f.Italic != nil {
		buildToggle(el, "w:i", *f.Italic)
	}
	if f.Caps != nil {
		switch *f.Caps {
		case document.CapsAll:
			el.CreateElement("w:caps")
		case document.CapsSmall:
			el.CreateElement("w:smallCaps")
		}
	}
	if f.StrikeThrough != nil {
		switch *f.StrikeThrough {
		case document.StrikeSingle:
			el.CreateElement("w:strike")
		case document.StrikeDouble:
			el.CreateElement("w:dstrike")
		}
	}
	if f.Effect != nil && *f.Effect != document.EffectNone {
		el.CreateElement("w:" + string(*f.Effect))
	}
	if f.NoProof != nil {
		buildToggle(el, "w:noProof", *f.NoProof)
	}
	if f.Hidden != nil {
		buildToggle(el, "w:vanish", *f.Hidden)
	}
	if f.Color != nil {
		el.CreateElement("w:color").CreateAttr("w:val", *f.Color)
	}
	if f.Spacing != nil {
		el.CreateElement("w:spacing").CreateAttr("w:val", strconv.Itoa(int(*f.Spacing*20)))
	}
	if f.ExpansionScale != nil {
		el.CreateElement("w:w").CreateAttr("w:val", strconv.Itoa(*f.ExpansionScale))
	}
	if f.Kerning != nil {
		el.CreateElement("w:kern").CreateAttr("w:val", strconv.Itoa(*f.Kerning))
	}
	if f.Position != nil {
		el.CreateElement("w:position").CreateAttr("w:val", strconv.Itoa(*f.Position))
	}
	if f.Size != nil {
		el.CreateElement("w:sz").CreateAttr("w:val", strconv.Itoa(int(*f.Size*2)))
	}
	if f.Highlight != nil {
		el.CreateElement("w:highlight").CreateAttr("w:val", string(*f.Highlight))
	}
	if f.Underline != nil || f.UnderlineColor != nil {
		u := el.CreateElement("w:u")
		style := document.UnderlineSingle
		if f.Underline != nil {
			style = *f.Underline
		}
		u.CreateAttr("w:val", string(style))
		if f.UnderlineColor != nil {
			u.CreateAttr("w:color", *f.UnderlineColor)
		}
	}
	if f.Subscript != nil && *f.Subscript {
		el.CreateElement("w:vertAlign").CreateAttr("w:val", "subscript")
	}
	if f.Superscript != nil && *f.Superscript {
		el.CreateElement("w:vertAlign").CreateAttr("w:val", "superscript")
	}
	if f.Culture != nil {
		el.CreateElement("w:lang").CreateAttr("w:val", f.Culture.String())
	}

	if len(el.ChildElements()) == 0 {
		return nil
	}
	return el
}

func buildToggle(parent *etree.Element, tag string, on bool) {
	el := parent.CreateElement(tag)
	if !on {
		el.CreateAttr("w:val", "false")
	}
}
