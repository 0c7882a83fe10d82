package document

import (
	"math"

	"golang.org/x/text/language"
)

// Text appearance enumerations. Values follow WordprocessingML attribute
// vocabulary so the codec can pass them through unchanged.

// CapsStyle selects capitalization rendering.
type CapsStyle string

const (
	CapsNone  CapsStyle = "none"
	CapsAll   CapsStyle = "caps"
	CapsSmall CapsStyle = "smallCaps"
)

// Effect selects a text animation/appearance effect.
type Effect string

const (
	EffectNone    Effect = "none"
	EffectEmboss  Effect = "emboss"
	EffectEngrave Effect = "imprint"
	EffectOutline Effect = "outline"
	EffectShadow  Effect = "shadow"
)

// Strike selects strike-through rendering.
type Strike string

const (
	StrikeNone   Strike = "none"
	StrikeSingle Strike = "strike"
	StrikeDouble Strike = "dstrike"
)

// UnderlineStyle selects underline rendering.
type UnderlineStyle string

const (
	UnderlineNone      UnderlineStyle = "none"
	UnderlineSingle    UnderlineStyle = "single"
	UnderlineDouble    UnderlineStyle = "double"
	UnderlineThick     UnderlineStyle = "thick"
	UnderlineDotted    UnderlineStyle = "dotted"
	UnderlineDashed    UnderlineStyle = "dash"
	UnderlineWavy      UnderlineStyle = "wave"
	UnderlineWords     UnderlineStyle = "words"
)

// Highlight selects a text highlight color from the fixed WordprocessingML
// palette.
type Highlight string

const (
	HighlightNone    Highlight = "none"
	HighlightYellow  Highlight = "yellow"
	HighlightGreen   Highlight = "green"
	HighlightCyan    Highlight = "cyan"
	HighlightMagenta Highlight = "magenta"
	HighlightBlue    Highlight = "blue"
	HighlightRed     Highlight = "red"
	HighlightGray    Highlight = "lightGray"
)

// Formatting is a flat set of optional text appearance properties attached to
// a run or to a paragraph's default run properties. A nil field means "not
// set" and is skipped by Merge and by subset matching.
//
// Subscript and Superscript are mutually exclusive - use SetSubscript and
// SetSuperscript rather than assigning the fields directly.
type Formatting struct {
	Bold           *bool
	Italic         *bool
	Caps           *CapsStyle
	Color          *string // RRGGBB hex, or "auto"
	Culture        *language.Tag
	Effect         *Effect
	Font           *string // font family name
	Highlight      *Highlight
	Hidden         *bool
	Kerning        *int // half-points
	ExpansionScale *int // percent of normal character width
	Position       *int // half-points above (positive) or below baseline
	Size           *float64 // points, quantized to the nearest half-point
	Spacing        *float64 // points between characters, quantized like Size
	Subscript      *bool
	Superscript    *bool
	StrikeThrough  *Strike
	Underline      *UnderlineStyle
	UnderlineColor *string
	NoProof        *bool
}

// quantizeHalf snaps a point value to the format's native half-point
// granularity. Applied when a value is committed, never at read time.
func quantizeHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

// SetSize commits a font size in points, quantized to the nearest half-point.
func (f *Formatting) SetSize(points float64) {
	v := quantizeHalf(points)
	f.Size = &v
}

// SetSpacing commits character spacing in points, quantized to the nearest
// half-point.
func (f *Formatting) SetSpacing(points float64) {
	v := quantizeHalf(points)
	f.Spacing = &v
}

// SetSubscript sets the subscript flag. Enabling it clears superscript.
func (f *Formatting) SetSubscript(on bool) {
	f.Subscript = &on
	if on {
		f.Superscript = nil
	}
}

// SetSuperscript sets the superscript flag. Enabling it clears subscript.
func (f *Formatting) SetSuperscript(on bool) {
	f.Superscript = &on
	if on {
		f.Subscript = nil
	}
}

// Merge overwrites only the properties explicitly set on other, leaving
// everything else untouched - a sparse right-biased merge, not a full
// replace. Point-valued properties from other are quantized as they are
// committed. Merging nil is a no-op.
func (f *Formatting) Merge(other *Formatting) {
	if other == nil {
		return
	}
	if other.Bold != nil {
		f.Bold = cloneBool(other.Bold)
	}
	if other.Italic != nil {
		f.Italic = cloneBool(other.Italic)
	}
	if other.Caps != nil {
		v := *other.Caps
		f.Caps = &v
	}
	if other.Color != nil {
		f.Color = cloneString(other.Color)
	}
	if other.Culture != nil {
		v := *other.Culture
		f.Culture = &v
	}
	if other.Effect != nil {
		v := *other.Effect
		f.Effect = &v
	}
	if other.Font != nil {
		f.Font = cloneString(other.Font)
	}
	if other.Highlight != nil {
		v := *other.Highlight
		f.Highlight = &v
	}
	if other.Hidden != nil {
		f.Hidden = cloneBool(other.Hidden)
	}
	if other.Kerning != nil {
		f.Kerning = cloneInt(other.Kerning)
	}
	if other.ExpansionScale != nil {
		f.ExpansionScale = cloneInt(other.ExpansionScale)
	}
	if other.Position != nil {
		f.Position = cloneInt(other.Position)
	}
	if other.Size != nil {
		f.SetSize(*other.Size)
	}
	if other.Spacing != nil {
		f.SetSpacing(*other.Spacing)
	}
	if other.Subscript != nil {
		f.SetSubscript(*other.Subscript)
	}
	if other.Superscript != nil {
		f.SetSuperscript(*other.Superscript)
	}
	if other.StrikeThrough != nil {
		v := *other.StrikeThrough
		f.StrikeThrough = &v
	}
	if other.Underline != nil {
		v := *other.Underline
		f.Underline = &v
	}
	if other.UnderlineColor != nil {
		f.UnderlineColor = cloneString(other.UnderlineColor)
	}
	if other.NoProof != nil {
		f.NoProof = cloneBool(other.NoProof)
	}
}

// Equals reports structural equality: every property, including the culture
// reference, must match - both unset, or both set to the same value.
func (f *Formatting) Equals(other *Formatting) bool {
	if f == nil || other == nil {
		return emptyFormatting(f) && emptyFormatting(other)
	}
	return eqBool(f.Bold, other.Bold) &&
		eqBool(f.Italic, other.Italic) &&
		eqComparable(f.Caps, other.Caps) &&
		eqComparable(f.Color, other.Color) &&
		eqComparable(f.Culture, other.Culture) &&
		eqComparable(f.Effect, other.Effect) &&
		eqComparable(f.Font, other.Font) &&
		eqComparable(f.Highlight, other.Highlight) &&
		eqBool(f.Hidden, other.Hidden) &&
		eqComparable(f.Kerning, other.Kerning) &&
		eqComparable(f.ExpansionScale, other.ExpansionScale) &&
		eqComparable(f.Position, other.Position) &&
		eqComparable(f.Size, other.Size) &&
		eqComparable(f.Spacing, other.Spacing) &&
		eqBool(f.Subscript, other.Subscript) &&
		eqBool(f.Superscript, other.Superscript) &&
		eqComparable(f.StrikeThrough, other.StrikeThrough) &&
		eqComparable(f.Underline, other.Underline) &&
		eqComparable(f.UnderlineColor, other.UnderlineColor) &&
		eqBool(f.NoProof, other.NoProof)
}

// Contains reports whether every property set on sub is set on f with an
// equal value. Unset properties on sub are no constraint. A nil or empty sub
// matches anything.
func (f *Formatting) Contains(sub *Formatting) bool {
	if emptyFormatting(sub) {
		return true
	}
	if f == nil {
		return false
	}
	return containsComparable(f.Bold, sub.Bold) &&
		containsComparable(f.Italic, sub.Italic) &&
		containsComparable(f.Caps, sub.Caps) &&
		containsComparable(f.Color, sub.Color) &&
		containsComparable(f.Culture, sub.Culture) &&
		containsComparable(f.Effect, sub.Effect) &&
		containsComparable(f.Font, sub.Font) &&
		containsComparable(f.Highlight, sub.Highlight) &&
		containsComparable(f.Hidden, sub.Hidden) &&
		containsComparable(f.Kerning, sub.Kerning) &&
		containsComparable(f.ExpansionScale, sub.ExpansionScale) &&
		containsComparable(f.Position, sub.Position) &&
		containsComparable(f.Size, sub.Size) &&
		containsComparable(f.Spacing, sub.Spacing) &&
		containsComparable(f.Subscript, sub.Subscript) &&
		containsComparable(f.Superscript, sub.Superscript) &&
		containsComparable(f.StrikeThrough, sub.StrikeThrough) &&
		containsComparable(f.Underline, sub.Underline) &&
		containsComparable(f.UnderlineColor, sub.UnderlineColor) &&
		containsComparable(f.NoProof, sub.NoProof)
}

// emptyFormatting reports whether f is nil or has no property set.
func emptyFormatting(f *Formatting) bool {
	if f == nil {
		return true
	}
	return f.Equals(&Formatting{})
}

func eqBool(a, b *bool) bool {
	return eqComparable(a, b)
}

func eqComparable[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// containsComparable implements the subset rule for one property: no
// constraint when want is nil, otherwise have must be set and equal.
func containsComparable[T comparable](have, want *T) bool {
	if want == nil {
		return true
	}
	return have != nil && *have == *want
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
