package writer

import "strconv"

// ItemKind identifies the variant of an Item.
type ItemKind uint8

const (
	// KindNewLine is a line break.
	KindNewLine ItemKind = iota

	// KindTab is a literal tab character.
	KindTab

	// KindSpace is a single space.
	KindSpace

	// KindIndent is Count levels of indentation.
	KindIndent

	// KindText is a run of text.
	KindText
)

// String returns the lowercase name of the kind.
func (k ItemKind) String() string {
	switch k {
	case KindNewLine:
		return "newline"
	case KindTab:
		return "tab"
	case KindSpace:
		return "space"
	case KindIndent:
		return "indent"
	case KindText:
		return "text"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Text is an interned string with its precomputed character count.
// Texts are allocated by an Arena and must not be modified.
type Text struct {
	Value     string
	CharCount uint32
}

// Item is a single rendered unit stored in the output graph.
type Item struct {
	Kind ItemKind

	// Count is the indentation level for KindIndent.
	Count uint8

	// Text is set for KindText.
	Text *Text
}

// NewLineItem returns a line break item.
func NewLineItem() Item { return Item{Kind: KindNewLine} }

// TabItem returns a tab item.
func TabItem() Item { return Item{Kind: KindTab} }

// SpaceItem returns a space item.
func SpaceItem() Item { return Item{Kind: KindSpace} }

// IndentItem returns an indentation item of count levels.
func IndentItem(count uint8) Item { return Item{Kind: KindIndent, Count: count} }

// TextItem returns a text item.
func TextItem(text *Text) Item { return Item{Kind: KindText, Text: text} }

// String returns a short debug representation, e.g. `indent(2)` or `text("foo")`.
func (i Item) String() string {
	switch i.Kind {
	case KindIndent:
		return "indent(" + strconv.Itoa(int(i.Count)) + ")"
	case KindText:
		if i.Text == nil {
			return `text("")`
		}
		return "text(" + strconv.Quote(i.Text.Value) + ")"
	default:
		return i.Kind.String()
	}
}
