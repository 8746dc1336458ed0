// Package listing reconciles a rendered, sorted and paginated table against a reference dataset.
// The reference dataset is sorted the way the UI claims to sort it, sliced to the page the UI
// claims to show, and compared cell by cell with what the browser actually rendered.
package listing

// Record is one row of the reference dataset, keyed by field name.
// Values are display strings; comparison is always textual.
type Record map[string]string

// Field names used by Leggera mainform listings.
const (
	FieldName             = "name"
	FieldID               = "id"
	FieldCollection       = "collection"
	FieldDetails          = "details"
	FieldApplicationLabel = "applicationLabel"
	FieldExtension        = "extension"
	FieldCollectionLabel  = "collectionLabel"
	FieldLastEdit         = "lastEdit"
)

// Direction of an active sort.
type Direction string

// Direction values match the aria-sort attribute.
const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// ParseDirection maps an aria-sort value to a Direction.
// anything other than "ascending" sorts descending, the same way the UI helper treats it.
func ParseDirection(ariaSort string) Direction {
	if ariaSort == string(Ascending) {
		return Ascending
	}
	return Descending
}

// SortConfig is the column and direction a table is sorted by. The zero value means no sort.
type SortConfig struct {
	Column    string
	Direction Direction
}

// IsNone reports whether no column is actively sorted.
func (c SortConfig) IsNone() bool {
	return c.Column == ""
}

// TextMode controls how rendered cell text is normalized before comparison.
type TextMode int

const (
	// TextRaw compares the cell text content as rendered, whitespace included.
	TextRaw TextMode = iota
	// TextTrimmed strips leading and trailing whitespace from the cell text first.
	TextTrimmed
)

func (m TextMode) String() string {
	switch m {
	case TextRaw:
		return "raw"
	case TextTrimmed:
		return "trimmed"
	default:
		return "unknown"
	}
}
