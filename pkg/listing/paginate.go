package listing

import (
	"fmt"
	"strconv"
	"strings"
)

// PaginationState is the page the UI claims to show.
// FirstRecordIndex is 1-based, as displayed to the user.
type PaginationState struct {
	FirstRecordIndex int
	PageSize         int
	TotalRecords     int
}

// ParseError reports a paginator range label that does not have the "X - Y of Z" shape.
type ParseError struct {
	Label  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse range label %q: %s", e.Label, e.Reason)
}

// ParseRangeLabel reads FirstRecordIndex and TotalRecords from a label such as "1 - 10 of 42".
// The first record is the text before the first "-", the total is the last space separated token.
// PageSize is not part of the label and is left zero.
func ParseRangeLabel(label string) (PaginationState, error) {
	trimmed := strings.TrimSpace(label)

	head, _, found := strings.Cut(trimmed, "-")
	if !found {
		return PaginationState{}, &ParseError{Label: label, Reason: `missing "-" separator`}
	}
	first, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return PaginationState{}, &ParseError{Label: label, Reason: fmt.Sprintf("first record %q is not a number", strings.TrimSpace(head))}
	}

	// the word between range and total is localized ("of", "de"), only the last token is read
	tokens := strings.Split(trimmed, " ")
	last := tokens[len(tokens)-1]
	total, err := strconv.Atoi(last)
	if err != nil {
		return PaginationState{}, &ParseError{Label: label, Reason: fmt.Sprintf("total %q is not a number", last)}
	}

	return PaginationState{FirstRecordIndex: first, TotalRecords: total}, nil
}

// Slice returns the page of records described by state: PageSize records starting at
// FirstRecordIndex-1, fewer on the last page, none past the end.
// FirstRecordIndex below 1 is a caller bug and panics with an out of range slice.
func Slice(records []Record, state PaginationState) []Record {
	start := state.FirstRecordIndex - 1
	if start >= len(records) {
		return []Record{}
	}
	end := min(start+state.PageSize, len(records))
	if end < start {
		end = start
	}
	res := make([]Record, end-start)
	copy(res, records[start:end])
	return res
}
