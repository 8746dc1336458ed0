package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject(t *testing.T) {
	records := []Record{
		{FieldName: "Button", FieldID: "1", FieldDetails: "ignored"},
		{FieldName: "Card"},
	}
	assert.Equal(t, [][]string{{"1", "Button"}, {"", "Card"}}, Project(records, ColumnMap{FieldID, FieldName}))
	assert.Empty(t, Project(nil, ColumnMap{FieldName}))
}

func TestDiff(t *testing.T) {
	expected := []Record{{FieldName: "Button"}, {FieldName: "Card"}}

	t.Run("equal", func(t *testing.T) {
		rendered := Rendered{Columns: ColumnMap{FieldName}, Rows: [][]string{{" Button "}, {"Card"}}}
		assert.Empty(t, Diff(expected, rendered, TextTrimmed))
		assert.NotEmpty(t, Diff(expected, rendered, TextRaw))
	})

	t.Run("shows both sides", func(t *testing.T) {
		rendered := Rendered{Columns: ColumnMap{FieldName}, Rows: [][]string{{"Button"}, {"Chip"}}}
		d := Diff(expected, rendered, TextRaw)
		assert.Contains(t, d, `"Card"`)
		assert.Contains(t, d, `"Chip"`)
	})

	t.Run("short render differs even when compare passes", func(t *testing.T) {
		rendered := Rendered{Columns: ColumnMap{FieldName}, Rows: [][]string{{"Button"}}}
		assert.True(t, Compare(expected, rendered, TextRaw))
		assert.NotEmpty(t, Diff(expected, rendered, TextRaw))
	})
}

func TestMismatchError(t *testing.T) {
	err := &MismatchError{Mismatch: Mismatch{Row: 0, Column: 1, Field: FieldID, Expected: "1", Actual: "2"}}
	assert.Equal(t, `listing mismatch: row 1, column 2 (id): expected "1", rendered "2"`, err.Error())
	assert.ErrorIs(t, err, ErrListingMismatch)
}
