package listing

import (
	"slices"
	"unicode/utf16"
)

// SimulateSort returns records in the order the UI displays them for cfg.
// The sort is stable and ties keep their original relative order in both directions.
// The input is never modified.
//
// Values are compared by UTF-16 code units, the way the browser compares strings, so characters
// outside the basic multilingual plane sort before U+E000..U+FFFF as they do in the app.
func SimulateSort(records []Record, cfg SortConfig) []Record {
	if cfg.IsNone() {
		return slices.Clone(records)
	}

	type keyed struct {
		rec Record
		key []uint16
	}
	rows := make([]keyed, len(records))
	for i, r := range records {
		rows[i] = keyed{rec: r, key: utf16.Encode([]rune(r[cfg.Column]))}
	}

	sign := 1
	if cfg.Direction != Ascending {
		sign = -1
	}
	slices.SortStableFunc(rows, func(a, b keyed) int {
		return sign * slices.Compare(a.key, b.key)
	})

	res := make([]Record, len(rows))
	for i, r := range rows {
		res[i] = r.rec
	}
	return res
}
