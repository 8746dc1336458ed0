package listing

import (
	"errors"
	"fmt"

	"github.com/stretchr/testify/require"
)

// ErrListingMismatch is returned when the rendered page does not match the reference dataset.
var ErrListingMismatch = errors.New("listing mismatch")

// Table exposes the rendered state of a sortable, paginated table.
// Implementations read it live from the browser; every call may be a round-trip.
type Table interface {
	// HeaderIdentities returns the record field each data column displays, selection column excluded.
	HeaderIdentities() (ColumnMap, error)
	// BodyRows returns cell text per rendered row, selection cell excluded.
	BodyRows() ([][]string, error)
	// ActiveSort returns the sort indicated by the header, zero SortConfig when unsorted.
	ActiveSort() (SortConfig, error)
	// RangeLabel returns the raw paginator label, e.g. "1 - 10 of 42".
	RangeLabel() (string, error)
	// PageSize returns the number of records per page.
	PageSize() (int, error)
}

// SortSource tells Verify where the sort configuration comes from.
type SortSource struct {
	fromUI bool
	cfg    SortConfig
}

// SortFromUI reads the active sort indicator from the table.
var SortFromUI = SortSource{fromUI: true}

// FixedSort applies cfg without consulting the table. FixedSort(SortConfig{}) keeps the natural order.
func FixedSort(cfg SortConfig) SortSource {
	return SortSource{cfg: cfg}
}

// Verifier checks a rendered table against a reference dataset.
// It does not wait: the caller makes sure the UI has settled before calling Verify.
type Verifier struct {
	Table Table
	Text  TextMode
}

// Expected returns the page of reference records the table should be showing.
func (v *Verifier) Expected(reference []Record, src SortSource) ([]Record, error) {
	cfg := src.cfg
	if src.fromUI {
		var err error
		if cfg, err = v.Table.ActiveSort(); err != nil {
			return nil, fmt.Errorf("read sort: %w", err)
		}
	}

	label, err := v.Table.RangeLabel()
	if err != nil {
		return nil, fmt.Errorf("read range label: %w", err)
	}
	state, err := ParseRangeLabel(label)
	if err != nil {
		return nil, err
	}
	if state.PageSize, err = v.Table.PageSize(); err != nil {
		return nil, fmt.Errorf("read page size: %w", err)
	}

	return Slice(SimulateSort(reference, cfg), state), nil
}

// Verify sorts and slices reference the way the table claims to and compares it with the rendered rows.
// A disagreement is reported as a *MismatchError, which matches ErrListingMismatch.
func (v *Verifier) Verify(reference []Record, src SortSource) error {
	expected, err := v.Expected(reference, src)
	if err != nil {
		return err
	}

	rendered, err := v.Snapshot()
	if err != nil {
		return err
	}

	if m, found := FirstMismatch(expected, rendered, v.Text); found {
		return &MismatchError{Mismatch: m, Diff: Diff(expected, rendered, v.Text)}
	}
	return nil
}

// Snapshot reads headers and rows from the table.
func (v *Verifier) Snapshot() (Rendered, error) {
	cols, err := v.Table.HeaderIdentities()
	if err != nil {
		return Rendered{}, fmt.Errorf("read headers: %w", err)
	}
	rows, err := v.Table.BodyRows()
	if err != nil {
		return Rendered{}, fmt.Errorf("read rows: %w", err)
	}
	return Rendered{Columns: cols, Rows: rows}, nil
}

// Expect fails the test immediately when Verify reports an error.
func (v *Verifier) Expect(t require.TestingT, reference []Record, src SortSource) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	require.NoError(t, v.Verify(reference, src), "listing should match reference dataset")
}
