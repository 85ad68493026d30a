package profile

import "strconv"

// Options controls profiling behavior for a table.
type Options struct {
	// OutlierZ is the z-score threshold for outlier counting; 0 uses
	// DefaultOutlierZ.
	OutlierZ float64
	// Correlations enables streaming pairwise Pearson accumulation
	// across numeric columns.
	Correlations bool
}

// Table profiles an ordered row stream, one ColumnProfile per column
// index. Profiles are created lazily the first time a row supplies a
// value for their index and stay nil for columns no row ever reaches.
type Table struct {
	headers []string
	cols    []*ColumnProfile
	rows    int
	opt     Options
	corr    *corrTracker
}

// NewTable fixes the column layout from the header row.
func NewTable(header []string, opt Options) *Table {
	t := &Table{
		headers: append([]string(nil), header...),
		cols:    make([]*ColumnProfile, len(header)),
		opt:     opt,
	}
	if opt.Correlations {
		t.corr = newCorrTracker(len(header))
	}
	return t
}

// Ingest folds one row into the per-column profiles. Rows are assumed
// index-aligned with the header; the source pads or rejects malformed
// rows before they get here.
func (t *Table) Ingest(row []string) {
	t.rows++

	var nums map[int]float64
	for i, v := range row {
		if i >= len(t.cols) {
			break
		}
		if t.cols[i] == nil {
			t.cols[i] = NewColumnProfileZ(t.headers[i], t.opt.OutlierZ)
		}
		t.cols[i].Observe(v)

		if t.corr != nil && v != "" && t.cols[i].Kind() == KindNumeric {
			if x, err := strconv.ParseFloat(v, 64); err == nil {
				if nums == nil {
					nums = make(map[int]float64, len(row))
				}
				nums[i] = x
			}
		}
	}

	if t.corr != nil && len(nums) >= 2 {
		t.corr.observeRow(nums)
	}
}

// Rows is the total number of ingested rows.
func (t *Table) Rows() int { return t.rows }

// Headers returns the column names fixed at construction.
func (t *Table) Headers() []string { return t.headers }

// Columns returns the per-index profiles in header order. Entries are
// nil for columns never reached by any row.
func (t *Table) Columns() []*ColumnProfile { return t.cols }

// CorrPairs returns column pairs ordered by |r| descending, or nil when
// correlation tracking is disabled.
func (t *Table) CorrPairs() []CorrPair {
	if t.corr == nil {
		return nil
	}
	return t.corr.pairsByStrength(t.headers)
}
