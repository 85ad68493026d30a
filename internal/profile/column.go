package profile

import (
	"math"
	"strconv"
)

// Kind is the inferred kind of a column. It starts undetermined, leans
// categorical, and may be promoted to numeric exactly once. There is no
// transition out of KindNumeric.
type Kind uint8

const (
	KindUndetermined Kind = iota
	KindCategorical
	KindNumeric
)

func (k Kind) String() string {
	switch k {
	case KindCategorical:
		return "categorical"
	case KindNumeric:
		return "numeric"
	}
	return "unknown"
}

// nextKind is the one-way kind transition. Numeric is terminal; any
// integer or float evidence moves an undetermined or categorical column
// to numeric, anything else settles an undetermined column as categorical.
func nextKind(cur Kind, c Class) Kind {
	if cur == KindNumeric || c.Numeric() {
		return KindNumeric
	}
	return KindCategorical
}

// numericState accumulates Welford moments and outlier counts. It is
// allocated on promotion and starts empty: values observed while the
// column was still categorical are not folded in retroactively.
type numericState struct {
	n        int // samples folded into the moments
	mean     float64
	m2       float64
	min      float64
	max      float64
	sawFloat bool

	parseFailures int
	outliers      int
}

func (s *numericState) fold(x float64, zThreshold float64) {
	// Judge x against the statistics as they stood before it, so a
	// point never vouches for itself. Needs at least two prior samples.
	if s.n >= 2 {
		if sd := math.Sqrt(s.m2 / float64(s.n-1)); sd > 0 {
			if math.Abs(x-s.mean)/sd >= zThreshold {
				s.outliers++
			}
		}
	}

	s.n++
	delta := x - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (x - s.mean)

	if s.n == 1 {
		s.min, s.max = x, x
		return
	}
	if x < s.min {
		s.min = x
	}
	if x > s.max {
		s.max = x
	}
}

// categoricalState tracks the distinct non-empty values seen. boolOnly
// stays true while every value classifies as a boolean literal.
type categoricalState struct {
	uniques  map[string]struct{}
	boolOnly bool
	seen     bool
}

func (s *categoricalState) observe(raw string, c Class) {
	if !s.seen {
		s.boolOnly = c == ClassBool
		s.seen = true
	} else if c != ClassBool {
		s.boolOnly = false
	}
	s.uniques[raw] = struct{}{}
}

// ColumnProfile aggregates one column of a row stream. Exactly one of the
// numeric and categorical sub-states is live once the kind is decided;
// promotion swaps the variant and discards the unique set.
type ColumnProfile struct {
	name     string
	kind     Kind
	total    int
	missing  int
	outlierZ float64

	num *numericState
	cat *categoricalState
}

// DefaultOutlierZ is the z-score at or above which a numeric value is
// counted as an extreme outlier.
const DefaultOutlierZ = 5.0

func NewColumnProfile(name string) *ColumnProfile {
	return NewColumnProfileZ(name, DefaultOutlierZ)
}

// NewColumnProfileZ creates a profile with a custom outlier threshold.
func NewColumnProfileZ(name string, outlierZ float64) *ColumnProfile {
	if outlierZ <= 0 {
		outlierZ = DefaultOutlierZ
	}
	return &ColumnProfile{
		name:     name,
		kind:     KindUndetermined,
		outlierZ: outlierZ,
		cat:      &categoricalState{uniques: make(map[string]struct{})},
	}
}

// Observe folds one raw value into the profile. Empty values count as
// missing and touch no other state.
func (p *ColumnProfile) Observe(raw string) {
	p.total++
	if raw == "" {
		p.missing++
		return
	}

	c := Classify(raw)
	if next := nextKind(p.kind, c); next != p.kind {
		if next == KindNumeric {
			p.num = &numericState{}
			p.cat = nil
		}
		p.kind = next
	}

	if p.kind == KindNumeric {
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			p.num.parseFailures++
			return
		}
		if c == ClassFloat {
			p.num.sawFloat = true
		}
		p.num.fold(x, p.outlierZ)
		return
	}

	p.cat.observe(raw, c)
}

func (p *ColumnProfile) Name() string { return p.name }
func (p *ColumnProfile) Kind() Kind   { return p.kind }
func (p *ColumnProfile) Total() int   { return p.total }
func (p *ColumnProfile) Missing() int { return p.missing }

// Class reports the most specific lexical class the column satisfies:
// integer narrows to float once a fractional value appears, and a
// categorical column of pure boolean literals reports boolean.
func (p *ColumnProfile) Class() Class {
	switch p.kind {
	case KindNumeric:
		if p.num.sawFloat {
			return ClassFloat
		}
		return ClassInt
	case KindCategorical:
		if p.cat.seen && p.cat.boolOnly {
			return ClassBool
		}
	}
	return ClassString
}

// NumericCount is the number of values folded into the moments.
func (p *ColumnProfile) NumericCount() int {
	if p.num == nil {
		return 0
	}
	return p.num.n
}

// ParseFailures counts values that failed to parse as a number after the
// column was declared numeric.
func (p *ColumnProfile) ParseFailures() int {
	if p.num == nil {
		return 0
	}
	return p.num.parseFailures
}

// Outliers counts values at or beyond the z-score threshold, judged
// against the statistics prior to their own insertion.
func (p *ColumnProfile) Outliers() int {
	if p.num == nil {
		return 0
	}
	return p.num.outliers
}

// Mean is defined once at least one numeric value has been folded.
func (p *ColumnProfile) Mean() (float64, bool) {
	if p.num == nil || p.num.n == 0 {
		return 0, false
	}
	return p.num.mean, true
}

// Min is defined once at least one numeric value has been folded.
func (p *ColumnProfile) Min() (float64, bool) {
	if p.num == nil || p.num.n == 0 {
		return 0, false
	}
	return p.num.min, true
}

// Max is defined once at least one numeric value has been folded.
func (p *ColumnProfile) Max() (float64, bool) {
	if p.num == nil || p.num.n == 0 {
		return 0, false
	}
	return p.num.max, true
}

// Stddev is the Bessel-corrected sample standard deviation, defined only
// when more than one numeric value has been folded.
func (p *ColumnProfile) Stddev() (float64, bool) {
	if p.num == nil || p.num.n < 2 {
		return 0, false
	}
	return math.Sqrt(p.num.m2 / float64(p.num.n-1)), true
}

// UniqueCount is the number of distinct non-empty values seen while the
// column is categorical. Zero after promotion: the set is discarded.
func (p *ColumnProfile) UniqueCount() int {
	if p.cat == nil {
		return 0
	}
	return len(p.cat.uniques)
}
