package profile

import (
	"fmt"
	"math"
)

// Thresholds parameterize the diagnostics rules. Zero values fall back
// to the defaults.
type Thresholds struct {
	// MissingRatio above which a missing-values warning fires.
	MissingRatio float64
	// UniqueRatio of non-missing values above which a categorical
	// column is flagged as a likely identifier.
	UniqueRatio float64
	// NearConstantEps bounds |max-min| for the near-constant warning.
	NearConstantEps float64
}

// DefaultThresholds returns the stock rule thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MissingRatio:    0.05,
		UniqueRatio:     0.95,
		NearConstantEps: 1e-12,
	}
}

func (t Thresholds) withDefaults() Thresholds {
	d := DefaultThresholds()
	if t.MissingRatio <= 0 {
		t.MissingRatio = d.MissingRatio
	}
	if t.UniqueRatio <= 0 {
		t.UniqueRatio = d.UniqueRatio
	}
	if t.NearConstantEps <= 0 {
		t.NearConstantEps = d.NearConstantEps
	}
	return t
}

// Diagnose applies the stock rule set to a finished profile.
func Diagnose(p *ColumnProfile, totalRows int) []string {
	return DiagnoseWith(p, totalRows, DefaultThresholds())
}

// DiagnoseWith produces the ordered warning list for a finished profile.
// Rule order is fixed so repeated runs over the same profile yield the
// identical list. An empty result means the column is clean; rendering
// that state as "ok" is the reporter's job.
func DiagnoseWith(p *ColumnProfile, totalRows int, th Thresholds) []string {
	if p == nil || totalRows <= 0 {
		return nil
	}
	th = th.withDefaults()

	var warnings []string

	missingRatio := float64(p.Missing()) / float64(totalRows)
	if missingRatio > th.MissingRatio {
		warnings = append(warnings, fmt.Sprintf("missing values: %d%%",
			int(math.Round(missingRatio*100))))
	}

	switch p.Kind() {
	case KindCategorical:
		nonMissing := totalRows - p.Missing()
		if nonMissing > 0 {
			uniqueRatio := float64(p.UniqueCount()) / float64(nonMissing)
			if uniqueRatio > th.UniqueRatio {
				warnings = append(warnings, fmt.Sprintf(
					"high cardinality: %.1f%% unique (likely identifier)",
					uniqueRatio*100))
			}
		}
	case KindNumeric:
		if mn, ok := p.Min(); ok {
			if mx, _ := p.Max(); math.Abs(mx-mn) < th.NearConstantEps {
				warnings = append(warnings, "near-constant numeric column")
			}
		}
		if p.ParseFailures() > 0 {
			warnings = append(warnings, "mixed numeric and non-numeric values")
		}
		if n := p.Outliers(); n > 0 {
			warnings = append(warnings, fmt.Sprintf(
				"extreme outliers detected: %d values >= %gσ", n, p.outlierZ))
		}
	}

	return warnings
}
