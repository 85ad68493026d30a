// Package report turns finished profiles into human and machine
// readable output.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/datainspect-cli/internal/profile"
)

// StatusOK marks a column with no diagnostics findings. Callers
// distinguish the clean state explicitly rather than by an absent list.
const StatusOK = "ok"

// StatusWarnings marks a column with at least one finding.
const StatusWarnings = "warnings"

// Report is a finalized inspection result.
type Report struct {
	ID          string        `json:"id" yaml:"id"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	File        string        `json:"file" yaml:"file"`
	FileType    string        `json:"file_type" yaml:"file_type"`
	Rows        int           `json:"rows" yaml:"rows"`
	Columns     []Column      `json:"columns" yaml:"columns"`
	Corrs       []Correlation `json:"correlations,omitempty" yaml:"correlations,omitempty"`
}

// Column is the reported view of one column profile.
type Column struct {
	Name    string `json:"name" yaml:"name"`
	Kind    string `json:"kind" yaml:"kind"`
	Type    string `json:"type" yaml:"type"`
	Rows    int    `json:"rows" yaml:"rows"`
	Missing int    `json:"missing" yaml:"missing"`
	Unique  int    `json:"unique,omitempty" yaml:"unique,omitempty"`

	NumericCount  int      `json:"numeric_count,omitempty" yaml:"numeric_count,omitempty"`
	Min           *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max           *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Mean          *float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Stddev        *float64 `json:"stddev,omitempty" yaml:"stddev,omitempty"`
	ParseFailures int      `json:"parse_failures,omitempty" yaml:"parse_failures,omitempty"`
	Outliers      int      `json:"outliers,omitempty" yaml:"outliers,omitempty"`

	Status   string   `json:"status" yaml:"status"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Correlation mirrors a profiled column pair for serialization.
type Correlation struct {
	A string  `json:"a" yaml:"a"`
	B string  `json:"b" yaml:"b"`
	R float64 `json:"r" yaml:"r"`
	N int     `json:"n" yaml:"n"`
}

// Meta identifies the inspected input.
type Meta struct {
	File     string
	FileType string
}

// Build snapshots a finished table into a Report, running diagnostics
// over every column with the given thresholds.
func Build(t *profile.Table, meta Meta, th profile.Thresholds) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		File:        meta.File,
		FileType:    meta.FileType,
		Rows:        t.Rows(),
	}

	headers := t.Headers()
	for i, p := range t.Columns() {
		c := Column{Name: headers[i], Kind: profile.KindUndetermined.String(), Type: "unknown", Status: StatusOK}
		if p != nil {
			c = buildColumn(p, t.Rows(), th)
		}
		r.Columns = append(r.Columns, c)
	}

	for _, pair := range t.CorrPairs() {
		r.Corrs = append(r.Corrs, Correlation{A: pair.A, B: pair.B, R: pair.R, N: pair.N})
	}
	return r
}

func buildColumn(p *profile.ColumnProfile, totalRows int, th profile.Thresholds) Column {
	c := Column{
		Name:    p.Name(),
		Kind:    p.Kind().String(),
		Type:    p.Class().String(),
		Rows:    p.Total(),
		Missing: p.Missing(),
		Unique:  p.UniqueCount(),
		Status:  StatusOK,
	}
	if p.Kind() == profile.KindUndetermined {
		// Only empty values seen; the column never produced type evidence.
		c.Type = "unknown"
	}

	if p.Kind() == profile.KindNumeric {
		c.NumericCount = p.NumericCount()
		c.ParseFailures = p.ParseFailures()
		c.Outliers = p.Outliers()
		if v, ok := p.Min(); ok {
			c.Min = &v
		}
		if v, ok := p.Max(); ok {
			c.Max = &v
		}
		if v, ok := p.Mean(); ok {
			c.Mean = &v
		}
		if v, ok := p.Stddev(); ok {
			c.Stddev = &v
		}
	}

	if warnings := profile.DiagnoseWith(p, totalRows, th); len(warnings) > 0 {
		c.Status = StatusWarnings
		c.Warnings = warnings
	}
	return c
}
