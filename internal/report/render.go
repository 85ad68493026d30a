package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/datainspect-cli/internal/utils"
)

// Sections selects which parts of the report the human-readable
// renderers show. JSON and YAML always carry the full report.
type Sections struct {
	Types       bool
	Summary     bool
	Diagnostics bool
}

// Render writes the report in the requested format.
func (r *Report) Render(w io.Writer, format string, s Sections) error {
	switch strings.ToLower(format) {
	case "json":
		return r.renderJSON(w)
	case "yaml", "yml":
		return r.renderYAML(w)
	case "md", "markdown":
		return r.renderMarkdown(w, s)
	case "", "table":
		return r.renderTable(w, s)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (r *Report) renderJSON(w io.Writer) error {
	b, err := utils.PrettyJSON(r)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func (r *Report) renderYAML(w io.Writer) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func (r *Report) renderTable(w io.Writer, s Sections) error {
	fmt.Fprintf(w, "File type: %s\n", r.FileType)
	fmt.Fprintf(w, "Rows: %d\n", r.Rows)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"Column"}
	if s.Types {
		header = append(header, "Type", "Kind")
	}
	if s.Summary {
		header = append(header, "Non-Null", "Missing", "Unique", "Min", "Max", "Mean", "Stddev", "Outliers")
	}
	if s.Diagnostics {
		header = append(header, "Diagnostics")
	}
	t.AppendHeader(header)

	for _, c := range r.Columns {
		row := table.Row{c.Name}
		if s.Types {
			row = append(row, c.Type, c.Kind)
		}
		if s.Summary {
			row = append(row,
				c.Rows-c.Missing,
				c.Missing,
				blankZero(c.Unique),
				fmtOpt(c.Min),
				fmtOpt(c.Max),
				fmtOpt(c.Mean),
				fmtOpt(c.Stddev),
				blankZero(c.Outliers),
			)
		}
		if s.Diagnostics {
			row = append(row, diagnosticsCell(c))
		}
		t.AppendRow(row)
	}
	t.Render()

	if len(r.Corrs) > 0 {
		fmt.Fprintln(w, "Correlations:")
		for _, p := range r.Corrs {
			fmt.Fprintf(w, "  %s ~ %s: r=%.3f (n=%d)\n", p.A, p.B, p.R, p.N)
		}
	}
	return nil
}

func (r *Report) renderMarkdown(w io.Writer, s Sections) error {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	b.WriteString(fmt.Sprintf("File: %s\n", r.File))
	b.WriteString(fmt.Sprintf("Type: %s\n", r.FileType))
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(r.Columns)))

	b.WriteString("\n[SCHEMA]\n")
	for _, c := range r.Columns {
		b.WriteString(fmt.Sprintf("- %s", c.Name))
		if s.Types {
			b.WriteString(fmt.Sprintf(": %s (%s)", c.Type, c.Kind))
		}
		if s.Summary {
			missPct := 0.0
			if r.Rows > 0 {
				missPct = float64(c.Missing) * 100 / float64(r.Rows)
			}
			b.WriteString(fmt.Sprintf(" non-null %d, missing %.1f%%", c.Rows-c.Missing, missPct))
			if c.Mean != nil {
				b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g", *c.Min, *c.Max, *c.Mean))
				if c.Stddev != nil {
					b.WriteString(fmt.Sprintf(", std %.4g", *c.Stddev))
				}
				if c.Outliers > 0 {
					b.WriteString(fmt.Sprintf("; outliers: %d", c.Outliers))
				}
			} else if c.Unique > 0 {
				b.WriteString(fmt.Sprintf(" — unique %d", c.Unique))
			}
		}
		b.WriteString("\n")
	}

	if s.Diagnostics {
		b.WriteString("\n[DIAGNOSTICS]\n")
		for _, c := range r.Columns {
			b.WriteString(fmt.Sprintf("- %s: %s\n", c.Name, diagnosticsCell(c)))
		}
	}

	if len(r.Corrs) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range r.Corrs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f (n=%d)\n", p.A, p.B, p.R, p.N))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func diagnosticsCell(c Column) string {
	if c.Status == StatusOK {
		return StatusOK
	}
	return strings.Join(c.Warnings, "; ")
}

func fmtOpt(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.4g", *v)
}

func blankZero(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
