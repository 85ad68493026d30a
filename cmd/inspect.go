package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datainspect-cli/internal/profile"
	"github.com/KaramelBytes/datainspect-cli/internal/report"
	"github.com/KaramelBytes/datainspect-cli/internal/source"
	"github.com/KaramelBytes/datainspect-cli/internal/utils"
)

var (
	insTypes      bool
	insSummary    bool
	insDiagnose   bool
	insCorr       bool
	insDelimiter  string
	insSheet      string
	insSheetIndex int
	insFormat     string
	insMaxRows    int
	insOutlierZ   float64
	insOutput     string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Profile a CSV/JSON/XLSX file in one streaming pass",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c := effectiveConfig()

		srcOpt := source.Options{Sheet: insSheet, SheetIndex: insSheetIndex}
		if insDelimiter != "" {
			switch insDelimiter {
			case ",":
				srcOpt.Delimiter = ','
			case ";":
				srcOpt.Delimiter = ';'
			case "\t", "tab":
				srcOpt.Delimiter = '\t'
			default:
				return fmt.Errorf("unsupported --delimiter: %s", insDelimiter)
			}
		}

		src, err := source.Open(path, srcOpt)
		if err != nil {
			return err
		}
		defer src.Close()

		outlierZ := c.OutlierZ
		if cmd.Flags().Changed("outlier-z") {
			outlierZ = insOutlierZ
		}
		tbl := profile.NewTable(src.Header(), profile.Options{
			OutlierZ:     outlierZ,
			Correlations: insCorr || c.Correlations,
		})

		maxRows := insMaxRows
		if maxRows <= 0 {
			maxRows = c.MaxRows
		}
		for {
			if maxRows > 0 && tbl.Rows() >= maxRows {
				debugf("stopping at --max-rows=%d", maxRows)
				break
			}
			row, err := src.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				// A broken source invalidates the whole profile.
				return fmt.Errorf("ingest %s: %w", path, err)
			}
			tbl.Ingest(row)
		}
		debugf("profiled %d rows, %d columns", tbl.Rows(), len(tbl.Headers()))

		rep := report.Build(tbl, report.Meta{File: path, FileType: source.Type(path)}, profile.Thresholds{
			MissingRatio:    c.MissingWarnRatio,
			UniqueRatio:     c.UniqueWarnRatio,
			NearConstantEps: c.NearConstantEps,
		})

		format := insFormat
		if format == "" {
			format = c.Format
		}
		sections := report.Sections{
			Types:       insTypes,
			Summary:     insSummary,
			Diagnostics: insDiagnose,
		}

		if insOutput != "" {
			var buf bytes.Buffer
			if err := rep.Render(&buf, format, sections); err != nil {
				return err
			}
			if err := utils.SafeWriteFile(insOutput, buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Report written: %s\n", insOutput)
			return nil
		}
		return rep.Render(cmd.OutOrStdout(), format, sections)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&insTypes, "types", false, "show inferred column types")
	inspectCmd.Flags().BoolVar(&insSummary, "summary", false, "show per-column statistics")
	inspectCmd.Flags().BoolVar(&insDiagnose, "diagnose", false, "show data-quality warnings")
	inspectCmd.Flags().BoolVar(&insCorr, "correlations", false, "track pairwise correlations across numeric columns")
	inspectCmd.Flags().StringVar(&insDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab' (default: by extension)")
	inspectCmd.Flags().StringVar(&insSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	inspectCmd.Flags().IntVar(&insSheetIndex, "sheet-index", 0, "XLSX sheet index, 1-based")
	inspectCmd.Flags().StringVarP(&insFormat, "format", "f", "", "output format: table|markdown|json|yaml")
	inspectCmd.Flags().IntVar(&insMaxRows, "max-rows", 0, "stop after N rows (0 = unlimited)")
	inspectCmd.Flags().Float64Var(&insOutlierZ, "outlier-z", 5.0, "z-score threshold for outlier counting")
	inspectCmd.Flags().StringVarP(&insOutput, "output", "o", "", "write the report to a file instead of stdout")
}
