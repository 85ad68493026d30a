package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxSource struct {
	header []string
	rows   [][]string
	pos    int
	row    []string
}

// OpenXLSX reads one worksheet of an .xlsx workbook, treating the first
// row as the header. opt.Sheet selects a sheet by name, opt.SheetIndex
// by 1-based position; the default is the first sheet.
func OpenXLSX(path string, opt Options) (Source, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer wb.Close()

	sheet, err := pickSheet(wb, opt)
	if err != nil {
		return nil, err
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read sheet %q: no rows", sheet)
	}

	header := make([]string, len(rows[0]))
	for i, n := range rows[0] {
		header[i] = strings.TrimSpace(n)
	}

	return &xlsxSource{
		header: header,
		rows:   rows[1:],
		row:    make([]string, len(header)),
	}, nil
}

func pickSheet(wb *excelize.File, opt Options) (string, error) {
	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("open xlsx: workbook has no sheets")
	}
	if opt.Sheet != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				return s, nil
			}
		}
		return "", fmt.Errorf("open xlsx: no sheet named %q", opt.Sheet)
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("open xlsx: sheet index %d out of range (have %d)", idx, len(sheets))
	}
	return sheets[idx-1], nil
}

func (s *xlsxSource) Header() []string { return s.header }

func (s *xlsxSource) Next() ([]string, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	rec := s.rows[s.pos]
	s.pos++

	// excelize drops trailing empty cells; pad to the header width.
	for i := range s.row {
		if i < len(rec) {
			s.row[i] = strings.TrimSpace(rec[i])
		} else {
			s.row[i] = ""
		}
	}
	return s.row, nil
}

func (s *xlsxSource) Close() error { return nil }
