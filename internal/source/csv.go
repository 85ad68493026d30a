package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type csvSource struct {
	f      *os.File
	r      *csv.Reader
	header []string
	row    []string
	line   int
}

// OpenCSV opens a CSV or TSV file and reads its header row. The
// delimiter comes from opt.Delimiter, falling back to tab for .tsv and
// comma otherwise.
func OpenCSV(path string, opt Options) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if opt.Delimiter != 0 {
		r.Comma = opt.Delimiter
	} else if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		r.Comma = '\t'
	}

	header, err := r.Read()
	if err != nil {
		f.Close()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: %s is empty", filepath.Base(path))
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make([]string, len(header))
	for i, n := range header {
		h[i] = strings.TrimSpace(n)
	}

	return &csvSource{
		f:      f,
		r:      r,
		header: h,
		row:    make([]string, len(h)),
	}, nil
}

func (s *csvSource) Header() []string { return s.header }

func (s *csvSource) Next() ([]string, error) {
	rec, err := s.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read row %d: %w", s.line+1, err)
	}
	s.line++

	// Pad short rows so every row is index-aligned with the header.
	for i := range s.row {
		if i < len(rec) {
			s.row[i] = strings.TrimSpace(rec[i])
		} else {
			s.row[i] = ""
		}
	}
	return s.row, nil
}

func (s *csvSource) Close() error { return s.f.Close() }
