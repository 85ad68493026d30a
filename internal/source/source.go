// Package source supplies tabular record streams to the profiler: a
// header naming each column and successive rows as ordered string
// slices aligned to it. An empty string is a missing value.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupported indicates a file format the inspector cannot read.
var ErrUnsupported = errors.New("unsupported file format")

// Source is an ordered stream of rows behind a fixed header.
type Source interface {
	// Header returns the ordered column names.
	Header() []string
	// Next returns the next row, padded to the header width. The
	// returned slice is only valid until the following call. io.EOF
	// signals a clean end of input.
	Next() ([]string, error)
	Close() error
}

// Options tune how files are opened.
type Options struct {
	// Delimiter for CSV input. 0 auto-detects from the extension.
	Delimiter rune
	// Sheet selects an XLSX worksheet by name. Empty uses SheetIndex.
	Sheet string
	// SheetIndex is the 1-based worksheet index; 0 means the first.
	SheetIndex int
}

// Type names the detected file type ("CSV", "JSON", "XLSX") or "" when
// the extension is not recognized.
func Type(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return "CSV"
	case ".json":
		return "JSON"
	case ".xlsx":
		return "XLSX"
	}
	return ""
}

// Open dispatches on the file extension and returns a row source.
func Open(path string, opt Options) (Source, error) {
	switch Type(path) {
	case "CSV":
		return OpenCSV(path, opt)
	case "JSON":
		return OpenJSON(path)
	case "XLSX":
		return OpenXLSX(path, opt)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}
