package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

type jsonSource struct {
	header  []string
	records []map[string]any
	pos     int
	row     []string
}

// OpenJSON reads a JSON file holding an array of flat objects or a
// single object. The header is the sorted key set of the first record;
// keys appearing only in later records are ignored, and absent or null
// fields surface as missing values. Numbers keep their literal form so
// the classifier sees what the file actually says.
func OpenJSON(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open json: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	var records []map[string]any
	switch v := doc.(type) {
	case []any:
		for i, el := range v {
			obj, ok := el.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("parse json: element %d is not an object", i)
			}
			records = append(records, obj)
		}
	case map[string]any:
		records = []map[string]any{v}
	default:
		return nil, fmt.Errorf("parse json: expected an object or an array of objects")
	}

	var header []string
	if len(records) > 0 {
		for k := range records[0] {
			header = append(header, k)
		}
		sort.Strings(header)
	}

	return &jsonSource{
		header:  header,
		records: records,
		row:     make([]string, len(header)),
	}, nil
}

func (s *jsonSource) Header() []string { return s.header }

func (s *jsonSource) Next() ([]string, error) {
	if s.pos >= len(s.records) {
		return nil, io.EOF
	}
	rec := s.records[s.pos]
	s.pos++

	for i, key := range s.header {
		s.row[i] = stringify(rec[key])
	}
	return s.row, nil
}

func (s *jsonSource) Close() error { return nil }

// stringify renders a decoded JSON value back to raw text. Nulls and
// absent keys become the empty string (missing).
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		// Nested arrays/objects count as opaque text.
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
