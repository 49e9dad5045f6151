package validator

import (
	"bufio"
	"bytes"
	"iter"
	"strings"

	"github.com/geofeed/validator/pkg/field"
	"github.com/geofeed/validator/pkg/result"
)

// CSVReader reads one record per line. Values are split on commas and
// matched to the fields by position. Blank lines and lines starting with
// "#" yield records without values.
type CSVReader struct{}

// RecordName implements RecordReader.
func (CSVReader) RecordName() string { return "line" }

// Records implements RecordReader.
func (CSVReader) Records(data []byte, fields []*field.Field) iter.Seq2[result.Values, string] {
	return func(yield func(result.Values, string) bool) {
		sc := bufio.NewScanner(bytes.NewReader(data))
		sc.Buffer(make([]byte, 0, 4096), len(data)+1)

		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if !yield(ParseLine(line, fields), line) {
				return
			}
		}
	}
}

// ParseLine splits a trimmed line into values.
func ParseLine(line string, fields []*field.Field) result.Values {
	if line == "" || strings.HasPrefix(line, "#") {
		return result.Values{}
	}

	parts := strings.Split(line, ",")
	v := result.Values{Fields: make(map[string]string, len(fields))}
	for i, f := range fields {
		if i >= len(parts) {
			break
		}
		v.Fields[f.Name()] = parts[i]
	}
	if len(parts) > len(fields) {
		v.Extra = parts[len(fields):]
	}
	return v
}
