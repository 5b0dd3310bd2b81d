package annotation

import (
	"fmt"
	"strconv"
	"strings"
)

// GFF3Reader reads records from a GFF3 file.
// The record id is taken from the first value of the ID attribute.
type GFF3Reader struct {
	src *source
}

// Next reads the next GFF3 record. Returns nil, nil at end of file.
func (r *GFF3Reader) Next() (*Record, error) {
	line, ok, err := r.src.nextLine()
	if err != nil || !ok {
		return nil, err
	}

	rec, err := parseGFF3Line(line)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", r.src.lineNumber, err)
	}
	return rec, nil
}

// Close closes the underlying file.
func (r *GFF3Reader) Close() error {
	return r.src.close()
}

// LineNumber returns the current line number being processed.
func (r *GFF3Reader) LineNumber() int {
	return r.src.lineNumber
}

// parseGFF3Line parses one 9-column GFF3 line. A "." in the source, class,
// score or strand columns means the value is absent.
func parseGFF3Line(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, fmt.Errorf("invalid GFF3 line: expected 9 fields, got %d", len(fields))
	}

	start, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}
	end, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}

	attrs, err := parseGFF3Attributes(fields[8])
	if err != nil {
		return nil, err
	}

	rec := &Record{
		Chr:     fields[0],
		Start:   start,
		End:     end,
		Strand:  ParseStrand(fields[6]),
		Classed: true,
	}
	if fields[2] != "." {
		rec.Class = fields[2]
	}
	if fields[5] != "." {
		rec.Score = fields[5]
	}
	if ids := attrs["id"]; len(ids) > 0 {
		rec.ID = ids[0]
	}
	return rec, nil
}

// parseGFF3Attributes parses the attribute column.
// Format: key=value;key=value, values comma-split into multi-values.
// Keys are lowercased so that ID, Id and id all address the same attribute.
func parseGFF3Attributes(attrStr string) (map[string][]string, error) {
	attrs := make(map[string][]string)
	for _, pair := range strings.Split(attrStr, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.Split(pair, "=")
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed attribute entry %q", pair)
		}
		key := strings.ToLower(kv[0])
		attrs[key] = strings.Split(kv[1], ",")
	}
	return attrs, nil
}
