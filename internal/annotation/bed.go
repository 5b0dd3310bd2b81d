package annotation

import (
	"fmt"
	"strconv"
	"strings"
)

// BEDReader reads records from a BED file. Only the first three columns
// are mandatory; id, score and strand are optional trailing columns.
type BEDReader struct {
	src *source
}

// Next reads the next BED record. Returns nil, nil at end of file.
func (r *BEDReader) Next() (*Record, error) {
	line, ok, err := r.src.nextLine()
	if err != nil || !ok {
		return nil, err
	}

	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, fmt.Errorf("line %d: BED entry with missing fields: %q", r.src.lineNumber, line)
	}

	start, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("line %d: parse start: %w", r.src.lineNumber, err)
	}
	end, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("line %d: parse end: %w", r.src.lineNumber, err)
	}

	rec := &Record{
		Chr:   fields[0],
		Start: start,
		End:   end,
	}
	if len(fields) > 3 {
		rec.ID = fields[3]
	}
	if len(fields) > 4 {
		rec.Score = fields[4]
	}
	if len(fields) > 5 {
		rec.Strand = ParseStrand(fields[5])
	}
	return rec, nil
}

// Close closes the underlying file.
func (r *BEDReader) Close() error {
	return r.src.close()
}

// LineNumber returns the current line number being processed.
func (r *BEDReader) LineNumber() int {
	return r.src.lineNumber
}
