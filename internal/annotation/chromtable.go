package annotation

import (
	"fmt"
	"strconv"
	"strings"
)

// ChromTableReader reads strict 5-column tab-separated chromosome tables:
//
//	chrom <TAB> start <TAB> stop <TAB> strand <TAB> id
//
// Strand and id are mandatory.
type ChromTableReader struct {
	src *source
}

// Next reads the next chromosome-table record. Returns nil, nil at end of file.
func (r *ChromTableReader) Next() (*Record, error) {
	line, ok, err := r.src.nextLine()
	if err != nil || !ok {
		return nil, err
	}

	fields := strings.Split(line, "\t")
	if len(fields) < 5 {
		return nil, fmt.Errorf("line %d: chromosome-table entry with missing fields: %q", r.src.lineNumber, line)
	}

	start, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("line %d: parse start: %w", r.src.lineNumber, err)
	}
	end, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("line %d: parse stop: %w", r.src.lineNumber, err)
	}
	if fields[3] != "+" && fields[3] != "-" {
		return nil, fmt.Errorf("line %d: unrecognized strand %q", r.src.lineNumber, fields[3])
	}

	return &Record{
		Chr:    fields[0],
		Start:  start,
		End:    end,
		Strand: ParseStrand(fields[3]),
		ID:     fields[4],
	}, nil
}

// Close closes the underlying file.
func (r *ChromTableReader) Close() error {
	return r.src.close()
}

// LineNumber returns the current line number being processed.
func (r *ChromTableReader) LineNumber() int {
	return r.src.lineNumber
}
