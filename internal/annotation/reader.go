package annotation

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrUnsupportedFiletype is returned by Open for file extensions it does
// not recognize.
var ErrUnsupportedFiletype = errors.New("unsupported annotation filetype")

// Reader reads annotation records one at a time.
// All formats implement this interface.
type Reader interface {
	// Next reads the next record.
	// Returns nil, nil when there are no more records.
	Next() (*Record, error)

	// Close closes the reader and releases resources.
	Close() error

	// LineNumber returns the current line number being processed.
	LineNumber() int
}

// Open opens an annotation file and selects a reader by extension:
// .gff/.gff3 for GFF3, .bed for BED, each optionally gzip-compressed.
// Compression is detected from the gzip magic header, not the extension.
// Chromosome tables have no reserved extension; use OpenChromTable.
func Open(path string) (Reader, error) {
	base := strings.ToLower(path)
	base = strings.TrimSuffix(base, ".gz")

	switch {
	case strings.HasSuffix(base, ".gff"), strings.HasSuffix(base, ".gff3"):
		src, err := openSource(path)
		if err != nil {
			return nil, err
		}
		return &GFF3Reader{src: src}, nil
	case strings.HasSuffix(base, ".bed"):
		src, err := openSource(path)
		if err != nil {
			return nil, err
		}
		return &BEDReader{src: src}, nil
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFiletype)
	}
}

// OpenChromTable opens a chromosome-table file. The format is selected
// explicitly because such tables carry no conventional extension.
func OpenChromTable(path string) (Reader, error) {
	src, err := openSource(path)
	if err != nil {
		return nil, err
	}
	return &ChromTableReader{src: src}, nil
}

// source handles file opening, transparent gzip decompression and
// comment/blank-line skipping shared by all readers.
type source struct {
	file       *os.File
	gzipReader *gzip.Reader
	scanner    *bufio.Scanner
	lineNumber int
}

// openSource opens a file and sniffs the gzip magic number (0x1f, 0x8b)
// to decide whether to decompress.
func openSource(path string) (*source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotation file: %w", err)
	}

	buf := make([]byte, 2)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read annotation file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek annotation file: %w", err)
	}

	s := &source{file: file}
	var reader io.Reader = file
	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		s.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		reader = s.gzipReader
	}

	s.scanner = bufio.NewScanner(reader)
	// Some annotation lines (attribute-heavy GFF3) run long.
	sbuf := make([]byte, 0, 64*1024)
	s.scanner.Buffer(sbuf, 1024*1024)
	return s, nil
}

// nextLine returns the next non-blank, non-comment line, or ok=false at EOF.
func (s *source) nextLine() (line string, ok bool, err error) {
	for s.scanner.Scan() {
		s.lineNumber++
		line = s.scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true, nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", false, fmt.Errorf("scan annotation file: %w", err)
	}
	return "", false, nil
}

func (s *source) close() error {
	var errs []error
	if s.gzipReader != nil {
		errs = append(errs, s.gzipReader.Close())
	}
	if s.file != nil {
		errs = append(errs, s.file.Close())
	}
	return errors.Join(errs...)
}
