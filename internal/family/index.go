// Package family builds the gene-family index: a mapping from external
// gene identifiers to integer family ids.
package family

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// firstFamilyID is the id assigned to the first family processed.
const firstFamilyID = 0

// Index maps external gene identifiers to family ids.
// Ids are assigned sequentially in file processing order, so building
// twice over the same inputs yields an identical mapping.
type Index struct {
	members map[string]int
	names   map[int]string
	next    int
}

// Resolve returns the family id for an external gene identifier.
func (x *Index) Resolve(id string) (int, bool) {
	fam, ok := x.members[id]
	return fam, ok
}

// Name returns the generated display name of a family, or "" if the
// family id is unknown.
func (x *Index) Name(family int) string {
	return x.names[family]
}

// Count returns the number of families registered.
func (x *Index) Count() int {
	return x.next - firstFamilyID
}

// MemberCount returns the number of external ids registered.
func (x *Index) MemberCount() int {
	return len(x.members)
}

// Builder reads family-membership files into an Index.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a family index builder.
func NewBuilder() *Builder {
	return &Builder{logger: zap.NewNop()}
}

// SetLogger sets the logger for progress and diagnostic messages.
func (b *Builder) SetLogger(l *zap.Logger) {
	b.logger = l
}

// Build reads every source into a fresh Index. A source can be a file or
// a directory; directories contribute their immediate files in sorted
// listing order. Each file registers exactly one family: every
// whitespace-separated token on every line becomes a member of it.
//
// An id appearing in several family files keeps the last-processed
// family. That overwrite is deliberate: downstream tooling relies on
// "last file wins" precedence.
func (b *Builder) Build(sources []string) (*Index, error) {
	x := &Index{
		members: make(map[string]int),
		names:   make(map[int]string),
		next:    firstFamilyID,
	}

	for _, source := range sources {
		info, err := os.Stat(source)
		if err != nil {
			return nil, fmt.Errorf("stat family source %s: %w", source, err)
		}
		if !info.IsDir() {
			if err := b.addFile(x, source); err != nil {
				return nil, err
			}
			continue
		}

		entries, err := os.ReadDir(source)
		if err != nil {
			return nil, fmt.Errorf("read family directory %s: %w", source, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if err := b.addFile(x, filepath.Join(source, entry.Name())); err != nil {
				return nil, err
			}
		}
	}

	b.logger.Info("family index built",
		zap.Int("families", x.Count()),
		zap.Int("members", x.MemberCount()))
	return x, nil
}

// addFile registers one family file under the next family id.
func (b *Builder) addFile(x *Index, path string) error {
	b.logger.Debug("processing family file", zap.String("file", path))

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open family file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		for _, id := range strings.Fields(scanner.Text()) {
			x.members[id] = x.next
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read family file %s: %w", path, err)
	}

	x.names[x.next] = familyName(path)
	x.next++
	return nil
}

// familyName derives a display name from the file's base name with the
// extension stripped.
func familyName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
