package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Row is one persisted gene as stored in the genomes table, tails still
// in their serialized wire form.
type Row struct {
	Species   string
	Chr       string
	Family    int
	ID        string
	Start     int
	Stop      int
	Direction string
	LeftTail  string
	RightTail string
}

const rowColumns = `species, chr, ancestral_id, id, start, stop, direction, left_tail_ids, right_tail_ids`

// scanRow scans one genomes row.
func scanRow(sc interface{ Scan(...any) error }) (*Row, error) {
	r := &Row{}
	err := sc.Scan(&r.Species, &r.Chr, &r.Family, &r.ID,
		&r.Start, &r.Stop, &r.Direction, &r.LeftTail, &r.RightTail)
	if err != nil {
		return nil, fmt.Errorf("scan gene row: %w", err)
	}
	return r, nil
}

// SelectAll streams every row to the callback.
func (s *Store) SelectAll(cb func(*Row) error) error {
	rows, err := s.db.Query(`SELECT ` + rowColumns + ` FROM genomes`)
	if err != nil {
		return fmt.Errorf("query genomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return err
		}
		if err := cb(r); err != nil {
			return err
		}
	}
	return rows.Err()
}

// SelectIDs streams the rows whose id is in ids to the callback, using a
// parameterized IN (...) filter at the storage layer.
func (s *Store) SelectIDs(ids []string, cb func(*Row) error) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(
		`SELECT `+rowColumns+` FROM genomes WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("query genomes by id: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return err
		}
		if err := cb(r); err != nil {
			return err
		}
	}
	return rows.Err()
}

// SelectOne returns the row for one gene id, or nil if the id is absent.
func (s *Store) SelectOne(id string) (*Row, error) {
	row := s.db.QueryRow(`SELECT `+rowColumns+` FROM genomes WHERE id = ?`, id)
	r, err := scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

// Species returns the distinct species present in the table.
func (s *Store) Species() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT species FROM genomes ORDER BY species`)
	if err != nil {
		return nil, fmt.Errorf("query species: %w", err)
	}
	defer rows.Close()

	var species []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan species: %w", err)
		}
		species = append(species, name)
	}
	return species, rows.Err()
}

// Count returns the number of persisted genes.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM genomes`).Scan(&count)
	return count, err
}
