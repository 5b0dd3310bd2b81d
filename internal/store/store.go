// Package store persists the synteny index in a DuckDB database: one row
// per gene with its serialized left and right landscape tails.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"
)

// Store manages the DuckDB connection holding the genomes table.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	return &Store{db: db, path: path, logger: zap.NewNop()}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// SetLogger sets the logger for progress messages.
func (s *Store) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Reset drops and recreates the genomes table. Every ingestion run
// rebuilds the whole table; there is no incremental update path.
func (s *Store) Reset() error {
	if _, err := s.db.Exec(`DROP TABLE IF EXISTS genomes`); err != nil {
		return fmt.Errorf("drop genomes table: %w", err)
	}
	_, err := s.db.Exec(`CREATE TABLE genomes (
		species VARCHAR,
		chr VARCHAR,
		ancestral_id BIGINT,
		id VARCHAR,
		start BIGINT,
		stop BIGINT,
		direction VARCHAR,
		left_tail_ids VARCHAR,
		right_tail_ids VARCHAR
	)`)
	if err != nil {
		return fmt.Errorf("create genomes table: %w", err)
	}
	return nil
}

// CreateIndices builds the lookup indices. Call once after all rows are
// written.
func (s *Store) CreateIndices() error {
	s.logger.Info("creating indices")
	stmts := []string{
		`CREATE INDEX genomes_species ON genomes(species)`,
		`CREATE INDEX genomes_chr ON genomes(chr)`,
		`CREATE INDEX genomes_id ON genomes(id)`,
		`CREATE INDEX genomes_start ON genomes(start)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
