// Package duckdb exports assembled multi-omics datasets to a DuckDB
// database, long-format, so they can be queried with SQL after assembly.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/openomix/multiomics/internal/omics"
	"github.com/openomix/multiomics/internal/table"
)

// Store manages a DuckDB connection for dataset export.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create export directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS omics_values (
		cohort VARCHAR,
		modality VARCHAR,
		sample_barcode VARCHAR,
		feature VARCHAR,
		value VARCHAR
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS clinical_values (
		cohort VARCHAR,
		sample_barcode VARCHAR,
		field VARCHAR,
		value VARCHAR
	)`)
	return err
}

// WriteDataset batch-inserts the aligned per-modality matrices and the
// target clinical table using the Appender API. Missing cells are skipped.
func (s *Store) WriteDataset(cohort string, data map[omics.Modality]*table.Table, target *table.Table) error {
	for m, t := range data {
		if err := s.appendOmics(cohort, m, t); err != nil {
			return fmt.Errorf("write %s: %w", m, err)
		}
	}
	if target != nil {
		if err := s.appendClinical(cohort, target); err != nil {
			return fmt.Errorf("write clinical: %w", err)
		}
	}
	return nil
}

func (s *Store) appendOmics(cohort string, m omics.Modality, t *table.Table) error {
	appender, cleanup, err := s.appender("omics_values")
	if err != nil {
		return err
	}
	defer cleanup()

	cols := t.Columns()
	for _, id := range t.Index() {
		for _, feature := range cols {
			v, _ := t.Value(id, feature)
			if table.IsMissing(v) {
				continue
			}
			if err := appender.AppendRow(cohort, string(m), id, feature, v); err != nil {
				return fmt.Errorf("append omics row: %w", err)
			}
		}
	}
	return appender.Flush()
}

func (s *Store) appendClinical(cohort string, t *table.Table) error {
	appender, cleanup, err := s.appender("clinical_values")
	if err != nil {
		return err
	}
	defer cleanup()

	cols := t.Columns()
	for _, id := range t.Index() {
		for _, field := range cols {
			v, _ := t.Value(id, field)
			if table.IsMissing(v) {
				continue
			}
			if err := appender.AppendRow(cohort, id, field, v); err != nil {
				return fmt.Errorf("append clinical row: %w", err)
			}
		}
	}
	return appender.Flush()
}

// appender builds a DuckDB appender for the named table on a dedicated
// connection. The returned cleanup closes both.
func (s *Store) appender(tableName string) (*goduckdb.Appender, func(), error) {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("get connection: %w", err)
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", tableName)
		return err
	}); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("create appender: %w", err)
	}

	cleanup := func() {
		appender.Close()
		conn.Close()
	}
	return appender, cleanup, nil
}

// OmicsValueCount returns the number of exported omics cells.
func (s *Store) OmicsValueCount() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM omics_values").Scan(&n)
	return n, err
}

// ClinicalValueCount returns the number of exported clinical cells.
func (s *Store) ClinicalValueCount() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM clinical_values").Scan(&n)
	return n, err
}

// SampleValues returns one modality's exported values for a sample as a
// feature → value map.
func (s *Store) SampleValues(m omics.Modality, sampleBarcode string) (map[string]string, error) {
	rows, err := s.db.Query(
		"SELECT feature, value FROM omics_values WHERE modality=? AND sample_barcode=?",
		string(m), sampleBarcode)
	if err != nil {
		return nil, fmt.Errorf("query sample values: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var feature, value string
		if err := rows.Scan(&feature, &value); err != nil {
			return nil, fmt.Errorf("scan sample value: %w", err)
		}
		out[feature] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sample values: %w", err)
	}
	return out, nil
}
