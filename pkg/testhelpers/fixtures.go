package testhelpers

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"gopkg.in/yaml.v3"
)

// FixtureTable is one table's rows in a fixture file.
// Tables load in file order, so parents must precede children.
type FixtureTable struct {
	Table string           `yaml:"table"`
	Rows  []map[string]any `yaml:"rows"`
}

// ReadFixtures parses a YAML fixture file.
func ReadFixtures(path string) ([]FixtureTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	var tables []FixtureTable
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	return tables, nil
}

// LoadFixtures truncates every table named in the fixture file and inserts
// its rows. Explicit ids are kept and each id sequence is moved past them.
func (tdb *TestDB) LoadFixtures(t *testing.T, path string) {
	t.Helper()

	tables, err := ReadFixtures(path)
	if err != nil {
		t.Fatalf("Failed to load fixtures: %v", err)
	}
	if err := tdb.loadFixtures(context.Background(), tables); err != nil {
		t.Fatalf("Failed to load fixtures: %v", err)
	}
}

func (tdb *TestDB) loadFixtures(ctx context.Context, tables []FixtureTable) error {
	tx, err := tdb.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	names := make([]string, 0, len(tables))
	for _, ft := range tables {
		names = append(names, pgx.Identifier{ft.Table}.Sanitize())
	}
	if len(names) > 0 {
		if _, err := tx.Exec(ctx, "TRUNCATE "+strings.Join(names, ", ")+" RESTART IDENTITY CASCADE"); err != nil {
			return fmt.Errorf("failed to truncate: %w", err)
		}
	}

	for _, ft := range tables {
		for i, row := range ft.Rows {
			query, args := insertStatement(ft.Table, row)
			// Simple protocol lets Postgres coerce the quoted YAML date strings.
			args = append([]any{pgx.QueryExecModeSimpleProtocol}, args...)
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to insert %s row %d: %w", ft.Table, i, err)
			}
		}
		if hasIDColumn(ft.Rows) {
			resync := fmt.Sprintf(
				`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT max(id) FROM %s))`,
				ft.Table, pgx.Identifier{ft.Table}.Sanitize())
			if _, err := tx.Exec(ctx, resync); err != nil {
				return fmt.Errorf("failed to reset %s sequence: %w", ft.Table, err)
			}
		}
	}

	return tx.Commit(ctx)
}

func insertStatement(table string, row map[string]any) (string, []any) {
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		quoted[i] = pgx.Identifier{col}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[col]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{table}.Sanitize(), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	return query, args
}

func hasIDColumn(rows []map[string]any) bool {
	for _, row := range rows {
		if _, ok := row["id"]; ok {
			return true
		}
	}
	return false
}
