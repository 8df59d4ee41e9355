package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// snapshotTables in foreign-key order so inserts never hit a missing parent.
var snapshotTables = []string{
	"branches",
	"areas",
	"equipment",
	"records",
	"groups",
	"users",
	"tokens",
}

// Snapshot copies the full contents of src into dst, which must carry the
// same schema. The destination is emptied and repopulated inside one
// transaction, so a failed snapshot leaves it untouched.
func Snapshot(ctx context.Context, src, dst *sqlx.DB) error {
	tx, err := dst.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	for i := len(snapshotTables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+snapshotTables[i]); err != nil {
			return fmt.Errorf("clear %s: %w", snapshotTables[i], err)
		}
	}

	for _, table := range snapshotTables {
		if err := copyTable(ctx, src, tx, table); err != nil {
			return fmt.Errorf("copy %s: %w", table, err)
		}
		if err := resetSequence(ctx, tx, table); err != nil {
			return fmt.Errorf("reset %s sequence: %w", table, err)
		}
	}

	return tx.Commit()
}

// resetSequence advances the destination's id sequence past the copied rows;
// rows arrive with explicit ids, which leaves the serial untouched and would
// make the first fresh insert collide with a copied id.
func resetSequence(ctx context.Context, tx *sqlx.Tx, table string) error {
	_, err := tx.ExecContext(ctx, fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1)) FROM %s", table, table))
	return err
}

// Dump serializes every table to JSON, keyed by table name. Used for
// off-site snapshot export; Snapshot remains the store-to-store path.
func Dump(ctx context.Context, db *sqlx.DB) ([]byte, error) {
	out := make(map[string][]map[string]interface{}, len(snapshotTables))
	for _, table := range snapshotTables {
		rows, err := db.QueryxContext(ctx, "SELECT * FROM "+table)
		if err != nil {
			return nil, fmt.Errorf("dump %s: %w", table, err)
		}
		dumped := []map[string]interface{}{}
		for rows.Next() {
			row := map[string]interface{}{}
			if err := rows.MapScan(row); err != nil {
				rows.Close()
				return nil, fmt.Errorf("dump %s: %w", table, err)
			}
			dumped = append(dumped, row)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("dump %s: %w", table, err)
		}
		out[table] = dumped
	}
	return json.Marshal(out)
}

func copyTable(ctx context.Context, src *sqlx.DB, tx *sqlx.Tx, table string) error {
	rows, err := src.QueryxContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	insert := insertStatement(table, cols)

	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert, vals...); err != nil {
			return err
		}
	}
	return rows.Err()
}

func insertStatement(table string, cols []string) string {
	marks := make([]string, len(cols))
	for i := range cols {
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(marks, ", "))
}
