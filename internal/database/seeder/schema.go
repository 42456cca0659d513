package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wow-campus/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// SchemaError lists every required column absent from the public schema, as
// "table.column".
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "schema mismatch: missing columns " + strings.Join(e.Missing, ", ")
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchemaMismatch }

// CheckSchema verifies all required columns in one pass and reports all of
// the missing ones together.
func CheckSchema(ctx context.Context, db database.DB, reqs []TableColumns) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	var missing []string
	for _, req := range reqs {
		if req.Table == "" {
			return fmt.Errorf("empty table")
		}
		existing, err := tableColumns(ctx, db, req.Table)
		if err != nil {
			return fmt.Errorf("read columns of %s: %w", req.Table, err)
		}
		for _, col := range req.Columns {
			if col == "" {
				return fmt.Errorf("empty column for table %s", req.Table)
			}
			if _, ok := existing[col]; !ok {
				missing = append(missing, req.Table+"."+col)
			}
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

func tableColumns(ctx context.Context, db database.DB, table string) (map[string]struct{}, error) {
	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		existing[c] = struct{}{}
	}
	return existing, rows.Err()
}
