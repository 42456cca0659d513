package seeder

import (
	"context"

	"wow-campus/internal/database"
)

// Seeder inserts one group of rows. Run must be safe to repeat.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// SchemaRequirer is implemented by seeders that write to specific columns.
// Runner checks the listed columns before calling Run.
type SchemaRequirer interface {
	RequiredColumns() []TableColumns
}

type TableColumns struct {
	Table   string
	Columns []string
}
