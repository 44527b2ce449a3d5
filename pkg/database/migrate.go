package database

import (
	"database/sql"
	"fmt"
	"os"
)

// SchemaPath is the bundled schema, relative to the working directory.
// Every statement in it is idempotent (CREATE ... IF NOT EXISTS), so
// Migrate runs on every boot.
const SchemaPath = "docs/schema.sql"

// Migrate applies the bundled schema to db.
func Migrate(db *sql.DB) error {
	schema, err := os.ReadFile(SchemaPath)
	if err != nil {
		return fmt.Errorf("read schema %s: %w", SchemaPath, err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		return fmt.Errorf("apply schema %s: %w", SchemaPath, err)
	}
	return nil
}
