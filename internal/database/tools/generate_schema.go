// Command generate_schema rebuilds sqlc/schema.sql by applying every migration
// to an empty in-memory database and dumping the resulting objects. sqlc reads
// the dump as the schema the queries are checked against.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"photovault/internal/database"
	"photovault/internal/database/migrations"
)

// schemaPath is relative to the module root, where go:generate runs it.
var schemaPath = filepath.Join("internal", "database", "sqlc", "schema.sql")

// schemaObject is one table or index as stored in sqlite_master.
type schemaObject struct {
	kind  string // "table" or "index"
	name  string
	table string
	sql   string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("generate_schema: ")

	db, err := database.OpenConnection(":memory:")
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := migrations.MigrateUp(db); err != nil {
		log.Fatalf("applying migrations: %v", err)
	}
	version, _, err := migrations.SchemaVersion(db)
	if err != nil {
		log.Fatalf("reading schema version: %v", err)
	}

	objects, err := loadObjects(db)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile(schemaPath, []byte(renderSchema(version, objects)), 0644); err != nil {
		log.Fatalf("writing %s: %v", schemaPath, err)
	}
	log.Printf("wrote %s (schema version %d, %d objects)", schemaPath, version, len(objects))
}

// loadObjects reads the user tables and indexes, skipping SQLite internals,
// autoindexes without SQL and the migration bookkeeping table.
func loadObjects(db *sql.DB) ([]schemaObject, error) {
	rows, err := db.Query(`
		SELECT type, name, tbl_name, sql FROM sqlite_master
		WHERE type IN ('table', 'index')
		  AND sql IS NOT NULL
		  AND name NOT LIKE 'sqlite_%'
		  AND tbl_name != 'schema_migrations'`)
	if err != nil {
		return nil, fmt.Errorf("listing schema objects: %w", err)
	}
	defer rows.Close()

	var objects []schemaObject
	for rows.Next() {
		var o schemaObject
		if err := rows.Scan(&o.kind, &o.name, &o.table, &o.sql); err != nil {
			return nil, fmt.Errorf("scanning schema object: %w", err)
		}
		objects = append(objects, o)
	}
	return objects, rows.Err()
}

// renderSchema lists every table by name, each followed by its own indexes.
func renderSchema(version uint, objects []schemaObject) string {
	var tables []schemaObject
	indexes := make(map[string][]schemaObject)
	for _, o := range objects {
		if o.kind == "table" {
			tables = append(tables, o)
		} else {
			indexes[o.table] = append(indexes[o.table], o)
		}
	}
	sortByName(tables)

	var b strings.Builder
	fmt.Fprintf(&b, "-- Generated by internal/database/tools/generate_schema.go at migration version %d.\n", version)
	b.WriteString("-- Edit the migrations instead and run 'go generate ./internal/database'.\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "\n%s;\n", t.sql)
		idx := indexes[t.name]
		sortByName(idx)
		for _, i := range idx {
			fmt.Fprintf(&b, "%s;\n", i.sql)
		}
	}
	return b.String()
}

func sortByName(objects []schemaObject) {
	slices.SortFunc(objects, func(a, b schemaObject) int {
		return strings.Compare(a.name, b.name)
	})
}
