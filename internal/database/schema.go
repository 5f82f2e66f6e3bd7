package database

import _ "embed"

// Schema is the current database schema, generated from the migration files.
// Tests apply it directly to fresh in-memory databases.
//
//go:embed sqlc/schema.sql
var Schema string
