// Package db provides the embedded MySQL schema.
package db

import _ "embed"

// Schema contains the DDL statements for all application tables.
//
//go:embed schema.sql
var Schema string
