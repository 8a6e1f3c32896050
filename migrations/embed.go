// Package migrations embeds the SQL schema migrations shipped with the binary.
package migrations

import "embed"

// FS holds one sub-directory per driver, each with NNN_name.sql files.
//
//go:embed sqlite/*.sql
var FS embed.FS
