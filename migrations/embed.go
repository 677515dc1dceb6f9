// Package migrations embeds the schema migrations for the SQL-backed record stores.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
