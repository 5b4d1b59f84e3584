// Package migrations embeds the SQL migrations that create the host graph schema.
package migrations

import "embed"

// FS contains the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS
