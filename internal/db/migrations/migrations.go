// Package migrations embeds the goose migrations for the tenant database.
package migrations

import "embed"

// FS holds every migration at its root, ready for pg.Migrate.
//
//go:embed *.sql
var FS embed.FS
