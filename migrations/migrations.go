// Package migrations embeds the PostgreSQL schema so the migrate tool and
// integration tests apply the same files.
package migrations

import "embed"

// FS holds the numbered up and down migrations.
//
//go:embed *.sql
var FS embed.FS
