// Package migrations embeds the PostgreSQL schema files applied at startup.
package migrations

import "embed"

// FS holds the *.sql migrations in lexical apply order.
//
//go:embed *.sql
var FS embed.FS
