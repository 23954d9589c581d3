// Package migrations embeds the archive schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
