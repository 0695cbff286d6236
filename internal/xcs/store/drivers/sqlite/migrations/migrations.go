// Package migrations embeds the sqlite schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
