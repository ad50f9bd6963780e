// Package migrations embeds the client cache's goose SQL migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
