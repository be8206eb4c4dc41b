// Package db embeds the SQL schema migrations, one directory per dialect.
package db

import "embed"

//go:embed migrations
var Migrations embed.FS
