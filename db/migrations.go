// Package db embeds the goose migration scripts so binaries can run them
// without shipping loose SQL files.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
