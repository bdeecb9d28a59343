// Package appfs embeds the files the binaries ship with.
package appfs

import (
	"embed"
	"io/fs"
)

//go:embed migrations fixtures
var FS embed.FS

// Migrations returns the goose migrations for a database engine ("postgres" or "sqlite").
func Migrations(engine string) (fs.FS, error) {
	return fs.Sub(FS, "migrations/"+engine)
}

// Fixtures returns the JSON seed data.
func Fixtures() fs.FS {
	sub, _ := fs.Sub(FS, "fixtures")
	return sub
}
