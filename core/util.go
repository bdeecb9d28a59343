package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

// CleanString trims s and, with lower set, lowercases it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		s = strings.ToLower(s)
	}
	return s
}

// Getwd returns the nearest ancestor of the working directory holding go.mod,
// so config/ resolves the same from any test package.
// Without a go.mod (deployed binaries) it returns the working directory.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	for dir := wd; ; {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return wd
		}
		dir = parent
	}
}
