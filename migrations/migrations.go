// Package migrations embeds the SQL applied by cmd/migrate.
package migrations

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

const seedPrefix = "seed_"

// Schema returns the schema files in apply order.
func Schema() ([]string, error) {
	return list(func(name string) bool { return !strings.HasPrefix(name, seedPrefix) })
}

// Seeds returns the optional sample data files.
func Seeds() ([]string, error) {
	return list(func(name string) bool { return strings.HasPrefix(name, seedPrefix) })
}

// Read returns the SQL in name.
func Read(name string) (string, error) {
	b, err := files.ReadFile(name)
	return string(b), err
}

func list(keep func(string) bool) ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && keep(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
