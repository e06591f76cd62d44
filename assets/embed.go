// assets/embed.go
//
// Embedded data shipped with the binary:
//   - puzzles.yaml: the default puzzle catalog (overridable via PUZZLES_FILE).
//   - sql/*.sql:    schema migrations applied by db.go in lexical order.

package assets

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed puzzles.yaml sql/*.sql
var FS embed.FS

// Puzzles returns the raw embedded catalog document.
func Puzzles() ([]byte, error) {
	return FS.ReadFile("puzzles.yaml")
}

// Migration is one embedded schema file.
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists embedded sql/*.sql files sorted by name.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(FS, "sql")
	if err != nil {
		return nil, err
	}
	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			continue
		}
		b, err := FS.ReadFile("sql/" + e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: e.Name(), SQL: string(b)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
