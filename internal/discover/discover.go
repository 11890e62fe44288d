// Package discover lists email preview files in the previews directory.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Previews returns the names of .html files directly under dir, sorted.
// Dotfiles, directories, symlinks and anything matched by a .gitignore in
// dir are skipped.
func Previews(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	gi := loadGitignore(dir)

	var results []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if e.Type()&os.ModeSymlink != 0 {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".html") {
			continue
		}
		if gi != nil && gi.MatchesPath(name) {
			continue
		}
		results = append(results, name)
	}

	sort.Strings(results)
	return results, nil
}

func loadGitignore(dir string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
