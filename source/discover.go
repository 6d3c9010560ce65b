package source

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/arloliu/vola/errs"
)

// Discover lists the files to convert. A directory input yields its entries
// with kind's extension, matched case-insensitively. Any other input is a
// file name or a glob pattern over the base name of a path, such as
// "scans/*.ply" or "scans/{a,b}.npy". Results are sorted.
func Discover(input string, kind Kind) ([]string, error) {
	info, err := os.Stat(input)
	if err == nil && info.IsDir() {
		return matchDir(input, "*."+kind.Extension(), true)
	}
	if err == nil {
		return []string{input}, nil
	}

	dir, pattern := filepath.Split(input)
	if dir == "" {
		dir = "."
	}
	if strings.ContainsAny(dir, "*?[{") {
		return nil, fmt.Errorf("%w: glob in directory part of %q", errs.ErrUnsupportedSource, input)
	}

	return matchDir(dir, pattern, false)
}

// matchDir returns the regular files of dir whose names match pattern,
// compared in lower case when fold is set.
func matchDir(dir, pattern string, fold bool) ([]string, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if fold {
			name = strings.ToLower(name)
		}
		if e.IsDir() || !g.Match(name) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.Sort(files)

	return files, nil
}
