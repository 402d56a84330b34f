package sweep

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ModelDirs returns the names of the immediate subdirectories of root, in
// os.ReadDir order. It never descends below the first level.
func ModelDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read model root %q: %w", root, err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs, nil
}

// MatchingDirs walks the tree below root and returns every directory whose
// basename matches pattern (filepath.Match syntax), at any depth. The walk
// completes before the result is returned, so callers may delete matches
// without affecting discovery. The root itself is never a match.
func MatchingDirs(root, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("bad name pattern %q: %w", pattern, err)
	}
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("walk root %q: %w", root, err)
	}
	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %q: %w", root, err)
	}
	return matches, nil
}
