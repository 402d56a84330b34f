package sweep

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// PruneResult reports what a pruning pass did.
type PruneResult struct {
	// Removed lists the matched directories that were deleted (or would be,
	// under dry run), in discovery order.
	Removed []string
	// Skipped counts matches that were already gone when their turn came,
	// i.e. nested matches removed together with an enclosing match.
	Skipped int
}

// Prune deletes every directory under root whose basename matches pattern,
// together with all of its contents. All matches are discovered before any
// deletion starts. A missing root is an error and leaves the tree untouched;
// zero matches is a trivial success. A deletion failure aborts the pass and
// returns the partial result alongside the error.
func Prune(root, pattern string, dryRun bool) (*PruneResult, error) {
	matches, err := MatchingDirs(root, pattern)
	if err != nil {
		return nil, err
	}

	result := &PruneResult{}
	for _, dir := range matches {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			// Nested match, already deleted with its parent.
			result.Skipped++
			continue
		}
		if !dryRun {
			if err := os.RemoveAll(dir); err != nil {
				return result, fmt.Errorf("remove %q: %w", dir, err)
			}
		}
		result.Removed = append(result.Removed, dir)
	}
	return result, nil
}
