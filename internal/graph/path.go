package graph

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNoPathFound indicates that no parent-edge path exists between a commit
// and its claimed ancestor. This should not happen in a healthy repository
// and usually means the repository was rewritten concurrently.
var ErrNoPathFound = errors.New("no path found")

// FindPathToMergeBase finds a shortest parent-edge path from commitOID to
// targetOID, where targetOID is a known ancestor.
//
// The search is breadth-first over accumulated paths. This matters for
// merge commits: a depth-first walk that picks the wrong parent can wander
// into a huge amount of unrelated history before coming back to the short
// path we know exists.
func FindPathToMergeBase(repo Repository, commitOID, targetOID plumbing.Hash) ([]*Commit, error) {
	start, err := repo.Commit(commitOID)
	if err != nil {
		return nil, err
	}

	queue := [][]*Commit{{start}}
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		last := path[len(path)-1]
		if last.Hash == targetOID {
			return path, nil
		}

		for _, parentOID := range last.ParentHashes {
			parent, err := repo.Commit(parentOID)
			if err != nil {
				return nil, err
			}
			next := make([]*Commit, len(path), len(path)+1)
			copy(next, path)
			queue = append(queue, append(next, parent))
		}
	}

	return nil, fmt.Errorf("no path between %s and %s: %w", commitOID, targetOID, ErrNoPathFound)
}
