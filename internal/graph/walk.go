package graph

import (
	"bytes"
	"fmt"
	"log"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
)

// WalkFromVisibleCommits builds the commit graph for the smartlog.
//
// Each visible commit contributes the path from itself back to its
// merge-base with master. Intermediate commits on that path are included
// even when they were never checked out, so the line of development since
// master stays readable.
func WalkFromVisibleCommits(
	repo Repository,
	oracle MergeBaseOracle,
	headOID, masterOID plumbing.Hash,
	visibleOIDs map[plumbing.Hash]struct{},
	hiddenOIDs map[string]struct{},
) (CommitGraph, error) {
	g := CommitGraph{}

	link := func(parentOID, childOID plumbing.Hash) {
		if childOID.IsZero() {
			return
		}
		g[childOID].Parent = parentOID
		g[parentOID].Children[childOID] = struct{}{}
	}

	for _, commitOID := range sortedOIDs(visibleOIDs) {
		mergeBase, err := oracle.MergeBaseOID(commitOID, masterOID)
		if err != nil {
			return nil, err
		}
		if mergeBase == nil {
			return nil, fmt.Errorf("no merge-base found for commits %s and %s", commitOID, masterOID)
		}
		mergeBaseOID := *mergeBase

		// A commit directly on master that is not currently checked out has
		// been superseded by later work on master; skip it. Master commits
		// that are ancestors of work we care about still enter the graph
		// through their descendants' paths.
		if commitOID == mergeBaseOID && commitOID != headOID {
			continue
		}

		path, err := FindPathToMergeBase(repo, commitOID, mergeBaseOID)
		if err != nil {
			return nil, err
		}

		previousOID := plumbing.ZeroHash
		for _, commit := range path {
			currentOID := commit.Hash
			if _, ok := g[currentOID]; ok {
				// The rest of this path is already represented; attach and
				// stop walking.
				link(currentOID, previousOID)
				break
			}

			status := StatusVisible
			if _, hidden := hiddenOIDs[currentOID.String()]; hidden {
				status = StatusHidden
			}
			g[currentOID] = &Node{
				Commit:   commit,
				Children: map[plumbing.Hash]struct{}{},
				Status:   status,
			}
			link(currentOID, previousOID)
			previousOID = currentOID
		}

		if node, ok := g[mergeBaseOID]; ok {
			node.Status = StatusMaster
		} else {
			log.Printf("smartlog: could not find merge base %s in graph", mergeBaseOID)
		}
	}

	return g, nil
}

// sortedOIDs fixes an iteration order for a set of ids. Map iteration order
// is randomized in Go and must never leak into output or log ordering.
func sortedOIDs(oids map[plumbing.Hash]struct{}) []plumbing.Hash {
	out := make([]plumbing.Hash, 0, len(oids))
	for oid := range oids {
		out = append(out, oid)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
