package graph

import (
	"bytes"
	"log"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
)

// SplitGraphByRoots finds the independently-rooted subtrees left after
// pruning and orders them for rendering. Multiple lines of work rooted at
// different master commits each produce their own root.
//
// Roots are ordered topologically earliest first, which places them at the
// bottom of the rendered smartlog. Two roots with no ancestor relation are
// not orderable; they keep their relative position from the pre-sort, which
// is best-effort only.
func SplitGraphByRoots(oracle MergeBaseOracle, g CommitGraph) []plumbing.Hash {
	var roots []plumbing.Hash
	for oid, node := range g {
		if node.Parent.IsZero() {
			roots = append(roots, oid)
		}
	}

	// Fix a deterministic starting order before the merge-base sort. The
	// comparator below treats unrelated roots as equal, so whatever order
	// they enter the stable sort in is the order they come out in.
	sort.Slice(roots, func(i, j int) bool {
		ci, cj := g[roots[i]].Commit, g[roots[j]].Commit
		if !ci.When.Equal(cj.When) {
			return ci.When.Before(cj.When)
		}
		return bytes.Compare(ci.Hash[:], cj.Hash[:]) < 0
	})

	sort.SliceStable(roots, func(i, j int) bool {
		lhs, rhs := roots[i], roots[j]
		mergeBase, err := oracle.MergeBaseOID(lhs, rhs)
		if err != nil {
			log.Printf("smartlog: merge-base lookup failed for root commits %s and %s: %v", lhs, rhs, err)
			return false
		}
		if mergeBase == nil {
			log.Printf("smartlog: root commits %s and %s were not orderable", lhs, rhs)
			return false
		}
		// The ancestor sorts earlier, i.e. lower in the rendered output.
		return *mergeBase == lhs && lhs != rhs
	})

	return roots
}
