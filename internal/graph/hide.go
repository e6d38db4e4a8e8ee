package graph

import "github.com/go-git/go-git/v5/plumbing"

// HideCommits removes hidden commits from the graph in place.
//
// Hiding a commit hides its entire descendant subtree: the user dismissed
// that line of work, not just one commit on it. Master commits left with no
// surviving descendants are removed as well, which keeps the rendered trunk
// limited to the span the surviving work actually branches from. The
// ancestry of HEAD is never removed, even when every commit on it is
// individually marked hidden.
func HideCommits(g CommitGraph, headOID plumbing.Hash) {
	unhideable := map[plumbing.Hash]struct{}{}
	for oid := headOID; ; {
		node, ok := g[oid]
		if !ok {
			break
		}
		unhideable[oid] = struct{}{}
		oid = node.Parent
	}

	toHide := map[plumbing.Hash]struct{}{}
	var frontier []plumbing.Hash
	for oid, node := range g {
		if node.Status == StatusHidden {
			frontier = append(frontier, oid)
		}
	}
	for len(frontier) > 0 {
		var next []plumbing.Hash
		for _, oid := range frontier {
			if _, done := toHide[oid]; done {
				continue
			}
			toHide[oid] = struct{}{}
			for childOID := range g[oid].Children {
				next = append(next, childOID)
			}
		}
		frontier = next
	}

	// Absorb master commits whose children are all being hidden. A newly
	// absorbed commit can strand its own master parent, so iterate to a
	// fixed point.
	for changed := true; changed; {
		changed = false
		for oid, node := range g {
			if node.Status != StatusMaster {
				continue
			}
			if _, done := toHide[oid]; done {
				continue
			}
			allHidden := true
			for childOID := range node.Children {
				if _, ok := toHide[childOID]; !ok {
					allHidden = false
					break
				}
			}
			if allHidden {
				toHide[oid] = struct{}{}
				changed = true
			}
		}
	}

	for oid := range unhideable {
		delete(toHide, oid)
	}

	// Every child of a removed node is also removed (the closure above is
	// subtree-closed), so only the upward edge from each removed node needs
	// fixing. The post-prune consistency check verifies this.
	for oid := range toHide {
		parentOID := g[oid].Parent
		delete(g, oid)
		if !parentOID.IsZero() {
			if parent, ok := g[parentOID]; ok {
				delete(parent.Children, oid)
			}
		}
	}
}
