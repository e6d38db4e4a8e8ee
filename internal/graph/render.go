package graph

import (
	"bytes"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/kurobon/smartlog/internal/glyphs"
)

// RenderGraph renders the pruned graph starting from the ordered roots.
// Lines come out oldest-first: children are visited oldest commit first, so
// the caller reverses the slice before printing to get newest-at-the-top,
// trunk-at-the-bottom output.
func RenderGraph(gl *glyphs.Set, g CommitGraph, headOID plumbing.Hash, rootOIDs []plumbing.Hash) []string {
	var lines []string

	for rootIdx, rootOID := range rootOIDs {
		rootNode := g[rootOID]

		// A root that has real git parents continues downward off-screen:
		// draw a solid line into the previous root when it genuinely is the
		// parent, and a dim gap marker otherwise.
		if len(rootNode.Commit.ParentHashes) > 0 {
			if rootIdx > 0 && hasRealParent(g, rootOID, rootOIDs[rootIdx-1]) {
				lines = append(lines, gl.Line)
			} else {
				lines = append(lines, gl.Dim(gl.VerticalEllipsis))
			}
		}

		var lastChildLineChar string
		hasLastChildLineChar := false
		if rootIdx < len(rootOIDs)-1 {
			hasLastChildLineChar = true
			if hasRealParent(g, rootOIDs[rootIdx+1], rootOID) {
				lastChildLineChar = gl.Line
			} else {
				lastChildLineChar = gl.Dim(gl.VerticalEllipsis)
			}
		}

		lines = append(lines, childOutput(gl, g, headOID, rootOID, lastChildLineChar, hasLastChildLineChar)...)
	}

	return lines
}

// hasRealParent reports whether parentOID is one of oid's raw git parents.
// This is checked against the commit itself rather than the pruned graph:
// pruning can drop the edge between two adjacent master commits that is
// still genuine ancestry for connector purposes.
func hasRealParent(g CommitGraph, oid, parentOID plumbing.Hash) bool {
	for _, p := range g[oid].Commit.ParentHashes {
		if p == parentOID {
			return true
		}
	}
	return false
}

// sortedChildren orders a node's children oldest first, so that earlier
// commits end up at the bottom of the smartlog. The timestamp tie-break on
// id keeps the output independent of map iteration order.
func sortedChildren(g CommitGraph, node *Node) []plumbing.Hash {
	children := make([]plumbing.Hash, 0, len(node.Children))
	for childOID := range node.Children {
		children = append(children, childOID)
	}
	sort.Slice(children, func(i, j int) bool {
		ci, cj := g[children[i]].Commit, g[children[j]].Commit
		if !ci.When.Equal(cj.When) {
			return ci.When.Before(cj.When)
		}
		return bytes.Compare(ci.Hash[:], cj.Hash[:]) < 0
	})
	return children
}

// commitLine formats one commit's own output line.
func commitLine(gl *glyphs.Set, g CommitGraph, headOID, oid plumbing.Hash) string {
	node := g[oid]
	isHead := node.Commit.Hash == headOID
	text := gl.OID(node.Commit.Hash) + " " + node.Commit.Summary

	var cursor string
	switch node.Status {
	case StatusVisible:
		if isHead {
			cursor = gl.CommitVisibleHead
		} else {
			cursor = gl.CommitVisible
		}
	case StatusHidden:
		if isHead {
			cursor = gl.CommitHiddenHead
		} else {
			cursor = gl.CommitHidden
		}
	case StatusMaster:
		if isHead {
			cursor = gl.CommitMasterHead
		} else {
			cursor = gl.CommitMaster
		}
	}
	if isHead {
		cursor = gl.Bold(cursor)
		text = gl.Bold(text)
	}

	return cursor + " " + text
}

// renderFrame is one level of the subtree walk. An explicit frame stack
// stands in for recursion: commit chains can be arbitrarily deep and must
// not risk exhausting the goroutine stack.
type renderFrame struct {
	children             []plumbing.Hash
	next                 int
	lastChildLineChar    string
	hasLastChildLineChar bool
	lines                []string
}

// childOutput renders the subtree rooted at rootOID. Within the returned
// slice the node's own line comes first and the oldest child's output last;
// the final reversal in the orchestrator flips this into display order.
func childOutput(gl *glyphs.Set, g CommitGraph, headOID, rootOID plumbing.Hash, lastChildLineChar string, hasLastChildLineChar bool) []string {
	newFrame := func(oid plumbing.Hash, lastChar string, hasLast bool) *renderFrame {
		return &renderFrame{
			children:             sortedChildren(g, g[oid]),
			lastChildLineChar:    lastChar,
			hasLastChildLineChar: hasLast,
			lines:                []string{commitLine(gl, g, headOID, oid)},
		}
	}

	stack := []*renderFrame{newFrame(rootOID, lastChildLineChar, hasLastChildLineChar)}
	for {
		top := stack[len(stack)-1]
		if top.next < len(top.children) {
			stack = append(stack, newFrame(top.children[top.next], "", false))
			continue
		}

		if len(stack) == 1 {
			return top.lines
		}

		// Splice the finished child's lines into its parent with the
		// appropriate connector.
		stack = stack[:len(stack)-1]
		parent := stack[len(stack)-1]
		childIdx := parent.next
		parent.next++
		isLastChild := childIdx == len(parent.children)-1

		if isLastChild && !parent.hasLastChildLineChar {
			parent.lines = append(parent.lines, gl.Line)
		} else {
			parent.lines = append(parent.lines, gl.LineWithOffshoot+gl.Slash)
		}
		for _, childLine := range top.lines {
			switch {
			case isLastChild && parent.hasLastChildLineChar:
				parent.lines = append(parent.lines, parent.lastChildLineChar+" "+childLine)
			case isLastChild:
				parent.lines = append(parent.lines, childLine)
			default:
				parent.lines = append(parent.lines, gl.Line+" "+childLine)
			}
		}
	}
}
