// Package graph builds, prunes, orders and renders the smartlog commit
// graph. The graph is rebuilt from scratch on every invocation from the set
// of recently-visible commits; it never outlives a single run.
package graph

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// CommitStatus classifies how a commit entered the graph.
type CommitStatus int

const (
	// StatusVisible is a commit the user recently worked on.
	StatusVisible CommitStatus = iota
	// StatusHidden is a commit the user explicitly dismissed.
	StatusHidden
	// StatusMaster is a commit on the trunk.
	StatusMaster
)

func (s CommitStatus) String() string {
	switch s {
	case StatusVisible:
		return "visible"
	case StatusHidden:
		return "hidden"
	case StatusMaster:
		return "master"
	default:
		return "unknown"
	}
}

// Commit is the slice of commit data the smartlog needs. ParentHashes keeps
// the repository's parent order.
type Commit struct {
	Hash         plumbing.Hash
	ParentHashes []plumbing.Hash
	When         time.Time
	Summary      string
}

// Node is one commit's entry in the graph. Parent is the nearest ancestor
// that is also in the graph along the path to master, which is not
// necessarily the commit's immediate git parent; the zero hash means no
// parent. Edges are stored as ids, never as pointers, so the mutual
// parent/child references cannot form a reference cycle.
type Node struct {
	Commit   *Commit
	Parent   plumbing.Hash
	Children map[plumbing.Hash]struct{}
	Status   CommitStatus
}

// CommitGraph maps commit ids to their nodes.
type CommitGraph map[plumbing.Hash]*Node

// Repository supplies commit data to the graph.
type Repository interface {
	Commit(oid plumbing.Hash) (*Commit, error)
}

// MergeBaseOracle answers nearest-common-ancestor queries. A nil result
// means the two commits share no history.
type MergeBaseOracle interface {
	MergeBaseOID(lhs, rhs plumbing.Hash) (*plumbing.Hash, error)
}
