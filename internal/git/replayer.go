package git

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// RefLogReplayer reconstructs which commits the user has recently had
// checked out by replaying HEAD's reflog oldest to newest. Every commit
// HEAD has pointed at becomes visible; a rewrite (amend, rebase) supersedes
// the commit it replaced.
type RefLogReplayer struct {
	headOID plumbing.Hash
	visible map[plumbing.Hash]struct{}
}

// NewRefLogReplayer creates a replayer for a repository whose current head
// is headOID.
func NewRefLogReplayer(headOID plumbing.Hash) *RefLogReplayer {
	return &RefLogReplayer{
		headOID: headOID,
		visible: make(map[plumbing.Hash]struct{}),
	}
}

// rewritePrefixes mark reflog entries whose old commit was replaced by the
// new one rather than merely checked out away from. "rebase" covers the
// interactive and non-interactive variants, which all share the prefix.
var rewritePrefixes = []string{
	"commit (amend)",
	"rebase",
}

// Process consumes one reflog entry.
func (r *RefLogReplayer) Process(entry ReflogEntry) {
	if !entry.New.IsZero() {
		r.visible[entry.New] = struct{}{}
	}
	if entry.Old.IsZero() {
		return
	}
	for _, prefix := range rewritePrefixes {
		if strings.HasPrefix(entry.Message, prefix) {
			delete(r.visible, entry.Old)
			break
		}
	}
}

// FinishProcessing ensures the current head is visible even when the reflog
// is empty or its final entry rewrote the head away.
func (r *RefLogReplayer) FinishProcessing() {
	if !r.headOID.IsZero() {
		r.visible[r.headOID] = struct{}{}
	}
}

// VisibleOIDs returns the commits that should seed the smartlog graph.
func (r *RefLogReplayer) VisibleOIDs() map[plumbing.Hash]struct{} {
	return r.visible
}
