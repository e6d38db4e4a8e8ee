// Package git wraps go-git repository access for the smartlog.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/kurobon/smartlog/internal/graph"
)

// Repository provides the commit, reference and reflog access the smartlog
// needs from a git repository. All access is read-only.
type Repository struct {
	repo    *gogit.Repository
	gitDir  billy.Filesystem
	dirPath string
}

// Open locates the repository containing path, walking up parent
// directories the way git itself does.
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	gitDir, err := findGitDir(path)
	if err != nil {
		return nil, err
	}
	return &Repository{repo: repo, gitDir: osfs.New(gitDir), dirPath: gitDir}, nil
}

// NewFromRepository wires an already-open repository with the filesystem
// rooted at its .git directory. Tests use this with in-memory fixtures.
func NewFromRepository(repo *gogit.Repository, gitDir billy.Filesystem) *Repository {
	return &Repository{repo: repo, gitDir: gitDir}
}

// findGitDir resolves the .git directory for path, following a gitfile
// ("gitdir: ...") if the repository is a linked worktree.
func findGitDir(path string) (string, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ".git")
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return candidate, nil
			}
			data, err := os.ReadFile(candidate)
			if err != nil {
				return "", fmt.Errorf("reading gitfile %s: %w", candidate, err)
			}
			target := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(data)), "gitdir:"))
			if !filepath.IsAbs(target) {
				target = filepath.Join(dir, target)
			}
			return target, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no .git directory found above %s", path)
		}
		dir = parent
	}
}

// Underlying exposes the go-git repository for collaborators that need raw
// object access.
func (r *Repository) Underlying() *gogit.Repository {
	return r.repo
}

// StateFile returns the path of a smartlog state file inside the .git
// directory.
func (r *Repository) StateFile(name string) string {
	return filepath.Join(r.dirPath, name)
}

// Commit loads the commit data the graph needs.
func (r *Repository) Commit(oid plumbing.Hash) (*graph.Commit, error) {
	c, err := r.repo.CommitObject(oid)
	if err != nil {
		return nil, fmt.Errorf("looking up commit %s: %w", oid, err)
	}
	return &graph.Commit{
		Hash:         c.Hash,
		ParentHashes: c.ParentHashes,
		When:         c.Committer.When,
		Summary:      summary(c.Message),
	}, nil
}

// HeadOID resolves HEAD to a commit id. Note that the reflog consulted
// elsewhere is HEAD's own log, not the log of the branch HEAD points at.
func (r *Repository) HeadOID() (plumbing.Hash, error) {
	ref, err := r.repo.Reference(plumbing.HEAD, true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving HEAD: %w", err)
	}
	return ref.Hash(), nil
}

// MasterOID resolves the trunk branch, preferring master and falling back
// to main.
func (r *Repository) MasterOID() (plumbing.Hash, error) {
	names := []plumbing.ReferenceName{plumbing.Master, plumbing.NewBranchReferenceName("main")}
	for _, name := range names {
		ref, err := r.repo.Reference(name, true)
		if err == nil {
			return ref.Hash(), nil
		}
	}
	return plumbing.ZeroHash, fmt.Errorf("no master or main branch found")
}

// ResolveOID resolves a revision string (a full or abbreviated id, or a ref
// name) to a commit id.
func (r *Repository) ResolveOID(rev string) (plumbing.Hash, error) {
	h, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving %q: %w", rev, err)
	}
	return *h, nil
}

func summary(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i]
	}
	return message
}
